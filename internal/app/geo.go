// File: internal/app/geo.go
package app

import (
	"context"
	"fmt"

	"caricom_connects_backend/internal/notify"
	"caricom_connects_backend/internal/provider"
)

// geoResolver adapts the provider's locale lookup to the notification
// dispatcher's GeoResolver interface.
type geoResolver struct {
	client provider.Client
}

// NewGeoResolver creates the dispatcher's location source from the provider
// client.
func NewGeoResolver(client provider.Client) notify.GeoResolver {
	return &geoResolver{client: client}
}

func (g *geoResolver) Locate(ctx context.Context) (string, error) {
	locale, err := g.client.GetLocale(ctx)
	if err != nil {
		return "", fmt.Errorf("locale lookup: %w", err)
	}
	if locale.Country == "" {
		return locale.CountryCode, nil
	}
	return locale.Country, nil
}
