// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"caricom_connects_backend/internal/app"
	"caricom_connects_backend/internal/config"
	"caricom_connects_backend/internal/jobs"
	"caricom_connects_backend/internal/notify"
	"caricom_connects_backend/internal/platform/logger"
	"caricom_connects_backend/internal/provider"
	"caricom_connects_backend/internal/session"
	"caricom_connects_backend/internal/verification"
	"caricom_connects_backend/internal/web"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,

		// Identity provider boundary
		provider.NewHTTPClient,
		wire.Bind(new(provider.Client), new(*provider.HTTPClient)),

		// Notifications
		notify.NewFeed,
		wire.Bind(new(notify.ToastSink), new(*notify.Feed)),
		wire.Bind(new(notify.ModalSink), new(*notify.Feed)),
		app.NewGeoResolver,
		notify.NewDispatcher,

		// Session core
		session.NewManager,
		wire.Bind(new(session.Service), new(*session.Manager)),
		verification.NewFlow,

		// Handlers
		web.NewAuthHandler,
		web.NewPagesHandler,
		web.NewNotificationsHandler,

		// Jobs
		jobs.NewSessionRefreshJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
