// File: internal/notify/dispatcher.go
package notify

import (
	"context"

	"go.uber.org/zap"
)

// unknownLocation is the fallback description parameter when the geo lookup
// fails or no resolver is configured.
const unknownLocation = "an unknown location"

// ToastSink renders toast notifications.
type ToastSink interface {
	Toast(msg Message)
}

// ModalSink renders modal notifications.
type ModalSink interface {
	Modal(msg Message)
}

// GeoResolver resolves a human-readable location for the current request.
type GeoResolver interface {
	Locate(ctx context.Context) (string, error)
}

// Dispatcher forwards a Message to the channels its flags request. A missing
// sink for a requested channel is a silent no-op; dispatching never fails and
// never blocks the caller on anything but the optional geo lookup.
type Dispatcher struct {
	logger *zap.Logger
	geo    GeoResolver
	toast  ToastSink
	modal  ModalSink
}

// NewDispatcher creates a Dispatcher. Any of geo, toast and modal may be nil.
func NewDispatcher(logger *zap.Logger, geo GeoResolver, toast ToastSink, modal ModalSink) *Dispatcher {
	return &Dispatcher{
		logger: logger.Named("Dispatcher"),
		geo:    geo,
		toast:  toast,
		modal:  modal,
	}
}

// Dispatch fans msg out to its requested channels.
func (d *Dispatcher) Dispatch(msg Message) {
	if msg.Log {
		fields := []zap.Field{
			zap.String("description", msg.Description),
			zap.String("message_status", string(msg.Status)),
		}
		switch msg.Status {
		case StatusError:
			d.logger.Error(msg.Title, fields...)
		case StatusWarning:
			d.logger.Warn(msg.Title, fields...)
		default:
			d.logger.Info(msg.Title, fields...)
		}
	}
	if msg.Toast && d.toast != nil {
		d.toast.Toast(msg)
	}
	if msg.Modal && d.modal != nil {
		d.modal.Modal(msg)
	}
}

// DispatchLocated resolves the request location first and then dispatches the
// message built from it. A failed lookup degrades to a generic location; it
// is logged and never surfaced to the caller.
func (d *Dispatcher) DispatchLocated(ctx context.Context, build func(location string) Message) {
	location := unknownLocation
	if d.geo != nil {
		loc, err := d.geo.Locate(ctx)
		if err != nil {
			d.logger.Debug("Geo lookup failed, using fallback location", zap.Error(err))
		} else if loc != "" {
			location = loc
		}
	}
	d.Dispatch(build(location))
}
