package services

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// EventPublisher emits submission lifecycle events over NATS. It is an
// optional collaborator: a nil publisher is valid and publishes nothing, so
// callers never need to guard their calls.
type EventPublisher struct {
	nc  *nats.Conn
	log zerolog.Logger
}

// ConnectNATS dials the broker with endless reconnects, matching how the rest
// of the platform consumes these events.
func ConnectNATS(url string, logger zerolog.Logger) (*EventPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("consultoria-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("url", url).Msg("connected to NATS")
	return &EventPublisher{nc: nc, log: logger}, nil
}

// Publish sends a JSON-encoded event. Fire-and-forget: a failed publish is
// logged, never surfaced to the request path.
func (p *EventPublisher) Publish(subject string, payload any) {
	if p == nil || p.nc == nil || !p.nc.IsConnected() {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.log.Warn().Str("subject", subject).Err(err).Msg("failed to encode event")
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.log.Warn().Str("subject", subject).Err(err).Msg("failed to publish event")
	}
}

func (p *EventPublisher) Close() {
	if p != nil && p.nc != nil {
		p.nc.Close()
	}
}
