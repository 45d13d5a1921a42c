package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"nutritrack/internal/application/interfaces"
	"nutritrack/internal/config"
	"nutritrack/internal/domain"
)

// ClosablePublisher is an event publisher owning a broker connection.
type ClosablePublisher interface {
	interfaces.EventPublisher
	Close()
}

var (
	_ ClosablePublisher = (*NatsPublisher)(nil)
	_ ClosablePublisher = NopPublisher{}
)

type NatsPublisher struct {
	nc     *nats.Conn
	prefix string
	logger *zap.Logger
}

// NewEventPublisher connects to NATS when a URL is configured and returns a
// no-op publisher otherwise.
func NewEventPublisher(cfg config.NatsConfig, logger *zap.Logger) (ClosablePublisher, error) {
	logger = logger.Named("nats")
	if cfg.URL == "" {
		logger.Info("nats not configured, events disabled")
		return NopPublisher{}, nil
	}

	opts := []nats.Option{
		nats.Name("nutritrack"),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error("nats error", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	logger.Info("connected to nats", zap.String("url", nc.ConnectedUrl()))
	return &NatsPublisher{nc: nc, prefix: cfg.SubjectPrefix, logger: logger}, nil
}

func (p *NatsPublisher) Subject(event domain.Event) string {
	if p.prefix == "" {
		return event.Type
	}
	return p.prefix + "." + event.Type
}

func (p *NatsPublisher) Publish(_ context.Context, event domain.Event) error {
	if p.nc == nil || !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	subject := p.Subject(event)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.logger.Debug("event published", zap.String("subject", subject))
	return nil
}

// Close drains pending messages before closing the connection.
func (p *NatsPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.logger.Warn("nats drain", zap.Error(err))
		p.nc.Close()
	}
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) error { return nil }

func (NopPublisher) Close() {}
