package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// conn часть *nats.Conn, которой пользуется издатель
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NatsPublisher публикует доменные события в NATS (core, без JetStream)
type NatsPublisher struct {
	conn   conn
	prefix string
	now    func() time.Time
	log    Logger
}

// NewNatsPublisher подключается к NATS и создает издателя
func NewNatsPublisher(url, subjectPrefix, clientName string, log Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, url, err)
	}

	log.Info("Connected to NATS at %s, subject prefix %q", url, subjectPrefix)
	return newPublisher(nc, subjectPrefix, log), nil
}

func newPublisher(c conn, subjectPrefix string, log Logger) *NatsPublisher {
	return &NatsPublisher{
		conn:   c,
		prefix: subjectPrefix,
		now:    time.Now,
		log:    log,
	}
}

// PublishSessionReserved публикует событие о новой записи
func (p *NatsPublisher) PublishSessionReserved(ctx context.Context, event SessionReserved) error {
	event.EventType = TypeSessionReserved
	event.OccurredAt = p.now()
	return p.publish(ctx, TypeSessionReserved, event)
}

// PublishSessionCancelled публикует событие об отмене сессии
func (p *NatsPublisher) PublishSessionCancelled(ctx context.Context, event SessionCancelled) error {
	event.EventType = TypeSessionCancelled
	event.OccurredAt = p.now()
	return p.publish(ctx, TypeSessionCancelled, event)
}

// PublishSessionsMaterialized публикует итоги прогона материализации
func (p *NatsPublisher) PublishSessionsMaterialized(ctx context.Context, event SessionsMaterialized) error {
	event.EventType = TypeSessionsMaterialized
	event.OccurredAt = p.now()
	return p.publish(ctx, TypeSessionsMaterialized, event)
}

// PublishRecurringBookingCancelled публикует событие об отмене шаблона
func (p *NatsPublisher) PublishRecurringBookingCancelled(ctx context.Context, event RecurringBookingCancelled) error {
	event.EventType = TypeRecurringBookingCancelled
	event.OccurredAt = p.now()
	return p.publish(ctx, TypeRecurringBookingCancelled, event)
}

// Close отправляет буферизованные сообщения и закрывает соединение
func (p *NatsPublisher) Close() error {
	return p.conn.Drain()
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, event interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, eventType, err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMarshal, eventType, err)
	}

	subject := p.subject(eventType)
	if err := p.conn.Publish(subject, payload); err != nil {
		p.log.Error("Failed to publish %s: %v", subject, err)
		return fmt.Errorf("%w: %s: %v", ErrPublish, subject, err)
	}

	p.log.Info("Published event to NATS on subject '%s'", subject)
	return nil
}

func (p *NatsPublisher) subject(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

// PublishSessionReserved ничего не делает
func (NoopPublisher) PublishSessionReserved(context.Context, SessionReserved) error { return nil }

// PublishSessionCancelled ничего не делает
func (NoopPublisher) PublishSessionCancelled(context.Context, SessionCancelled) error { return nil }

// PublishSessionsMaterialized ничего не делает
func (NoopPublisher) PublishSessionsMaterialized(context.Context, SessionsMaterialized) error {
	return nil
}

// PublishRecurringBookingCancelled ничего не делает
func (NoopPublisher) PublishRecurringBookingCancelled(context.Context, RecurringBookingCancelled) error {
	return nil
}

// Close ничего не делает
func (NoopPublisher) Close() error { return nil }
