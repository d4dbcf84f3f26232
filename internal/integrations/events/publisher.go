// Package events публикует доменные события записей в Kafka.
// Публикация выполняется после фиксации записи и не влияет на ее результат.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

const (
	headerEventID   = "event_id"
	headerEventType = "event_type"

	defaultWriteTimeout = 5 * time.Second
)

// Config параметры подключения к Kafka
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Publisher публикует события записей
type Publisher struct {
	writer  MessageWriter
	timeout time.Duration
	now     func() time.Time
	logger  Logger
}

// NewKafkaPublisher создает Publisher поверх kafka.Writer.
// Балансировка по ключу сохраняет порядок событий одной записи.
func NewKafkaPublisher(cfg Config, logger Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error("kafka writer: "+msg, args...)
		}),
	}
	return NewPublisher(writer, cfg.WriteTimeout, logger)
}

// NewPublisher создает Publisher с произвольным writer
func NewPublisher(writer MessageWriter, timeout time.Duration, logger Logger) *Publisher {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &Publisher{
		writer:  writer,
		timeout: timeout,
		now:     time.Now,
		logger:  logger,
	}
}

// AppointmentCreated публикует appointment.created
func (p *Publisher) AppointmentCreated(ctx context.Context, a *domain.Appointment) error {
	return p.publish(ctx, newEvent(TypeAppointmentCreated, a, p.now()))
}

// AppointmentCancelled публикует appointment.cancelled
func (p *Publisher) AppointmentCancelled(ctx context.Context, a *domain.Appointment) error {
	return p.publish(ctx, newEvent(TypeAppointmentCancelled, a, p.now()))
}

func (p *Publisher) publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: publish - marshal %s: %v", ErrEncodeEvent, e.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(e.AppointmentID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(e.ID.String())},
			{Key: headerEventType, Value: []byte(e.Type)},
		},
		Time: e.OccurredAt,
	}

	// запрос клиента может завершиться раньше, чем брокер ответит
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("%w: publish - %s appointment=%s: %v", ErrPublish, e.Type, e.AppointmentID, err)
	}

	p.logger.Info("Events: published %s appointment=%s", e.Type, e.AppointmentID)
	return nil
}

// Close закрывает writer, дожидаясь отправки буфера
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Noop публикатор для запуска без Kafka
type Noop struct{}

func (Noop) AppointmentCreated(ctx context.Context, a *domain.Appointment) error { return nil }
func (Noop) AppointmentCancelled(ctx context.Context, a *domain.Appointment) error { return nil }
func (Noop) Close() error { return nil }
