package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/pkg/types"
)

// Ledger хранилище записей с атомарной проверкой слота и лимита
type Ledger interface {
	TryCreate(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// Policy правила доступности (быстрая проверка без обращения к хранилищу)
type Policy interface {
	Evaluate(date time.Time, slot types.TimeString, now time.Time) error
}

// EventPublisher публикация доменных событий после успешной записи
type EventPublisher interface {
	AppointmentCreated(ctx context.Context, a *domain.Appointment) error
}

// Metrics счетчик исходов
type Metrics interface {
	RecordBookingOutcome(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
