package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

// Ledger авторитетный реестр записей
type Ledger interface {
	Cancel(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListScheduled(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	BookedDates(ctx context.Context, from, to time.Time) ([]domain.BookedDate, error)
}

// EventPublisher публикация доменных событий (опционально)
type EventPublisher interface {
	AppointmentCancelled(ctx context.Context, a *domain.Appointment) error
}

// Metrics счетчик исходов операций
type Metrics interface {
	RecordBookingOutcome(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
