package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/pkg/types"
)

// Repository хранилище записей (PostgreSQL или memory)
type Repository interface {
	LockDate(ctx context.Context, date time.Time) error
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListScheduledByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Appointment, error)
	CountScheduledByDate(ctx context.Context, from, to time.Time) ([]domain.BookedDate, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Policy правила доступности даты и времени
type Policy interface {
	Evaluate(date time.Time, slot types.TimeString, now time.Time) error
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
