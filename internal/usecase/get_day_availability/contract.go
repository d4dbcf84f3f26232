package get_day_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CaptureBooking/internal/availability"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

// Ledger чтение активных записей даты
type Ledger interface {
	ScheduledOn(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// Policy правила доступности
type Policy interface {
	Check(q availability.Query, now time.Time) availability.Verdict
	IsClosedDay(date time.Time) bool
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
