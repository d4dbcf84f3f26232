package get_booked_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CaptureBooking/internal/service/appointments/models"
)

type AppointmentService interface {
	BookedDates(ctx context.Context, from, to time.Time) (*models.BookedDatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
