package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	"github.com/m04kA/SMC-CaptureBooking/internal/service/appointments/models"
)

const (
	operationCancel = "cancel"

	// MaxBookedDatesRangeDays максимальная длина периода для BookedDates (включительно)
	MaxBookedDatesRangeDays = 92
)

// Service сервис для работы с записями: отмена и чтение
type Service struct {
	ledger    Ledger
	publisher EventPublisher
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса записей. publisher и metrics могут быть nil.
func NewService(
	ledger Ledger,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		ledger:    ledger,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// GetByID получает запись по ID.
// Клиент видит только свои записи; чужая запись неотличима от несуществующей.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for owner=%s", id, ownerID)

	a, err := s.ledger.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, err
		}
		s.logger.Error("GetByID: ledger error for appointment id=%s: %v", id, err)
		return nil, err
	}

	if a.OwnerID != ownerID {
		s.logger.Warn("GetByID: appointment id=%s is not owned by %s", id, ownerID)
		return nil, fmt.Errorf("%w: GetByID - foreign appointment", domain.ErrNotFound)
	}

	return models.FromDomainAppointment(a), nil
}

// ListScheduled возвращает активные записи, упорядоченные по дате и времени.
// Результат является снимком на момент чтения.
func (s *Service) ListScheduled(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	owner := "*"
	if req.OwnerID != nil {
		owner = *req.OwnerID
	}
	s.logger.Info("ListScheduled: fetching appointments for owner=%s", owner)

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		s.logger.Warn("ListScheduled: start date %s is after end date %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
		return nil, ErrInvalidDateRange
	}

	list, err := s.ledger.ListScheduled(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListScheduled: ledger error for owner=%s: %v", owner, err)
		return nil, err
	}

	s.logger.Info("ListScheduled: fetched %d appointments for owner=%s", len(list), owner)
	return models.FromDomainAppointmentList(list), nil
}

// BookedDates возвращает количество активных записей по датам периода [from, to].
// Даты без записей не возвращаются; full=true означает исчерпанный дневной лимит.
func (s *Service) BookedDates(ctx context.Context, from, to time.Time) (*models.BookedDatesResponse, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidDateRange)
	}

	from, to = domain.TruncateDate(from), domain.TruncateDate(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: from is after to", ErrInvalidDateRange)
	}
	if to.Sub(from) >= MaxBookedDatesRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidDateRange, MaxBookedDatesRangeDays)
	}

	dates, err := s.ledger.BookedDates(ctx, from, to)
	if err != nil {
		s.logger.Error("BookedDates: ledger error for %s..%s: %v",
			from.Format(domain.DateFormat), to.Format(domain.DateFormat), err)
		return nil, err
	}

	return models.FromDomainBookedDates(from, to, dates), nil
}

// Cancel отменяет запись клиента.
// Несуществующая, чужая и уже отмененная запись дают domain.ErrNotFound.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, ownerID string) (*models.AppointmentResponse, error) {
	s.logger.Info("CancelBooking: cancelling appointment id=%s by owner=%s", id, ownerID)

	if strings.TrimSpace(ownerID) == "" {
		s.record(domain.OutcomeInvalidInput)
		return nil, fmt.Errorf("%w: ownerID is required", ErrInvalidInput)
	}

	cancelled, err := s.ledger.Cancel(ctx, id, ownerID)
	if err != nil {
		s.record(domain.OutcomeOf(err))
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("CancelBooking: appointment id=%s not found for owner=%s", id, ownerID)
		} else {
			s.logger.Error("CancelBooking: ledger error for appointment id=%s: %v", id, err)
		}
		return nil, err
	}

	s.record(domain.OutcomeCancelled)
	s.logger.Info("CancelBooking: appointment id=%s cancelled, date=%s time=%s",
		id, cancelled.DateKey(), cancelled.Time)

	if s.publisher != nil {
		if err := s.publisher.AppointmentCancelled(ctx, cancelled); err != nil {
			s.logger.Warn("CancelBooking: failed to publish event for id=%s: %v", id, err)
		}
	}

	return models.FromDomainAppointment(cancelled), nil
}

func (s *Service) record(outcome domain.Outcome) {
	if s.metrics != nil {
		s.metrics.RecordBookingOutcome(operationCancel, string(outcome))
	}
}
