// Package ledger is the authoritative record of appointments.
//
// TryCreate runs one transaction per request: it takes the per-date lock, re-checks the
// availability rules with a fresh clock, reads the scheduled appointments of the date and
// inserts. The storage layer enforces slot uniqueness and the daily capacity on its own, so a
// request that passes the in-transaction check can still be rejected by storage; both paths
// produce the same outcome kinds.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/internal/capacity"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CaptureBooking/internal/infra/storage/appointment"
)

type Ledger struct {
	repo         Repository
	txManager    TransactionManager
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

func NewLedger(repo Repository, txManager TransactionManager, policy Policy, logger Logger) *Ledger {
	return &Ledger{
		repo:         repo,
		txManager:    txManager,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (l *Ledger) WithTimeProvider(tp TimeProvider) *Ledger {
	l.timeProvider = tp
	return l
}

// TryCreate atomically admits and stores a new scheduled appointment.
// ID, Status and timestamps of a are assigned here.
func (l *Ledger) TryCreate(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("%w: TryCreate - generate id: %v", domain.ErrStorageUnavailable, err)
	}

	candidate := *a
	candidate.ID = id
	candidate.Date = domain.TruncateDate(a.Date)
	candidate.Status = domain.StatusScheduled
	candidate.CancelledAt = nil

	var created *domain.Appointment

	err = l.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := l.repo.LockDate(txCtx, candidate.Date); err != nil {
			return err
		}

		if err := l.policy.Evaluate(candidate.Date, candidate.Time, l.timeProvider.Now()); err != nil {
			return err
		}

		existing, err := l.repo.ListScheduledByDate(txCtx, candidate.Date)
		if err != nil {
			return err
		}

		if err := capacity.Of(candidate.Date, existing).Admit(candidate.Time); err != nil {
			return err
		}

		created, err = l.repo.Create(txCtx, &candidate)
		return err
	})
	if err != nil {
		err = translate("TryCreate", err)
		if errors.Is(err, domain.ErrStorageUnavailable) {
			l.logger.Error("Ledger.TryCreate: date=%s time=%s: %v", candidate.DateKey(), candidate.Time, err)
		}
		return nil, err
	}

	return created, nil
}

// Cancel flips a scheduled appointment of the owner to cancelled.
// Missing, foreign and already cancelled appointments are all domain.ErrNotFound.
func (l *Ledger) Cancel(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Appointment, error) {
	cancelled, err := l.repo.Cancel(ctx, id, ownerID)
	if err != nil {
		err = translate("Cancel", err)
		if errors.Is(err, domain.ErrStorageUnavailable) {
			l.logger.Error("Ledger.Cancel: id=%s: %v", id, err)
		}
		return nil, err
	}
	return cancelled, nil
}

// Get returns any appointment by id regardless of status
func (l *Ledger) Get(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	a, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate("Get", err)
	}
	return a, nil
}

// ListScheduled returns scheduled appointments ordered by date, then time.
// The result is a snapshot.
func (l *Ledger) ListScheduled(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	filter.IncludeCancelled = false

	list, err := l.repo.List(ctx, filter)
	if err != nil {
		return nil, translate("ListScheduled", err)
	}
	return list, nil
}

// ScheduledOn scheduled appointments of one date, without locking
func (l *Ledger) ScheduledOn(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	list, err := l.repo.ListScheduledByDate(ctx, domain.TruncateDate(date))
	if err != nil {
		return nil, translate("ScheduledOn", err)
	}
	return list, nil
}

// Snapshot read-only occupancy of the date
func (l *Ledger) Snapshot(ctx context.Context, date time.Time) (capacity.Snapshot, error) {
	list, err := l.ScheduledOn(ctx, date)
	if err != nil {
		return capacity.Snapshot{}, err
	}
	return capacity.Of(date, list), nil
}

// BookedDates scheduled counts per date in [from, to]; dates without appointments are omitted
func (l *Ledger) BookedDates(ctx context.Context, from, to time.Time) ([]domain.BookedDate, error) {
	dates, err := l.repo.CountScheduledByDate(ctx, domain.TruncateDate(from), domain.TruncateDate(to))
	if err != nil {
		return nil, translate("BookedDates", err)
	}
	return dates, nil
}

var domainOutcomes = []error{
	domain.ErrLeadTimeViolation,
	domain.ErrClosedDay,
	domain.ErrOutOfHours,
	domain.ErrSlotConflict,
	domain.ErrCapacityExceeded,
	domain.ErrNotFound,
	domain.ErrStorageUnavailable,
}

// translate приводит ошибку хранилища к доменному исходу.
// Все, что не является отказом по правилам, считается недоступностью хранилища.
func translate(op string, err error) error {
	for _, outcome := range domainOutcomes {
		if errors.Is(err, outcome) {
			return err
		}
	}

	switch {
	case errors.Is(err, appointmentRepo.ErrSlotTaken):
		return fmt.Errorf("%w: %s - storage: %v", domain.ErrSlotConflict, op, err)
	case errors.Is(err, appointmentRepo.ErrDailyCapacityReached):
		return fmt.Errorf("%w: %s - storage: %v", domain.ErrCapacityExceeded, op, err)
	case errors.Is(err, appointmentRepo.ErrClosedDay):
		return fmt.Errorf("%w: %s - storage: %v", domain.ErrClosedDay, op, err)
	case errors.Is(err, appointmentRepo.ErrOutOfHours):
		return fmt.Errorf("%w: %s - storage: %v", domain.ErrOutOfHours, op, err)
	case errors.Is(err, appointmentRepo.ErrLeadTime):
		return fmt.Errorf("%w: %s - storage: %v", domain.ErrLeadTimeViolation, op, err)
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, op)
	default:
		return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
	}
}
