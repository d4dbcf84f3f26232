// Package memory хранилище записей в памяти процесса.
// Вставка проверяет те же ограничения, что и триггер appointments_guard в PostgreSQL,
// атомарно под одной блокировкой.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CaptureBooking/internal/availability"
	"github.com/m04kA/SMC-CaptureBooking/internal/capacity"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CaptureBooking/internal/infra/storage/appointment"
)

// Repository потокобезопасное хранилище записей
type Repository struct {
	mu     sync.RWMutex
	items  map[uuid.UUID]*domain.Appointment
	policy *availability.Policy
	now    func() time.Time
}

// NewRepository создает пустое хранилище. now используется для проверки 24 часов, nil - time.Now.
func NewRepository(policy *availability.Policy, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{
		items:  make(map[uuid.UUID]*domain.Appointment),
		policy: policy,
		now:    now,
	}
}

// LockDate ничего не делает: Create сам сериализует вставки
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	return ctx.Err()
}

func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if a.Status != domain.StatusScheduled {
		return nil, appointmentRepo.ErrForbiddenChange
	}
	if _, exists := r.items[a.ID]; exists {
		return nil, appointmentRepo.ErrDuplicateID
	}

	switch err := r.policy.Evaluate(a.Date, a.Time, r.now()); {
	case errors.Is(err, domain.ErrLeadTimeViolation):
		return nil, appointmentRepo.ErrLeadTime
	case errors.Is(err, domain.ErrClosedDay):
		return nil, appointmentRepo.ErrClosedDay
	case errors.Is(err, domain.ErrOutOfHours):
		return nil, appointmentRepo.ErrOutOfHours
	}

	switch err := capacity.Of(a.Date, r.scheduledOn(a.Date)).Admit(a.Time); {
	case errors.Is(err, domain.ErrSlotConflict):
		return nil, appointmentRepo.ErrSlotTaken
	case errors.Is(err, domain.ErrCapacityExceeded):
		return nil, appointmentRepo.ErrDailyCapacityReached
	}

	now := r.now()
	stored := clone(a)
	stored.Date = domain.TruncateDate(a.Date)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.items[stored.ID] = stored

	return clone(stored), nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return clone(a), nil
}

func (r *Repository) ListScheduledByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.scheduledOn(date)
	for i, a := range result {
		result[i] = clone(a)
	}
	sortByDateTime(result)
	return result, nil
}

func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range r.items {
		if filter.OwnerID != nil && a.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.StartDate != nil && a.Date.Before(domain.TruncateDate(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && a.Date.After(domain.TruncateDate(*filter.EndDate)) {
			continue
		}
		if !filter.IncludeCancelled && !a.IsScheduled() {
			continue
		}
		result = append(result, clone(a))
	}

	sortByDateTime(result)
	return result, nil
}

// Cancel compare-and-set scheduled -> cancelled для записи клиента
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok || a.OwnerID != ownerID || !a.CanBeCancelled() {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}

	now := r.now()
	a.Status = domain.StatusCancelled
	a.CancelledAt = &now
	a.UpdatedAt = now

	return clone(a), nil
}

func (r *Repository) CountScheduledByDate(ctx context.Context, from, to time.Time) ([]domain.BookedDate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	from, to = domain.TruncateDate(from), domain.TruncateDate(to)

	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[time.Time]int)
	for _, a := range r.items {
		if !a.IsScheduled() || a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		counts[a.Date]++
	}

	result := make([]domain.BookedDate, 0, len(counts))
	for d, n := range counts {
		result = append(result, domain.BookedDate{Date: d, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })

	return result, nil
}

// scheduledOn вызывать под блокировкой
func (r *Repository) scheduledOn(date time.Time) []*domain.Appointment {
	result := make([]*domain.Appointment, 0, domain.DailyCapacity)
	for _, a := range r.items {
		if a.IsScheduled() && domain.SameDate(a.Date, date) {
			result = append(result, a)
		}
	}
	return result
}

func sortByDateTime(list []*domain.Appointment) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].Time.IsBefore(list[j].Time)
	})
}

func clone(a *domain.Appointment) *domain.Appointment {
	c := *a
	if a.Notes != nil {
		notes := *a.Notes
		c.Notes = &notes
	}
	if a.CancelledAt != nil {
		at := *a.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}

// TransactionManager без изоляции: функция выполняется как есть.
// Конкурентные вызовы доходят до проверок Create так же, как до ограничений БД.
type TransactionManager struct{}

func (TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
