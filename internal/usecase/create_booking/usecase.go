package create_booking

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

const operation = "create"

// UseCase use case записи на съемку
type UseCase struct {
	ledger       Ledger
	policy       Policy
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. publisher и metrics могут быть nil.
func NewUseCase(
	ledger Ledger,
	policy Policy,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		ledger:       ledger,
		policy:       policy,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет запись.
// Отказы по правилам проверяются до обращения к хранилищу; занятость слота и лимит дня
// решает ledger атомарно. Повторов при отказе нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestBooking: owner=%s, date=%s, time=%s, kind=%s",
		req.OwnerID, req.Date.Format(domain.DateFormat), req.Time, req.ServiceKind)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestBooking: validation failed: %v", err)
		uc.record(domain.OutcomeInvalidInput)
		return nil, err
	}

	// 2. Быстрая проверка правил без обращения к хранилищу
	if err := uc.policy.Evaluate(req.Date, req.Time, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("RequestBooking: rejected by policy: owner=%s, date=%s, time=%s: %v",
			req.OwnerID, req.Date.Format(domain.DateFormat), req.Time, err)
		uc.record(domain.OutcomeOf(err))
		return nil, err
	}

	// 3. Атомарная запись
	created, err := uc.ledger.TryCreate(ctx, &domain.Appointment{
		OwnerID:     req.OwnerID,
		Date:        req.Date,
		Time:        req.Time,
		ServiceKind: req.ServiceKind,
		Notes:       normalizeNotes(req.Notes),
	})
	if err != nil {
		outcome := domain.OutcomeOf(err)
		uc.record(outcome)

		if errors.Is(err, domain.ErrStorageUnavailable) || outcome == domain.OutcomeUnknown {
			uc.logger.Error("RequestBooking: ledger failure: owner=%s, date=%s, time=%s: %v",
				req.OwnerID, req.Date.Format(domain.DateFormat), req.Time, err)
		} else {
			uc.logger.Warn("RequestBooking: rejected by ledger: owner=%s, date=%s, time=%s, outcome=%s",
				req.OwnerID, req.Date.Format(domain.DateFormat), req.Time, outcome)
		}
		return nil, err
	}

	uc.record(domain.OutcomeCreated)
	uc.logger.Info("RequestBooking: appointment created id=%s", created.ID)

	// 4. Событие не влияет на результат записи
	if uc.publisher != nil {
		if err := uc.publisher.AppointmentCreated(ctx, created); err != nil {
			uc.logger.Warn("RequestBooking: failed to publish event for id=%s: %v", created.ID, err)
		}
	}

	return fromDomain(created), nil
}

func (uc *UseCase) record(outcome domain.Outcome) {
	if uc.metrics != nil {
		uc.metrics.RecordBookingOutcome(operation, string(outcome))
	}
}
