package get_day_availability

import (
	"context"

	"github.com/m04kA/SMC-CaptureBooking/internal/availability"
	"github.com/m04kA/SMC-CaptureBooking/internal/capacity"
	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

// UseCase use case для получения доступности слотов на дату
type UseCase struct {
	ledger       Ledger
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ledger Ledger, policy Policy, logger Logger) *UseCase {
	return &UseCase{
		ledger:       ledger,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает вердикт по каждому слоту даты.
// Ответ вычисляется на каждый запрос и ничего не кеширует; итоговое решение принимает только запись.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayAvailability: validation failed: %v", err)
		return nil, err
	}

	date := domain.TruncateDate(req.Date)
	uc.logger.Info("GetDayAvailability: date=%s", date.Format(domain.DateFormat))

	resp := &Response{
		Date:     date,
		Closed:   uc.policy.IsClosedDay(date),
		Capacity: domain.DailyCapacity,
	}

	// 1. В закрытый день записей быть не может, хранилище не читаем
	var existing []*domain.Appointment
	if !resp.Closed {
		var err error
		existing, err = uc.ledger.ScheduledOn(ctx, date)
		if err != nil {
			uc.logger.Error("GetDayAvailability: failed to read appointments for %s: %v",
				date.Format(domain.DateFormat), err)
			return nil, err
		}
	}

	snapshot := capacity.Of(date, existing)
	resp.Scheduled = snapshot.Scheduled
	resp.Remaining = snapshot.Remaining()

	// 2. Вердикт по каждому слоту с одним и тем же now
	now := uc.timeProvider.Now()
	slots := domain.BusinessSlots()
	resp.Slots = make([]domain.DaySlot, 0, len(slots))
	for _, slot := range slots {
		verdict := uc.policy.Check(availability.Query{Date: date, Time: slot, Existing: existing}, now)
		resp.Slots = append(resp.Slots, domain.DaySlot{
			Time:      slot,
			Available: verdict.Eligible,
			Reason:    verdict.Outcome(),
		})
	}

	uc.logger.Info("GetDayAvailability: date=%s, scheduled=%d, remaining=%d",
		date.Format(domain.DateFormat), resp.Scheduled, resp.Remaining)
	return resp, nil
}
