package appointment

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Имена ограничений из миграций. Ошибки классифицируются по SQLSTATE и имени ограничения,
// текст сообщения не используется.
const (
	constraintPrimaryKey       = "appointments_pkey"
	constraintScheduledSlot    = "appointments_scheduled_slot_key"
	constraintDailyCapacity    = "appointments_daily_capacity"
	constraintClosedDay        = "appointments_closed_day"
	constraintBusinessHours    = "appointments_business_hours"
	constraintLeadTime         = "appointments_lead_time"
	constraintStatusTransition = "appointments_status_transition"
	constraintImmutableFields  = "appointments_immutable_fields"

	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// pgErrorDetails достает SQLSTATE и имя ограничения из ошибки lib/pq или pgx
func pgErrorDetails(err error) (code, constraint string, ok bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}

	return "", "", false
}

// classifyWriteError возвращает доменную ошибку репозитория или nil, если ошибка не является отказом ограничения
func classifyWriteError(err error) error {
	code, constraint, ok := pgErrorDetails(err)
	if !ok {
		return nil
	}

	switch code {
	case codeUniqueViolation:
		switch constraint {
		case constraintScheduledSlot:
			return ErrSlotTaken
		case constraintPrimaryKey:
			return ErrDuplicateID
		}
	case codeCheckViolation:
		switch constraint {
		case constraintDailyCapacity:
			return ErrDailyCapacityReached
		case constraintClosedDay:
			return ErrClosedDay
		case constraintBusinessHours:
			return ErrOutOfHours
		case constraintLeadTime:
			return ErrLeadTime
		case constraintStatusTransition, constraintImmutableFields:
			return ErrForbiddenChange
		}
	}

	return nil
}
