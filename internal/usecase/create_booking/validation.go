package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-CaptureBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Формат времени здесь не проверяется: некорректное время - это отказ OutOfHours, а не ошибка ввода.
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.OwnerID) == "" {
		return fmt.Errorf("%w: ownerID is required", ErrInvalidInput)
	}

	if len(req.OwnerID) > domain.MaxOwnerIDLength {
		return fmt.Errorf("%w: ownerID is too long", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if !req.ServiceKind.IsValid() {
		return fmt.Errorf("%w: unknown service kind %q", ErrInvalidInput, req.ServiceKind)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// normalizeNotes пустой комментарий не сохраняем
func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
