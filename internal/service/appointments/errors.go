package appointments

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInvalidDateRange возвращается, когда from позже to или период слишком длинный
	ErrInvalidDateRange = errors.New("appointments: invalid date range")
)
