package get_day_availability

import "errors"

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = errors.New("get_day_availability: invalid input data")
