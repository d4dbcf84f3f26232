package create_booking

import "errors"

// ErrInvalidInput возвращается при некорректных входных данных.
// Отказы по правилам записи возвращаются доменными ошибками (domain.ErrClosedDay и т.д.).
var ErrInvalidInput = errors.New("create_booking: invalid input data")
