package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeStringLayout = "15:04"

// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате "HH:MM" без даты и часового пояса.
// В БД хранится как VARCHAR(5), в JSON - как строка.
type TimeString string

// NewTimeString создает TimeString из часов и минут
func NewTimeString(hour, minute int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", hour, minute))
}

// NewTimeStringFromString парсит строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат и диапазон значения
func (t TimeString) Validate() error {
	if len(t) != len(timeStringLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if _, err := time.Parse(timeStringLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Clock возвращает часы и минуты
func (t TimeString) Clock() (hour, minute int, err error) {
	if err := t.Validate(); err != nil {
		return 0, 0, err
	}
	parsed, _ := time.Parse(timeStringLayout, string(t))
	return parsed.Hour(), parsed.Minute(), nil
}

// Minutes количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	h, m, err := t.Clock()
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// AddMinutes возвращает время, сдвинутое на n минут (по модулю суток)
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total = ((total+n)%(24*60) + 24*60) % (24 * 60)
	return NewTimeString(total/60, total%60), nil
}

// IsBefore сравнивает два корректных значения. Формат HH:MM упорядочен лексикографически.
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// IsAfter сравнивает два корректных значения
func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// On собирает момент времени из календарной даты и времени суток в указанной зоне
func (t TimeString) On(date time.Time, loc *time.Location) (time.Time, error) {
	h, m, err := t.Clock()
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	return time.Date(y, mo, d, h, m, 0, 0, loc), nil
}

func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner. Принимает VARCHAR и TIME колонки.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v.Hour(), v.Minute())
		return nil
	default:
		return fmt.Errorf("types.TimeString: unsupported scan type %T", src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME колонка приходит как "HH:MM:SS"
	if len(s) > len(timeStringLayout) {
		s = s[:len(timeStringLayout)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
