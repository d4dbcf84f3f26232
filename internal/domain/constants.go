package domain

import "time"

// Business rules
const (
	DailyCapacity       = 2              // scheduled appointments per calendar date
	MinLeadTime         = 24 * time.Hour // between now and the appointment start
	SlotDurationMinutes = 60
	MaxNotesLength      = 500
	MaxOwnerIDLength    = 128
)

// Business hours: slots start at OpeningTime and the last one ends at ClosingTime
const (
	OpeningTime = "08:00"
	ClosingTime = "18:00"
)

// ClosedWeekdays days without service
var ClosedWeekdays = []time.Weekday{time.Thursday, time.Saturday, time.Sunday}

// DefaultTimezone business time zone used when none is configured
const DefaultTimezone = "America/Sao_Paulo"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
