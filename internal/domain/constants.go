package domain

// Default slot generation values
const (
	DefaultSlotDurationMinutes = 30
	DefaultBufferMinutes       = 5
	DefaultSlotsPerTime        = 1
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 240 // 4 hours
	MinBufferMinutes       = 0
	MaxBufferMinutes       = 120
	MinSlotCapacity        = 1
	MaxSlotCapacity        = 100

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
