package domain

// Scheduling policy
const (
	// BufferMinutes after an appointment's end during which the next one cannot start
	BufferMinutes = 20

	// TimelineSlotMinutes size of a bookable slot in the day timeline
	TimelineSlotMinutes = 30

	// MinTrailingSlotMinutes shortest trailing remainder the timeline still offers
	MinTrailingSlotMinutes = 15
)

// Business validation constants
const (
	MaxNoteLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
