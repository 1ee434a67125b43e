package timetable

import "upasthit/internal/domain"

// Slot is a timetable entry with its wall-clock slot resolved.
type Slot struct {
	*domain.TimetableEntry
	TimeSlot string `json:"time_slot"`
}

func toSlot(e *domain.TimetableEntry) Slot {
	return Slot{
		TimetableEntry: e,
		TimeSlot:       domain.TimeSlots[e.LectureNo],
	}
}
