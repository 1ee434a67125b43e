package domain

import "time"

type LectureType string

const (
	LectureTypeLecture   LectureType = "LECTURE"
	LectureTypePractical LectureType = "PRACTICAL"
)

type Subject struct {
	ID   int64  `json:"subject_id"`
	Name string `json:"subject_name"`
}

// TimetableEntry is one recurring lecture slot. PRACTICAL entries carry a
// batch and apply only to students of that batch; LECTURE entries apply to
// the whole class/div.
type TimetableEntry struct {
	ID          int64       `json:"timetable_id"`
	Class       string      `json:"class"`
	Div         string      `json:"div"`
	SubjectID   int64       `json:"subject_id"`
	SubjectName string      `json:"subject_name,omitempty"`
	TeacherID   int64       `json:"teacher_id"`
	TeacherName string      `json:"teacher_name,omitempty"`
	DayOfWeek   int         `json:"day_of_week"` // 1=Monday .. 7=Sunday
	LectureNo   int         `json:"lecture_no"`
	LectureType LectureType `json:"lecture_type"`
	Batch       string      `json:"batch,omitempty"`
}

// TimeSlots maps lecture_no to its wall-clock slot.
var TimeSlots = map[int]string{
	1: "9:30-10:30",
	2: "10:30-11:30",
	3: "11:30-12:30",
	4: "1:00-2:00",
	5: "2:00-3:00",
	6: "3:00-4:00",
	7: "4:00-4:30",
}

// Slot boundaries in minutes from midnight, matching TimeSlots. The gap
// between slots 3 and 4 is the lunch break.
var slotBounds = map[int][2]int{
	1: {9*60 + 30, 10*60 + 30},
	2: {10*60 + 30, 11*60 + 30},
	3: {11*60 + 30, 12*60 + 30},
	4: {13 * 60, 14 * 60},
	5: {14 * 60, 15 * 60},
	6: {15 * 60, 16 * 60},
	7: {16 * 60, 16*60 + 30},
}

// CurrentLectureNo returns the slot in progress at the given wall-clock
// time, or 0 when no slot is running (before hours, lunch, after hours).
func CurrentLectureNo(t time.Time) int {
	minute := t.Hour()*60 + t.Minute()
	for no, bounds := range slotBounds {
		if minute >= bounds[0] && minute < bounds[1] {
			return no
		}
	}
	return 0
}

// WeekdayNumber maps Go's weekday onto the timetable's day numbering
// (1=Monday .. 7=Sunday).
func WeekdayNumber(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return 7
}
