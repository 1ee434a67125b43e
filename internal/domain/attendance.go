package domain

import (
	"math"
	"time"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
)

func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// AttendanceRecord is one student's mark for one lecture on one date.
// Marks stay editable until the lecture is submitted; submitted records are
// the only ones counted in reports.
type AttendanceRecord struct {
	ID            int64            `json:"id"`
	StudentRollNo int64            `json:"student_rollno"`
	TimetableID   int64            `json:"timetable_id"`
	Date          time.Time        `json:"attendance_date"`
	Status        AttendanceStatus `json:"status"`
	Submitted     bool             `json:"submitted"`
	MarkedBy      int64            `json:"marked_by"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// AttendanceTotals is the present/total pair every report reduces to.
type AttendanceTotals struct {
	TotalClasses   int     `json:"total_classes"`
	PresentClasses int     `json:"present_classes"`
	Percentage     float64 `json:"attendance_percentage"`
}

type MonthlyAttendance struct {
	Month string `json:"month"` // YYYY-MM
	AttendanceTotals
}

type SubjectAttendance struct {
	SubjectName string `json:"subject_name"`
	AttendanceTotals
}

type StudentAttendanceSummary struct {
	RollNo int64  `json:"student_rollno"`
	Name   string `json:"name"`
	AttendanceTotals
}

// AttendancePercent rounds to two decimals; zero total yields zero, not NaN.
func AttendancePercent(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*10000) / 100
}

