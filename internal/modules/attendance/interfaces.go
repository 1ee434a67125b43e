package attendance

import (
	"context"
	"time"

	"upasthit/internal/domain"
)

// AttendanceStore — marks, submission, and the report aggregations
type AttendanceStore interface {
	UpsertMark(ctx context.Context, rec *domain.AttendanceRecord) error
	MarksForLecture(ctx context.Context, timetableID int64, date time.Time) ([]*domain.AttendanceRecord, error)
	IsSubmitted(ctx context.Context, timetableID int64, date time.Time) (bool, error)
	Submit(ctx context.Context, timetableID int64, date time.Time) (int64, error)
	OverallForStudent(ctx context.Context, rollNo int64) (*domain.AttendanceTotals, error)
	DailyForStudent(ctx context.Context, rollNo int64) ([]domain.MonthlyAttendance, error)
	SubjectWiseForStudent(ctx context.Context, rollNo int64) ([]domain.SubjectAttendance, error)
	SummaryForLecture(ctx context.Context, timetableID int64) ([]domain.StudentAttendanceSummary, error)
	CalendarForStudent(ctx context.Context, timetableID, rollNo int64, from, to time.Time) ([]*domain.AttendanceRecord, error)
}

// TimetableReader — only the lookups the attendance service needs
type TimetableReader interface {
	GetEntry(ctx context.Context, id int64) (*domain.TimetableEntry, error)
	WeeklyForTeacher(ctx context.Context, teacherID int64) ([]*domain.TimetableEntry, error)
}

// StudentDirectory — roster access for building a lecture's mark sheet
type StudentDirectory interface {
	ListForLecture(ctx context.Context, entry *domain.TimetableEntry) ([]*domain.Account, error)
	GetByRollNo(ctx context.Context, rollNo int64) (*domain.Account, error)
}

// TeacherDirectory — the teacher profile lookup
type TeacherDirectory interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
}
