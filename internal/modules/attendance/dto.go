package attendance

import "upasthit/internal/domain"

type MarkEntry struct {
	RollNo int64  `json:"student_rollno" validate:"required"`
	Status string `json:"status" validate:"required,oneof=Present Absent"`
}

type MarkAttendanceRequest struct {
	TimetableID int64       `json:"timetable_id" validate:"required"`
	Date        string      `json:"date" validate:"required"` // YYYY-MM-DD
	Entries     []MarkEntry `json:"entries" validate:"required,min=1,dive"`
}

type SubmitRequest struct {
	TimetableID int64  `json:"timetable_id" validate:"required"`
	Date        string `json:"date" validate:"required"`
}

// StudentMark is one row of a lecture's mark sheet: roster entry plus the
// current mark, empty status when the student is still unmarked.
type StudentMark struct {
	RollNo    int64  `json:"student_rollno"`
	Name      string `json:"name"`
	Status    string `json:"status,omitempty"`
	Submitted bool   `json:"submitted"`
}

type MarkSheet struct {
	Lecture  *domain.TimetableEntry `json:"lecture"`
	Date     string                 `json:"date"`
	Students []StudentMark          `json:"students"`
}

type DashboardLecture struct {
	Entry     *domain.TimetableEntry `json:"lecture"`
	TimeSlot  string                 `json:"time_slot"`
	Submitted bool                   `json:"submitted"`
}

type Dashboard struct {
	LecturesToday int                `json:"lectures_today"`
	Submitted     int                `json:"submitted"`
	Pending       int                `json:"pending"`
	Lectures      []DashboardLecture `json:"lectures"`
}

// CalendarDay is one marked date in a student's per-lecture calendar.
type CalendarDay struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type TeacherProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type StudentProfile struct {
	ID      int64                    `json:"id"`
	Name    string                   `json:"name"`
	Email   string                   `json:"email,omitempty"`
	Class   string                   `json:"class"`
	Div     string                   `json:"div"`
	Batch   string                   `json:"batch,omitempty"`
	Overall *domain.AttendanceTotals `json:"overall"`
}
