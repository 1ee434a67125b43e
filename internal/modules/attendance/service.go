package attendance

import (
	"context"
	"errors"
	"time"

	"upasthit/internal/domain"

	"gorm.io/gorm"
)

// Service contains the attendance business logic for both roles. Marking is
// a teacher capability constrained to the teacher's own lectures; reports
// read only submitted marks.
type Service struct {
	store     AttendanceStore
	timetable TimetableReader
	students  StudentDirectory
	teachers  TeacherDirectory
}

func NewService(store AttendanceStore, timetable TimetableReader, students StudentDirectory, teachers TeacherDirectory) *Service {
	return &Service{
		store:     store,
		timetable: timetable,
		students:  students,
		teachers:  teachers,
	}
}

// ownedEntry loads a timetable entry and verifies the caller teaches it.
func (s *Service) ownedEntry(ctx context.Context, teacherID, timetableID int64) (*domain.TimetableEntry, error) {
	entry, err := s.timetable.GetEntry(ctx, timetableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLectureNotFound
		}
		return nil, err
	}
	if entry.TeacherID != teacherID {
		return nil, ErrNotLectureOwner
	}
	return entry, nil
}

// MarkSheet builds the roster for one lecture/date with current marks merged in.
func (s *Service) MarkSheet(ctx context.Context, teacherID, timetableID int64, date time.Time) (*MarkSheet, error) {
	entry, err := s.ownedEntry(ctx, teacherID, timetableID)
	if err != nil {
		return nil, err
	}

	roster, err := s.students.ListForLecture(ctx, entry)
	if err != nil {
		return nil, err
	}

	marks, err := s.store.MarksForLecture(ctx, timetableID, date)
	if err != nil {
		return nil, err
	}
	byRollNo := make(map[int64]*domain.AttendanceRecord, len(marks))
	for _, m := range marks {
		byRollNo[m.StudentRollNo] = m
	}

	sheet := &MarkSheet{
		Lecture:  entry,
		Date:     date.Format("2006-01-02"),
		Students: make([]StudentMark, 0, len(roster)),
	}
	for _, st := range roster {
		row := StudentMark{RollNo: st.ID, Name: st.Name}
		if m, ok := byRollNo[st.ID]; ok {
			row.Status = string(m.Status)
			row.Submitted = m.Submitted
		}
		sheet.Students = append(sheet.Students, row)
	}
	return sheet, nil
}

// Mark records marks for a lecture/date. Re-marking before submission
// overwrites; marking after submission is rejected.
func (s *Service) Mark(ctx context.Context, teacherID int64, timetableID int64, date time.Time, entries []MarkEntry) error {
	if _, err := s.ownedEntry(ctx, teacherID, timetableID); err != nil {
		return err
	}

	submitted, err := s.store.IsSubmitted(ctx, timetableID, date)
	if err != nil {
		return err
	}
	if submitted {
		return ErrAlreadySubmitted
	}

	for _, e := range entries {
		status := domain.AttendanceStatus(e.Status)
		if !status.Valid() {
			return ErrInvalidStatus
		}
		rec := &domain.AttendanceRecord{
			StudentRollNo: e.RollNo,
			TimetableID:   timetableID,
			Date:          date,
			Status:        status,
			MarkedBy:      teacherID,
		}
		if err := s.store.UpsertMark(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// SubmitLecture finalizes a lecture's marks. After this the records feed the
// reports and can no longer be edited.
func (s *Service) SubmitLecture(ctx context.Context, teacherID, timetableID int64, date time.Time) error {
	if _, err := s.ownedEntry(ctx, teacherID, timetableID); err != nil {
		return err
	}

	submitted, err := s.store.IsSubmitted(ctx, timetableID, date)
	if err != nil {
		return err
	}
	if submitted {
		return ErrAlreadySubmitted
	}

	rows, err := s.store.Submit(ctx, timetableID, date)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNothingToSubmit
	}
	return nil
}

func (s *Service) Dashboard(ctx context.Context, teacherID int64, now time.Time) (*Dashboard, error) {
	entries, err := s.timetable.WeeklyForTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	today := domain.WeekdayNumber(now)
	date := truncateToDay(now)

	dash := &Dashboard{Lectures: []DashboardLecture{}}
	for _, entry := range entries {
		if entry.DayOfWeek != today {
			continue
		}
		submitted, err := s.store.IsSubmitted(ctx, entry.ID, date)
		if err != nil {
			return nil, err
		}
		dash.LecturesToday++
		if submitted {
			dash.Submitted++
		} else {
			dash.Pending++
		}
		dash.Lectures = append(dash.Lectures, DashboardLecture{
			Entry:     entry,
			TimeSlot:  domain.TimeSlots[entry.LectureNo],
			Submitted: submitted,
		})
	}
	return dash, nil
}

// CurrentLecture resolves what the teacher is teaching right now, by wall
// clock. Returns nil when no slot is running or the running slot has no
// lecture for this teacher today.
func (s *Service) CurrentLecture(ctx context.Context, teacherID int64, now time.Time) (*DashboardLecture, error) {
	lectureNo := domain.CurrentLectureNo(now)
	if lectureNo == 0 {
		return nil, nil
	}

	entries, err := s.timetable.WeeklyForTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	day := domain.WeekdayNumber(now)
	for _, entry := range entries {
		if entry.DayOfWeek != day || entry.LectureNo != lectureNo {
			continue
		}
		submitted, err := s.store.IsSubmitted(ctx, entry.ID, truncateToDay(now))
		if err != nil {
			return nil, err
		}
		return &DashboardLecture{
			Entry:     entry,
			TimeSlot:  domain.TimeSlots[entry.LectureNo],
			Submitted: submitted,
		}, nil
	}
	return nil, nil
}

// Calendar lists one student's per-date marks for a lecture over one month.
func (s *Service) Calendar(ctx context.Context, teacherID, timetableID, rollNo int64, month time.Time) ([]CalendarDay, error) {
	if _, err := s.ownedEntry(ctx, teacherID, timetableID); err != nil {
		return nil, err
	}

	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	records, err := s.store.CalendarForStudent(ctx, timetableID, rollNo, from, to)
	if err != nil {
		return nil, err
	}

	days := make([]CalendarDay, 0, len(records))
	for _, rec := range records {
		days = append(days, CalendarDay{
			Date:   rec.Date.Format("2006-01-02"),
			Status: string(rec.Status),
		})
	}
	return days, nil
}

func (s *Service) TeacherProfile(ctx context.Context, teacherID int64) (*TeacherProfile, error) {
	teacher, err := s.teachers.GetAccount(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return &TeacherProfile{
		ID:    teacher.ID,
		Name:  teacher.Name,
		Email: teacher.Email,
	}, nil
}

func (s *Service) SummaryForLecture(ctx context.Context, teacherID, timetableID int64) ([]domain.StudentAttendanceSummary, error) {
	if _, err := s.ownedEntry(ctx, teacherID, timetableID); err != nil {
		return nil, err
	}
	return s.store.SummaryForLecture(ctx, timetableID)
}

func (s *Service) Overall(ctx context.Context, rollNo int64) (*domain.AttendanceTotals, error) {
	return s.store.OverallForStudent(ctx, rollNo)
}

func (s *Service) Monthly(ctx context.Context, rollNo int64) ([]domain.MonthlyAttendance, error) {
	return s.store.DailyForStudent(ctx, rollNo)
}

func (s *Service) SubjectWise(ctx context.Context, rollNo int64) ([]domain.SubjectAttendance, error) {
	return s.store.SubjectWiseForStudent(ctx, rollNo)
}

func (s *Service) Profile(ctx context.Context, rollNo int64) (*StudentProfile, error) {
	student, err := s.students.GetByRollNo(ctx, rollNo)
	if err != nil {
		return nil, err
	}
	overall, err := s.store.OverallForStudent(ctx, rollNo)
	if err != nil {
		return nil, err
	}
	return &StudentProfile{
		ID:      student.ID,
		Name:    student.Name,
		Email:   student.Email,
		Class:   student.Class,
		Div:     student.Div,
		Batch:   student.Batch,
		Overall: overall,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
