package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"upasthit/internal/domain"
)

type mockAttendanceStore struct {
	mock.Mock
}

func (m *mockAttendanceStore) UpsertMark(ctx context.Context, rec *domain.AttendanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockAttendanceStore) MarksForLecture(ctx context.Context, timetableID int64, date time.Time) ([]*domain.AttendanceRecord, error) {
	args := m.Called(ctx, timetableID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AttendanceRecord), args.Error(1)
}

func (m *mockAttendanceStore) IsSubmitted(ctx context.Context, timetableID int64, date time.Time) (bool, error) {
	args := m.Called(ctx, timetableID, date)
	return args.Bool(0), args.Error(1)
}

func (m *mockAttendanceStore) Submit(ctx context.Context, timetableID int64, date time.Time) (int64, error) {
	args := m.Called(ctx, timetableID, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAttendanceStore) OverallForStudent(ctx context.Context, rollNo int64) (*domain.AttendanceTotals, error) {
	args := m.Called(ctx, rollNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttendanceTotals), args.Error(1)
}

func (m *mockAttendanceStore) DailyForStudent(ctx context.Context, rollNo int64) ([]domain.MonthlyAttendance, error) {
	args := m.Called(ctx, rollNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyAttendance), args.Error(1)
}

func (m *mockAttendanceStore) SubjectWiseForStudent(ctx context.Context, rollNo int64) ([]domain.SubjectAttendance, error) {
	args := m.Called(ctx, rollNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubjectAttendance), args.Error(1)
}

func (m *mockAttendanceStore) SummaryForLecture(ctx context.Context, timetableID int64) ([]domain.StudentAttendanceSummary, error) {
	args := m.Called(ctx, timetableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentAttendanceSummary), args.Error(1)
}

func (m *mockAttendanceStore) CalendarForStudent(ctx context.Context, timetableID, rollNo int64, from, to time.Time) ([]*domain.AttendanceRecord, error) {
	args := m.Called(ctx, timetableID, rollNo, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AttendanceRecord), args.Error(1)
}

type mockTimetableReader struct {
	mock.Mock
}

func (m *mockTimetableReader) GetEntry(ctx context.Context, id int64) (*domain.TimetableEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimetableEntry), args.Error(1)
}

func (m *mockTimetableReader) WeeklyForTeacher(ctx context.Context, teacherID int64) ([]*domain.TimetableEntry, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TimetableEntry), args.Error(1)
}

type mockStudentDirectory struct {
	mock.Mock
}

func (m *mockStudentDirectory) ListForLecture(ctx context.Context, entry *domain.TimetableEntry) ([]*domain.Account, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *mockStudentDirectory) GetByRollNo(ctx context.Context, rollNo int64) (*domain.Account, error) {
	args := m.Called(ctx, rollNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type mockTeacherDirectory struct {
	mock.Mock
}

func (m *mockTeacherDirectory) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func lectureEntry() *domain.TimetableEntry {
	return &domain.TimetableEntry{
		ID:          1,
		Class:       "SE",
		Div:         "A",
		SubjectID:   10,
		SubjectName: "Data Structures",
		TeacherID:   101,
		DayOfWeek:   1,
		LectureNo:   1,
		LectureType: domain.LectureTypeLecture,
	}
}

var testDate = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func TestMark_Success(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	timetable.On("GetEntry", mock.Anything, int64(1)).Return(lectureEntry(), nil)
	store.On("IsSubmitted", mock.Anything, int64(1), testDate).Return(false, nil)
	store.On("UpsertMark", mock.Anything, mock.AnythingOfType("*domain.AttendanceRecord")).Return(nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	err := service.Mark(context.Background(), 101, 1, testDate, []MarkEntry{
		{RollNo: 2401, Status: "Present"},
		{RollNo: 2402, Status: "Absent"},
	})
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "UpsertMark", 2)
}

func TestMark_NotLectureOwner(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	timetable.On("GetEntry", mock.Anything, int64(1)).Return(lectureEntry(), nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	err := service.Mark(context.Background(), 999, 1, testDate, []MarkEntry{{RollNo: 2401, Status: "Present"}})
	assert.ErrorIs(t, err, ErrNotLectureOwner)
	store.AssertNotCalled(t, "UpsertMark", mock.Anything, mock.Anything)
}

func TestMark_LectureNotFound(t *testing.T) {
	timetable := new(mockTimetableReader)
	timetable.On("GetEntry", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(mockAttendanceStore), timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	err := service.Mark(context.Background(), 101, 404, testDate, nil)
	assert.ErrorIs(t, err, ErrLectureNotFound)
}

func TestMark_AfterSubmitRejected(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	timetable.On("GetEntry", mock.Anything, int64(1)).Return(lectureEntry(), nil)
	store.On("IsSubmitted", mock.Anything, int64(1), testDate).Return(true, nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	err := service.Mark(context.Background(), 101, 1, testDate, []MarkEntry{{RollNo: 2401, Status: "Present"}})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	store.AssertNotCalled(t, "UpsertMark", mock.Anything, mock.Anything)
}

func TestMark_InvalidStatus(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	timetable.On("GetEntry", mock.Anything, int64(1)).Return(lectureEntry(), nil)
	store.On("IsSubmitted", mock.Anything, int64(1), testDate).Return(false, nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	err := service.Mark(context.Background(), 101, 1, testDate, []MarkEntry{{RollNo: 2401, Status: "late"}})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSubmitLecture_NothingToSubmit(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	timetable.On("GetEntry", mock.Anything, int64(1)).Return(lectureEntry(), nil)
	store.On("IsSubmitted", mock.Anything, int64(1), testDate).Return(false, nil)
	store.On("Submit", mock.Anything, int64(1), testDate).Return(int64(0), nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	err := service.SubmitLecture(context.Background(), 101, 1, testDate)
	assert.ErrorIs(t, err, ErrNothingToSubmit)
}

func TestSubmitLecture_Twice(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	timetable.On("GetEntry", mock.Anything, int64(1)).Return(lectureEntry(), nil)
	store.On("IsSubmitted", mock.Anything, int64(1), testDate).Return(true, nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	err := service.SubmitLecture(context.Background(), 101, 1, testDate)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	store.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkSheet_MergesMarksIntoRoster(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)
	students := new(mockStudentDirectory)

	entry := lectureEntry()
	timetable.On("GetEntry", mock.Anything, int64(1)).Return(entry, nil)
	students.On("ListForLecture", mock.Anything, entry).Return([]*domain.Account{
		{ID: 2401, Name: "Krishna Patel"},
		{ID: 2402, Name: "Aarav Shah"},
	}, nil)
	store.On("MarksForLecture", mock.Anything, int64(1), testDate).Return([]*domain.AttendanceRecord{
		{StudentRollNo: 2401, Status: domain.StatusPresent, Submitted: false},
	}, nil)

	service := NewService(store, timetable, students, new(mockTeacherDirectory))

	sheet, err := service.MarkSheet(context.Background(), 101, 1, testDate)
	require.NoError(t, err)
	require.Len(t, sheet.Students, 2)
	assert.Equal(t, "2026-03-02", sheet.Date)

	assert.Equal(t, "Present", sheet.Students[0].Status)
	// Unmarked students appear with an empty status.
	assert.Equal(t, int64(2402), sheet.Students[1].RollNo)
	assert.Empty(t, sheet.Students[1].Status)
}

func TestDashboard_CountsTodayOnly(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	// March 2, 2026 is a Monday (day 1).
	now := time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC)

	monday := lectureEntry()
	tuesday := lectureEntry()
	tuesday.ID = 2
	tuesday.DayOfWeek = 2

	timetable.On("WeeklyForTeacher", mock.Anything, int64(101)).Return([]*domain.TimetableEntry{monday, tuesday}, nil)
	store.On("IsSubmitted", mock.Anything, int64(1), testDate).Return(true, nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	dash, err := service.Dashboard(context.Background(), 101, now)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.LecturesToday)
	assert.Equal(t, 1, dash.Submitted)
	assert.Equal(t, 0, dash.Pending)
	require.Len(t, dash.Lectures, 1)
	assert.Equal(t, "9:30-10:30", dash.Lectures[0].TimeSlot)
	store.AssertNotCalled(t, "IsSubmitted", mock.Anything, int64(2), mock.Anything)
}

func TestSummaryForLecture_OwnerGuard(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	timetable.On("GetEntry", mock.Anything, int64(1)).Return(lectureEntry(), nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	_, err := service.SummaryForLecture(context.Background(), 999, 1)
	assert.ErrorIs(t, err, ErrNotLectureOwner)
	store.AssertNotCalled(t, "SummaryForLecture", mock.Anything, mock.Anything)
}

func TestCurrentLecture_DuringSlot(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	// Monday 10:00, inside slot 1 (9:30-10:30).
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	timetable.On("WeeklyForTeacher", mock.Anything, int64(101)).Return([]*domain.TimetableEntry{lectureEntry()}, nil)
	store.On("IsSubmitted", mock.Anything, int64(1), testDate).Return(false, nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	lecture, err := service.CurrentLecture(context.Background(), 101, now)
	require.NoError(t, err)
	require.NotNil(t, lecture)
	assert.Equal(t, int64(1), lecture.Entry.ID)
	assert.Equal(t, "9:30-10:30", lecture.TimeSlot)
	assert.False(t, lecture.Submitted)
}

func TestCurrentLecture_OutsideHours(t *testing.T) {
	timetable := new(mockTimetableReader)
	service := NewService(new(mockAttendanceStore), timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	// 8:00 is before the first slot.
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	lecture, err := service.CurrentLecture(context.Background(), 101, now)
	require.NoError(t, err)
	assert.Nil(t, lecture)
	timetable.AssertNotCalled(t, "WeeklyForTeacher", mock.Anything, mock.Anything)
}

func TestCurrentLecture_FreeSlot(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	// Monday 13:30 is slot 4; the teacher's only lecture is slot 1.
	now := time.Date(2026, time.March, 2, 13, 30, 0, 0, time.UTC)

	timetable.On("WeeklyForTeacher", mock.Anything, int64(101)).Return([]*domain.TimetableEntry{lectureEntry()}, nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	lecture, err := service.CurrentLecture(context.Background(), 101, now)
	require.NoError(t, err)
	assert.Nil(t, lecture)
	store.AssertNotCalled(t, "IsSubmitted", mock.Anything, mock.Anything, mock.Anything)
}

func TestCalendar_MonthWindow(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	timetable.On("GetEntry", mock.Anything, int64(1)).Return(lectureEntry(), nil)
	store.On("CalendarForStudent", mock.Anything, int64(1), int64(2401), from, to).Return([]*domain.AttendanceRecord{
		{Date: testDate, Status: domain.StatusPresent},
		{Date: testDate.AddDate(0, 0, 7), Status: domain.StatusAbsent},
	}, nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	days, err := service.Calendar(context.Background(), 101, 1, 2401, from)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, CalendarDay{Date: "2026-03-02", Status: "Present"}, days[0])
	assert.Equal(t, CalendarDay{Date: "2026-03-09", Status: "Absent"}, days[1])
}

func TestCalendar_OwnerGuard(t *testing.T) {
	store := new(mockAttendanceStore)
	timetable := new(mockTimetableReader)

	timetable.On("GetEntry", mock.Anything, int64(1)).Return(lectureEntry(), nil)

	service := NewService(store, timetable, new(mockStudentDirectory), new(mockTeacherDirectory))

	_, err := service.Calendar(context.Background(), 999, 1, 2401, testDate)
	assert.ErrorIs(t, err, ErrNotLectureOwner)
	store.AssertNotCalled(t, "CalendarForStudent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTeacherProfile(t *testing.T) {
	teachers := new(mockTeacherDirectory)
	teachers.On("GetAccount", mock.Anything, int64(101)).Return(&domain.Account{
		ID: 101, Name: "S. Deshmukh", Email: "deshmukh@college.edu",
	}, nil)

	service := NewService(new(mockAttendanceStore), new(mockTimetableReader), new(mockStudentDirectory), teachers)

	profile, err := service.TeacherProfile(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, "S. Deshmukh", profile.Name)
	assert.Equal(t, "deshmukh@college.edu", profile.Email)
}

func TestTeacherProfile_NotFound(t *testing.T) {
	teachers := new(mockTeacherDirectory)
	teachers.On("GetAccount", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(mockAttendanceStore), new(mockTimetableReader), new(mockStudentDirectory), teachers)

	_, err := service.TeacherProfile(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestProfile(t *testing.T) {
	store := new(mockAttendanceStore)
	students := new(mockStudentDirectory)

	students.On("GetByRollNo", mock.Anything, int64(2401)).Return(&domain.Account{
		ID: 2401, Name: "Krishna Patel", Class: "SE", Div: "A", Batch: "A1",
	}, nil)
	store.On("OverallForStudent", mock.Anything, int64(2401)).Return(&domain.AttendanceTotals{
		TotalClasses: 40, PresentClasses: 33, Percentage: 82.5,
	}, nil)

	service := NewService(store, new(mockTimetableReader), students, new(mockTeacherDirectory))

	profile, err := service.Profile(context.Background(), 2401)
	require.NoError(t, err)
	assert.Equal(t, "Krishna Patel", profile.Name)
	assert.Equal(t, "A1", profile.Batch)
	assert.InDelta(t, 82.5, profile.Overall.Percentage, 0.001)
}
