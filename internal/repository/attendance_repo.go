package repository

import (
	"context"
	"time"

	"upasthit/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

type attendanceModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	StudentRollNo int64     `gorm:"column:student_rollno;uniqueIndex:idx_attendance_mark"`
	TimetableID   int64     `gorm:"column:timetable_id;uniqueIndex:idx_attendance_mark"`
	Date          time.Time `gorm:"column:attendance_date;uniqueIndex:idx_attendance_mark"`
	Status        string    `gorm:"column:status"`
	Submitted     bool      `gorm:"column:submitted"`
	MarkedBy      int64     `gorm:"column:marked_by"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (attendanceModel) TableName() string { return "attendance" }

func toRecord(m attendanceModel) *domain.AttendanceRecord {
	return &domain.AttendanceRecord{
		ID:            m.ID,
		StudentRollNo: m.StudentRollNo,
		TimetableID:   m.TimetableID,
		Date:          m.Date,
		Status:        domain.AttendanceStatus(m.Status),
		Submitted:     m.Submitted,
		MarkedBy:      m.MarkedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// UpsertMark writes one student's mark for a lecture/date, replacing any
// earlier unsubmitted mark for the same slot.
func (r *AttendanceRepository) UpsertMark(ctx context.Context, rec *domain.AttendanceRecord) error {
	m := attendanceModel{
		StudentRollNo: rec.StudentRollNo,
		TimetableID:   rec.TimetableID,
		Date:          rec.Date,
		Status:        string(rec.Status),
		Submitted:     false,
		MarkedBy:      rec.MarkedBy,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_rollno"},
			{Name: "timetable_id"},
			{Name: "attendance_date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "updated_at"}),
	}).Create(&m).Error
}

func (r *AttendanceRepository) MarksForLecture(ctx context.Context, timetableID int64, date time.Time) ([]*domain.AttendanceRecord, error) {
	var models []attendanceModel
	err := r.db.WithContext(ctx).
		Where("timetable_id = ? AND attendance_date = ?", timetableID, date).
		Order("student_rollno").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	records := make([]*domain.AttendanceRecord, 0, len(models))
	for _, m := range models {
		records = append(records, toRecord(m))
	}
	return records, nil
}

// CalendarForStudent lists one student's marks for a lecture in [from, to),
// oldest date first.
func (r *AttendanceRepository) CalendarForStudent(ctx context.Context, timetableID, rollNo int64, from, to time.Time) ([]*domain.AttendanceRecord, error) {
	var models []attendanceModel
	err := r.db.WithContext(ctx).
		Where("timetable_id = ? AND student_rollno = ? AND attendance_date >= ? AND attendance_date < ?",
			timetableID, rollNo, from, to).
		Order("attendance_date").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	records := make([]*domain.AttendanceRecord, 0, len(models))
	for _, m := range models {
		records = append(records, toRecord(m))
	}
	return records, nil
}

func (r *AttendanceRepository) IsSubmitted(ctx context.Context, timetableID int64, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&attendanceModel{}).
		Where("timetable_id = ? AND attendance_date = ? AND submitted = ?", timetableID, date, true).
		Count(&count).Error
	return count > 0, err
}

// Submit finalizes all marks for a lecture/date. Submitted marks become
// immutable inputs to every report.
func (r *AttendanceRepository) Submit(ctx context.Context, timetableID int64, date time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&attendanceModel{}).
		Where("timetable_id = ? AND attendance_date = ?", timetableID, date).
		Update("submitted", true)
	return tx.RowsAffected, tx.Error
}

type totalsRow struct {
	Total   int `gorm:"column:total"`
	Present int `gorm:"column:present"`
}

func (r *AttendanceRepository) OverallForStudent(ctx context.Context, rollNo int64) (*domain.AttendanceTotals, error) {
	var row totalsRow
	err := r.db.WithContext(ctx).Model(&attendanceModel{}).
		Select("COUNT(*) AS total, SUM(CASE WHEN status = 'Present' THEN 1 ELSE 0 END) AS present").
		Where("student_rollno = ? AND submitted = ?", rollNo, true).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &domain.AttendanceTotals{
		TotalClasses:   row.Total,
		PresentClasses: row.Present,
		Percentage:     domain.AttendancePercent(row.Present, row.Total),
	}, nil
}

type dailyTotalsRow struct {
	Date    time.Time `gorm:"column:attendance_date"`
	Total   int       `gorm:"column:total"`
	Present int       `gorm:"column:present"`
}

// DailyForStudent returns per-date totals; month bucketing happens in the
// service where date formatting stays portable across drivers.
func (r *AttendanceRepository) DailyForStudent(ctx context.Context, rollNo int64) ([]domain.MonthlyAttendance, error) {
	var rows []dailyTotalsRow
	err := r.db.WithContext(ctx).Model(&attendanceModel{}).
		Select("attendance_date, COUNT(*) AS total, SUM(CASE WHEN status = 'Present' THEN 1 ELSE 0 END) AS present").
		Where("student_rollno = ? AND submitted = ?", rollNo, true).
		Group("attendance_date").
		Order("attendance_date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var out []domain.MonthlyAttendance
	for _, row := range rows {
		month := row.Date.Format("2006-01")
		if len(out) == 0 || out[len(out)-1].Month != month {
			out = append(out, domain.MonthlyAttendance{Month: month})
		}
		last := &out[len(out)-1]
		last.TotalClasses += row.Total
		last.PresentClasses += row.Present
	}
	for i := range out {
		out[i].Percentage = domain.AttendancePercent(out[i].PresentClasses, out[i].TotalClasses)
	}
	return out, nil
}

type subjectTotalsRow struct {
	SubjectName string `gorm:"column:subject_name"`
	Total       int    `gorm:"column:total"`
	Present     int    `gorm:"column:present"`
}

func (r *AttendanceRepository) SubjectWiseForStudent(ctx context.Context, rollNo int64) ([]domain.SubjectAttendance, error) {
	var rows []subjectTotalsRow
	err := r.db.WithContext(ctx).Table("attendance a").
		Select("s.subject_name AS subject_name, COUNT(*) AS total, SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END) AS present").
		Joins("JOIN timetable t ON t.timetable_id = a.timetable_id").
		Joins("JOIN subjects s ON s.subject_id = t.subject_id").
		Where("a.student_rollno = ? AND a.submitted = ?", rollNo, true).
		Group("s.subject_name").
		Order("s.subject_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.SubjectAttendance, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SubjectAttendance{
			SubjectName: row.SubjectName,
			AttendanceTotals: domain.AttendanceTotals{
				TotalClasses:   row.Total,
				PresentClasses: row.Present,
				Percentage:     domain.AttendancePercent(row.Present, row.Total),
			},
		})
	}
	return out, nil
}

type summaryRow struct {
	RollNo  int64  `gorm:"column:student_rollno"`
	Name    string `gorm:"column:name"`
	Total   int    `gorm:"column:total"`
	Present int    `gorm:"column:present"`
}

// SummaryForLecture is the per-student breakdown a teacher sees for one slot.
func (r *AttendanceRepository) SummaryForLecture(ctx context.Context, timetableID int64) ([]domain.StudentAttendanceSummary, error) {
	var rows []summaryRow
	err := r.db.WithContext(ctx).Table("attendance a").
		Select("a.student_rollno, st.name AS name, COUNT(*) AS total, SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END) AS present").
		Joins("JOIN students st ON st.student_rollno = a.student_rollno").
		Where("a.timetable_id = ? AND a.submitted = ?", timetableID, true).
		Group("a.student_rollno, st.name").
		Order("a.student_rollno").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.StudentAttendanceSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.StudentAttendanceSummary{
			RollNo: row.RollNo,
			Name:   row.Name,
			AttendanceTotals: domain.AttendanceTotals{
				TotalClasses:   row.Total,
				PresentClasses: row.Present,
				Percentage:     domain.AttendancePercent(row.Present, row.Total),
			},
		})
	}
	return out, nil
}
