package repository

import (
	"context"

	"upasthit/internal/domain"

	"gorm.io/gorm"
)

type TimetableRepository struct {
	db *gorm.DB
}

func NewTimetableRepository(db *gorm.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

type subjectModel struct {
	ID   int64  `gorm:"column:subject_id;primaryKey"`
	Name string `gorm:"column:subject_name;uniqueIndex"`
}

func (subjectModel) TableName() string { return "subjects" }

type timetableModel struct {
	ID          int64  `gorm:"column:timetable_id;primaryKey"`
	Class       string `gorm:"column:class"`
	Div         string `gorm:"column:div"`
	SubjectID   int64  `gorm:"column:subject_id"`
	TeacherID   int64  `gorm:"column:teacher_id;index"`
	DayOfWeek   int    `gorm:"column:day_of_week"`
	LectureNo   int    `gorm:"column:lecture_no"`
	LectureType string `gorm:"column:lecture_type"`
	Batch       string `gorm:"column:batch"`
}

func (timetableModel) TableName() string { return "timetable" }

// entryRow carries the joined subject and teacher names alongside the slot.
type entryRow struct {
	timetableModel `gorm:"embedded"`
	SubjectName string `gorm:"column:subject_name"`
	TeacherName string `gorm:"column:teacher_name"`
}

func toEntry(r entryRow) *domain.TimetableEntry {
	return &domain.TimetableEntry{
		ID:          r.ID,
		Class:       r.Class,
		Div:         r.Div,
		SubjectID:   r.SubjectID,
		SubjectName: r.SubjectName,
		TeacherID:   r.TeacherID,
		TeacherName: r.TeacherName,
		DayOfWeek:   r.DayOfWeek,
		LectureNo:   r.LectureNo,
		LectureType: domain.LectureType(r.LectureType),
		Batch:       r.Batch,
	}
}

func (r *TimetableRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("timetable t").
		Select("t.*, s.subject_name AS subject_name, tc.name AS teacher_name").
		Joins("JOIN subjects s ON s.subject_id = t.subject_id").
		Joins("JOIN teachers tc ON tc.teacher_id = t.teacher_id")
}

func (r *TimetableRepository) GetEntry(ctx context.Context, id int64) (*domain.TimetableEntry, error) {
	var row entryRow
	if err := r.joined(ctx).Where("t.timetable_id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return toEntry(row), nil
}

// WeeklyForStudent returns all lecture slots for the class plus the practical
// slots of the student's own batch.
func (r *TimetableRepository) WeeklyForStudent(ctx context.Context, class, div, batch string) ([]*domain.TimetableEntry, error) {
	rows, err := r.list(ctx, r.joined(ctx).
		Where("t.class = ? AND t.div = ?", class, div).
		Where("t.lecture_type = ? OR (t.lecture_type = ? AND t.batch = ?)",
			string(domain.LectureTypeLecture), string(domain.LectureTypePractical), batch))
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TimetableRepository) WeeklyForTeacher(ctx context.Context, teacherID int64) ([]*domain.TimetableEntry, error) {
	return r.list(ctx, r.joined(ctx).Where("t.teacher_id = ?", teacherID))
}

func (r *TimetableRepository) list(ctx context.Context, q *gorm.DB) ([]*domain.TimetableEntry, error) {
	var rows []entryRow
	if err := q.Order("t.day_of_week, t.lecture_no").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.TimetableEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toEntry(row))
	}
	return entries, nil
}

func (r *TimetableRepository) CreateSubject(ctx context.Context, s *domain.Subject) error {
	m := subjectModel{ID: s.ID, Name: s.Name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	s.ID = m.ID
	return nil
}

func (r *TimetableRepository) CreateEntry(ctx context.Context, e *domain.TimetableEntry) error {
	m := timetableModel{
		ID:          e.ID,
		Class:       e.Class,
		Div:         e.Div,
		SubjectID:   e.SubjectID,
		TeacherID:   e.TeacherID,
		DayOfWeek:   e.DayOfWeek,
		LectureNo:   e.LectureNo,
		LectureType: string(e.LectureType),
		Batch:       e.Batch,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	e.ID = m.ID
	return nil
}
