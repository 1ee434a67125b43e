package repository

import (
	"context"
	"strings"
	"time"

	"upasthit/internal/domain"

	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

type studentModel struct {
	RollNo                int64      `gorm:"column:student_rollno;primaryKey"`
	Name                  string     `gorm:"column:name"`
	Class                 string     `gorm:"column:class"`
	Div                   string     `gorm:"column:div"`
	Batch                 string     `gorm:"column:batch"`
	Email                 *string    `gorm:"column:email;uniqueIndex"`
	EmailVerified         bool       `gorm:"column:email_verified"`
	PasswordHash          string     `gorm:"column:password_hash"`
	RefreshTokenHash      *string    `gorm:"column:refresh_token_hash"`
	RefreshTokenExpiresAt *time.Time `gorm:"column:refresh_token_expires_at"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at"`
}

func (studentModel) TableName() string { return "students" }

func toStudentAccount(m studentModel) *domain.Account {
	var email string
	if m.Email != nil {
		email = *m.Email
	}

	return &domain.Account{
		ID:                    m.RollNo,
		Name:                  m.Name,
		Email:                 email,
		Role:                  domain.RoleStudent,
		Class:                 m.Class,
		Div:                   m.Div,
		Batch:                 m.Batch,
		EmailVerified:         m.EmailVerified,
		PasswordHash:          m.PasswordHash,
		RefreshTokenHash:      m.RefreshTokenHash,
		RefreshTokenExpiresAt: m.RefreshTokenExpiresAt,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func (r *StudentRepository) Create(ctx context.Context, a *domain.Account) error {
	var email *string
	if a.Email != "" {
		v := strings.ToLower(strings.TrimSpace(a.Email))
		email = &v
	}

	m := studentModel{
		RollNo:        a.ID,
		Name:          a.Name,
		Class:         a.Class,
		Div:           a.Div,
		Batch:         a.Batch,
		Email:         email,
		EmailVerified: a.EmailVerified,
		PasswordHash:  a.PasswordHash,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	a.ID = m.RollNo
	return nil
}

func (r *StudentRepository) GetByRollNo(ctx context.Context, rollNo int64) (*domain.Account, error) {
	var m studentModel
	tx := r.db.WithContext(ctx).First(&m, "student_rollno = ?", rollNo)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toStudentAccount(m), nil
}

func (r *StudentRepository) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return r.GetByRollNo(ctx, id)
}

// SetRefreshToken overwrites the persisted session in a single UPDATE keyed by
// roll number. Last writer wins: a concurrent login simply supersedes the
// earlier one, which is the single-active-session policy.
func (r *StudentRepository) SetRefreshToken(ctx context.Context, id int64, hash string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&studentModel{}).
		Where("student_rollno = ?", id).
		Updates(map[string]any{
			"refresh_token_hash":       hash,
			"refresh_token_expires_at": expiresAt,
		}).Error
}

func (r *StudentRepository) ClearRefreshToken(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&studentModel{}).
		Where("student_rollno = ?", id).
		Updates(map[string]any{
			"refresh_token_hash":       nil,
			"refresh_token_expires_at": nil,
		}).Error
}

func (r *StudentRepository) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&studentModel{}).
		Where("refresh_token_expires_at IS NOT NULL AND refresh_token_expires_at < ?", now).
		Updates(map[string]any{
			"refresh_token_hash":       nil,
			"refresh_token_expires_at": nil,
		})
	return tx.RowsAffected, tx.Error
}

// ListForLecture returns the students a timetable entry applies to: the whole
// class/div for lectures, one batch for practicals.
func (r *StudentRepository) ListForLecture(ctx context.Context, entry *domain.TimetableEntry) ([]*domain.Account, error) {
	q := r.db.WithContext(ctx).Model(&studentModel{}).
		Where("class = ? AND div = ?", entry.Class, entry.Div)
	if entry.LectureType == domain.LectureTypePractical && entry.Batch != "" {
		q = q.Where("batch = ?", entry.Batch)
	}

	var models []studentModel
	if err := q.Order("student_rollno").Find(&models).Error; err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(models))
	for _, m := range models {
		accounts = append(accounts, toStudentAccount(m))
	}
	return accounts, nil
}

func (r *StudentRepository) EmailTakenByOther(ctx context.Context, email string, rollNo int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&studentModel{}).
		Where("LOWER(email) = ? AND student_rollno <> ?", strings.ToLower(strings.TrimSpace(email)), rollNo).
		Count(&count).Error
	return count > 0, err
}

func (r *StudentRepository) SetEmail(ctx context.Context, rollNo int64, email string, verified bool) error {
	return r.db.WithContext(ctx).Model(&studentModel{}).
		Where("student_rollno = ?", rollNo).
		Updates(map[string]any{
			"email":          strings.ToLower(strings.TrimSpace(email)),
			"email_verified": verified,
		}).Error
}

func (r *StudentRepository) MarkEmailVerified(ctx context.Context, rollNo int64) error {
	return r.db.WithContext(ctx).Model(&studentModel{}).
		Where("student_rollno = ?", rollNo).
		Update("email_verified", true).Error
}
