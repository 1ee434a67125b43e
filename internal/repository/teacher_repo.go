package repository

import (
	"context"
	"strings"
	"time"

	"upasthit/internal/domain"

	"gorm.io/gorm"
)

type TeacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

type teacherModel struct {
	ID                    int64      `gorm:"column:teacher_id;primaryKey"`
	Name                  string     `gorm:"column:name"`
	Email                 string     `gorm:"column:email;uniqueIndex"`
	PasswordHash          string     `gorm:"column:password_hash"`
	RefreshTokenHash      *string    `gorm:"column:refresh_token_hash"`
	RefreshTokenExpiresAt *time.Time `gorm:"column:refresh_token_expires_at"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at"`
}

func (teacherModel) TableName() string { return "teachers" }

func toTeacherAccount(m teacherModel) *domain.Account {
	return &domain.Account{
		ID:                    m.ID,
		Name:                  m.Name,
		Email:                 m.Email,
		Role:                  domain.RoleTeacher,
		EmailVerified:         true,
		PasswordHash:          m.PasswordHash,
		RefreshTokenHash:      m.RefreshTokenHash,
		RefreshTokenExpiresAt: m.RefreshTokenExpiresAt,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func (r *TeacherRepository) Create(ctx context.Context, a *domain.Account) error {
	m := teacherModel{
		ID:           a.ID,
		Name:         a.Name,
		Email:        strings.ToLower(strings.TrimSpace(a.Email)),
		PasswordHash: a.PasswordHash,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	a.ID = m.ID
	return nil
}

func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var m teacherModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toTeacherAccount(m), nil
}

func (r *TeacherRepository) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	var m teacherModel
	tx := r.db.WithContext(ctx).First(&m, "teacher_id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toTeacherAccount(m), nil
}

func (r *TeacherRepository) SetRefreshToken(ctx context.Context, id int64, hash string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&teacherModel{}).
		Where("teacher_id = ?", id).
		Updates(map[string]any{
			"refresh_token_hash":       hash,
			"refresh_token_expires_at": expiresAt,
		}).Error
}

func (r *TeacherRepository) ClearRefreshToken(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&teacherModel{}).
		Where("teacher_id = ?", id).
		Updates(map[string]any{
			"refresh_token_hash":       nil,
			"refresh_token_expires_at": nil,
		}).Error
}

func (r *TeacherRepository) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&teacherModel{}).
		Where("refresh_token_expires_at IS NOT NULL AND refresh_token_expires_at < ?", now).
		Updates(map[string]any{
			"refresh_token_hash":       nil,
			"refresh_token_expires_at": nil,
		})
	return tx.RowsAffected, tx.Error
}
