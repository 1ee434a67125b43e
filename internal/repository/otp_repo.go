package repository

import (
	"context"
	"time"

	"upasthit/internal/domain"

	"gorm.io/gorm"
)

type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

type emailOTPModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	StudentRollNo int64     `gorm:"column:student_rollno;uniqueIndex"`
	Email         string    `gorm:"column:email"`
	Code          string    `gorm:"column:otp"`
	Attempts      int       `gorm:"column:attempts"`
	Resends       int       `gorm:"column:resends"`
	LastSentAt    time.Time `gorm:"column:last_sent_at"`
	ExpiresAt     time.Time `gorm:"column:expires_at"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (emailOTPModel) TableName() string { return "email_otps" }

func toEmailOTP(m emailOTPModel) *domain.EmailOTP {
	return &domain.EmailOTP{
		ID:            m.ID,
		StudentRollNo: m.StudentRollNo,
		Email:         m.Email,
		Code:          m.Code,
		Attempts:      m.Attempts,
		Resends:       m.Resends,
		LastSentAt:    m.LastSentAt,
		ExpiresAt:     m.ExpiresAt,
		CreatedAt:     m.CreatedAt,
	}
}

// Replace drops any pending code for the student and stores the new one.
func (r *OTPRepository) Replace(ctx context.Context, o *domain.EmailOTP) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_rollno = ?", o.StudentRollNo).Delete(&emailOTPModel{}).Error; err != nil {
			return err
		}
		m := emailOTPModel{
			StudentRollNo: o.StudentRollNo,
			Email:         o.Email,
			Code:          o.Code,
			Resends:       o.Resends,
			LastSentAt:    o.LastSentAt,
			ExpiresAt:     o.ExpiresAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		o.ID = m.ID
		return nil
	})
}

func (r *OTPRepository) GetByStudent(ctx context.Context, rollNo int64) (*domain.EmailOTP, error) {
	var m emailOTPModel
	tx := r.db.WithContext(ctx).First(&m, "student_rollno = ?", rollNo)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toEmailOTP(m), nil
}

func (r *OTPRepository) IncrementAttempts(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&emailOTPModel{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *OTPRepository) MarkResent(ctx context.Context, id int64, sentAt time.Time, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&emailOTPModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"resends":      gorm.Expr("resends + 1"),
			"last_sent_at": sentAt,
			"expires_at":   expiresAt,
			"attempts":     0,
		}).Error
}

func (r *OTPRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&emailOTPModel{}, id).Error
}

func (r *OTPRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&emailOTPModel{})
	return tx.RowsAffected, tx.Error
}
