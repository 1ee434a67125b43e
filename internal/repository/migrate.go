package repository

import "gorm.io/gorm"

// Migrate creates or updates the schema for every table the repositories own.
// Called by cmd/seed and the test harness; production runs it on startup too,
// mirroring how the service has always initialized its store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&studentModel{},
		&teacherModel{},
		&subjectModel{},
		&timetableModel{},
		&attendanceModel{},
		&emailOTPModel{},
	)
}
