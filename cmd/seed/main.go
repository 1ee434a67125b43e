package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"upasthit/internal/database"
	"upasthit/internal/domain"
	"upasthit/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "upasthit.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM attendance")
	db.Exec("DELETE FROM email_otps")
	db.Exec("DELETE FROM timetable")
	db.Exec("DELETE FROM subjects")
	db.Exec("DELETE FROM students")
	db.Exec("DELETE FROM teachers")

	ctx := context.Background()
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)

	log.Println("Creating teachers...")
	teachers := []domain.Account{
		{ID: 101, Name: "Dr. Krishna Singal", Email: "krishna.singal@ltce.in"},
		{ID: 102, Name: "Prof. Meera Joshi", Email: "meera.joshi@ltce.in"},
	}
	for i := range teachers {
		teachers[i].PasswordHash = mustHash("Teacher123")
		if err := teacherRepo.Create(ctx, &teachers[i]); err != nil {
			log.Fatal("teacher insert failed:", err)
		}
	}

	log.Println("Creating students...")
	students := []domain.Account{
		{ID: 2401, Name: "Krishna Patel", Class: "SE", Div: "A", Batch: "A1", Email: "krishnapatel_comp_2024@ltce.in"},
		{ID: 2402, Name: "Sahil Kadam", Class: "SE", Div: "A", Batch: "A1", Email: "sahilkadam_comp_2024@ltce.in"},
		{ID: 2403, Name: "Kushal Dubey", Class: "SE", Div: "A", Batch: "A2", Email: "kushaldubey_comp_2024@ltce.in"},
		{ID: 2404, Name: "Dewarat Singh", Class: "SE", Div: "A", Batch: "A2", Email: "dewaratsingh_comp_2024@ltce.in"},
	}
	for i := range students {
		students[i].PasswordHash = mustHash("Password123")
		if err := studentRepo.Create(ctx, &students[i]); err != nil {
			log.Fatal("student insert failed:", err)
		}
	}

	log.Println("Creating subjects and timetable...")
	subjects := []domain.Subject{
		{Name: "Data Structures"},
		{Name: "Discrete Mathematics"},
	}
	for i := range subjects {
		if err := timetableRepo.CreateSubject(ctx, &subjects[i]); err != nil {
			log.Fatal("subject insert failed:", err)
		}
	}

	entries := []domain.TimetableEntry{
		{Class: "SE", Div: "A", SubjectID: subjects[0].ID, TeacherID: 101, DayOfWeek: 1, LectureNo: 1, LectureType: domain.LectureTypeLecture},
		{Class: "SE", Div: "A", SubjectID: subjects[1].ID, TeacherID: 102, DayOfWeek: 1, LectureNo: 2, LectureType: domain.LectureTypeLecture},
		{Class: "SE", Div: "A", SubjectID: subjects[0].ID, TeacherID: 101, DayOfWeek: 3, LectureNo: 4, LectureType: domain.LectureTypePractical, Batch: "A1"},
		{Class: "SE", Div: "A", SubjectID: subjects[0].ID, TeacherID: 101, DayOfWeek: 3, LectureNo: 5, LectureType: domain.LectureTypePractical, Batch: "A2"},
	}
	for i := range entries {
		if err := timetableRepo.CreateEntry(ctx, &entries[i]); err != nil {
			log.Fatal("timetable insert failed:", err)
		}
	}

	log.Printf("Seed complete: %d teachers, %d students, %d subjects, %d timetable entries",
		len(teachers), len(students), len(subjects), len(entries))
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt failed:", err)
	}
	return string(hash)
}
