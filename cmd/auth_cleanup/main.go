package main

import (
	"context"
	"log"
	"os"
	"time"

	"upasthit/internal/database"
	"upasthit/internal/repository"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()
	now := time.Now()

	students, err := repository.NewStudentRepository(db).ClearExpiredRefreshTokens(ctx, now)
	if err != nil {
		log.Fatalf("cleanup students failed: %v", err)
	}

	teachers, err := repository.NewTeacherRepository(db).ClearExpiredRefreshTokens(ctx, now)
	if err != nil {
		log.Fatalf("cleanup teachers failed: %v", err)
	}

	otps, err := repository.NewOTPRepository(db).DeleteExpired(ctx, now)
	if err != nil {
		log.Fatalf("cleanup email_otps failed: %v", err)
	}

	log.Printf("auth cleanup completed: students=%d teachers=%d email_otps=%d", students, teachers, otps)
}
