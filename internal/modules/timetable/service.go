package timetable

import (
	"context"
	"time"

	"upasthit/internal/domain"
)

// TimetableStore — weekly slot lookups per role
type TimetableStore interface {
	WeeklyForStudent(ctx context.Context, class, div, batch string) ([]*domain.TimetableEntry, error)
	WeeklyForTeacher(ctx context.Context, teacherID int64) ([]*domain.TimetableEntry, error)
}

// StudentReader resolves a student's class/div/batch for slot filtering.
type StudentReader interface {
	GetByRollNo(ctx context.Context, rollNo int64) (*domain.Account, error)
}

type Service struct {
	store    TimetableStore
	students StudentReader
}

func NewService(store TimetableStore, students StudentReader) *Service {
	return &Service{store: store, students: students}
}

// Weekly returns the principal's full week: a student sees their class's
// lectures plus their batch's practicals, a teacher sees every slot they teach.
func (s *Service) Weekly(ctx context.Context, principal domain.Principal) ([]Slot, error) {
	entries, err := s.entriesFor(ctx, principal)
	if err != nil {
		return nil, err
	}
	return toSlots(entries), nil
}

// Today filters the weekly view down to the current day.
func (s *Service) Today(ctx context.Context, principal domain.Principal, now time.Time) ([]Slot, error) {
	entries, err := s.entriesFor(ctx, principal)
	if err != nil {
		return nil, err
	}

	day := domain.WeekdayNumber(now)
	todays := make([]*domain.TimetableEntry, 0, len(entries))
	for _, e := range entries {
		if e.DayOfWeek == day {
			todays = append(todays, e)
		}
	}
	return toSlots(todays), nil
}

func (s *Service) entriesFor(ctx context.Context, principal domain.Principal) ([]*domain.TimetableEntry, error) {
	switch principal.Role {
	case domain.RoleStudent:
		student, err := s.students.GetByRollNo(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		return s.store.WeeklyForStudent(ctx, student.Class, student.Div, student.Batch)
	default:
		return s.store.WeeklyForTeacher(ctx, principal.ID)
	}
}

func toSlots(entries []*domain.TimetableEntry) []Slot {
	slots := make([]Slot, 0, len(entries))
	for _, e := range entries {
		slots = append(slots, toSlot(e))
	}
	return slots
}
