package event_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tda-club/club-website-backend/internal/event"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := db.AutoMigrate(&event.Event{}, &event.Registration{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestEvent(t *testing.T, r *event.Repository, max *int, deadline *time.Time) *event.Event {
	t.Helper()
	e := &event.Event{
		Title:                fmt.Sprintf("test-event-%d", time.Now().UnixNano()),
		Description:          "integration test event",
		Date:                 time.Now().Add(48 * time.Hour),
		Time:                 "17:00",
		Location:             "Lab 2",
		Category:             event.CategoryWorkshop,
		Status:               event.StatusUpcoming,
		RegistrationRequired: true,
		MaxParticipants:      max,
		RegistrationDeadline: deadline,
	}
	if err := r.CreateEvent(e); err != nil {
		t.Fatalf("create event: %v", err)
	}
	t.Cleanup(func() { _ = r.DeleteEvent(e.ID) })
	return e
}

func TestRegisterParticipant(t *testing.T) {
	db := setupDB(t)
	r := event.NewRepository(db)

	max := 2
	e := createTestEvent(t, r, &max, nil)
	ctx := context.Background()

	got, err := r.RegisterParticipant(ctx, e.ID, "Asha", "asha@example.com", "")
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if len(got.Registrations) != 1 {
		t.Fatalf("registrations = %d, want 1", len(got.Registrations))
	}

	if _, err := r.RegisterParticipant(ctx, e.ID, "Asha", "asha@example.com", ""); !errors.Is(err, event.ErrAlreadyRegistered) {
		t.Fatalf("duplicate: got %v, want ErrAlreadyRegistered", err)
	}

	if _, err := r.RegisterParticipant(ctx, e.ID, "Ravi", "ravi@example.com", ""); err != nil {
		t.Fatalf("second registration: %v", err)
	}

	if _, err := r.RegisterParticipant(ctx, e.ID, "Late", "late@example.com", ""); !errors.Is(err, event.ErrEventFull) {
		t.Fatalf("over capacity: got %v, want ErrEventFull", err)
	}
}

func TestRegisterParticipantDeadline(t *testing.T) {
	db := setupDB(t)
	r := event.NewRepository(db)

	past := time.Now().Add(-time.Hour)
	e := createTestEvent(t, r, nil, &past)

	_, err := r.RegisterParticipant(context.Background(), e.ID, "Late", "late@example.com", "")
	if !errors.Is(err, event.ErrRegistrationClosed) {
		t.Fatalf("got %v, want ErrRegistrationClosed", err)
	}
}

func TestRegisterParticipantMissingEvent(t *testing.T) {
	db := setupDB(t)
	r := event.NewRepository(db)

	_, err := r.RegisterParticipant(context.Background(), 999999, "Ghost", "ghost@example.com", "")
	if !errors.Is(err, event.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

// Capacity must hold under concurrent attempts: the row lock serializes the
// check-then-insert so the winner count never exceeds MaxParticipants.
func TestRegisterParticipantConcurrent(t *testing.T) {
	db := setupDB(t)
	r := event.NewRepository(db)

	max := 5
	e := createTestEvent(t, r, &max, nil)

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	var succeeded int

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			email := fmt.Sprintf("racer-%d@example.com", n)
			_, err := r.RegisterParticipant(context.Background(), e.ID, "Racer", email, "")
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			if !errors.Is(err, event.ErrEventFull) {
				t.Errorf("attempt %d: unexpected error %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != max {
		t.Fatalf("succeeded = %d, want %d", succeeded, max)
	}

	count, err := r.CountRegistrations(e.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != max {
		t.Fatalf("stored registrations = %d, want %d", count, max)
	}
}
