package event

import (
	"errors"
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func baseEvent() *Event {
	return &Event{
		ID:                   1,
		Title:                "Intro to Git",
		RegistrationRequired: true,
		MaxParticipants:      intPtr(3),
		Registrations: []Registration{
			{EventID: 1, Name: "Asha", Email: "asha@example.com"},
			{EventID: 1, Name: "Ravi", Email: "ravi@example.com"},
		},
	}
}

func TestRegistrationGate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(e *Event)
		email   string
		wantErr error
	}{
		{
			name:    "accepts new participant",
			mutate:  func(e *Event) {},
			email:   "new@example.com",
			wantErr: nil,
		},
		{
			name: "rejects when registration not required",
			mutate: func(e *Event) {
				e.RegistrationRequired = false
			},
			email:   "new@example.com",
			wantErr: ErrRegistrationNotRequired,
		},
		{
			name:    "rejects duplicate email",
			mutate:  func(e *Event) {},
			email:   "asha@example.com",
			wantErr: ErrAlreadyRegistered,
		},
		{
			name: "rejects when full",
			mutate: func(e *Event) {
				e.MaxParticipants = intPtr(2)
			},
			email:   "new@example.com",
			wantErr: ErrEventFull,
		},
		{
			name: "duplicate wins over full",
			mutate: func(e *Event) {
				e.MaxParticipants = intPtr(2)
			},
			email:   "ravi@example.com",
			wantErr: ErrAlreadyRegistered,
		},
		{
			name: "rejects after deadline",
			mutate: func(e *Event) {
				e.RegistrationDeadline = timePtr(now.Add(-time.Hour))
			},
			email:   "new@example.com",
			wantErr: ErrRegistrationClosed,
		},
		{
			name: "accepts exactly at deadline",
			mutate: func(e *Event) {
				e.RegistrationDeadline = timePtr(now)
			},
			email:   "new@example.com",
			wantErr: nil,
		},
		{
			name: "nil capacity means unlimited",
			mutate: func(e *Event) {
				e.MaxParticipants = nil
			},
			email:   "new@example.com",
			wantErr: nil,
		},
		{
			name: "email comparison is case sensitive",
			mutate: func(e *Event) {
				e.MaxParticipants = nil
			},
			email:   "ASHA@example.com",
			wantErr: nil,
		},
		{
			name: "not required wins over duplicate",
			mutate: func(e *Event) {
				e.RegistrationRequired = false
			},
			email:   "asha@example.com",
			wantErr: ErrRegistrationNotRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := baseEvent()
			tt.mutate(e)
			err := registrationGate(e, tt.email, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("registrationGate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAcceptsRegistrations(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	e := baseEvent()
	if !e.AcceptsRegistrations(now) {
		t.Fatal("expected open registration")
	}

	e.MaxParticipants = intPtr(2)
	if e.AcceptsRegistrations(now) {
		t.Fatal("expected closed registration when full")
	}

	e = baseEvent()
	e.RegistrationDeadline = timePtr(now.Add(-time.Minute))
	if e.AcceptsRegistrations(now) {
		t.Fatal("expected closed registration after deadline")
	}

	e = baseEvent()
	e.RegistrationRequired = false
	if e.AcceptsRegistrations(now) {
		t.Fatal("expected closed registration when not required")
	}
}
