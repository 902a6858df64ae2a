package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Domain errors surfaced through the service so handlers can map them to the
// right HTTP status and user-facing message.
var (
	ErrNotFound                = errors.New("event not found")
	ErrRegistrationNotRequired = errors.New("this event does not require registration")
	ErrAlreadyRegistered       = errors.New("already registered for this event")
	ErrEventFull               = errors.New("event is full")
	ErrRegistrationClosed      = errors.New("registration deadline has passed")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID with its registration list
func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	err := r.DB.
		Preload("Registrations", func(db *gorm.DB) *gorm.DB {
			return db.Order("registered_at ASC")
		}).
		First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ===========================
// 📄 Public listing: visible events with optional filters, soonest first
func (r *Repository) ListPublic(filter ListFilter) ([]Event, error) {
	query := r.DB.Where("is_public = TRUE")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Upcoming {
		query = query.Where("date >= CURRENT_DATE")
	}

	var events []Event
	err := query.
		Preload("Registrations").
		Order("date ASC").
		Find(&events).Error
	return events, err
}

// ===========================
// 📄 Admin listing: everything, newest first
func (r *Repository) ListAll() ([]Event, error) {
	var events []Event
	err := r.DB.
		Preload("Registrations").
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// ❌ Delete Event (cascades the registration list)
func (r *Repository) DeleteEvent(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&Registration{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ===========================
// 📝 Register Participant
//
// The duplicate, capacity, and deadline checks plus the append are one
// read-modify-write sequence against a single event row. Two concurrent
// attempts near full capacity would both read "not full" and overshoot
// maxParticipants if this ran as separate load/check/save calls, so the
// whole sequence runs in one transaction holding a row-level lock on the
// event: SELECT ... FOR UPDATE blocks any concurrent registration for the
// same event until commit or rollback. Either the full registration becomes
// visible or nothing is persisted.
func (r *Repository) RegisterParticipant(ctx context.Context, eventID uint, name, email, phone string) (*Event, error) {
	var registered *Event

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lock event row: %w", err)
		}

		// Read the current list while holding the lock.
		if err := tx.Where("event_id = ?", eventID).
			Order("registered_at ASC").
			Find(&e.Registrations).Error; err != nil {
			return fmt.Errorf("load registrations: %w", err)
		}

		if err := registrationGate(&e, email, time.Now()); err != nil {
			return err
		}

		reg := Registration{
			EventID:      eventID,
			Name:         name,
			Email:        email,
			Phone:        phone,
			RegisteredAt: time.Now(),
		}
		if err := tx.Create(&reg).Error; err != nil {
			return fmt.Errorf("insert registration: %w", err)
		}

		e.Registrations = append(e.Registrations, reg)
		registered = &e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return registered, nil
}

// ===========================
// 🔢 Count registrations for an event
func (r *Repository) CountRegistrations(eventID uint) (int, error) {
	var count int64
	err := r.DB.Model(&Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return int(count), err
}
