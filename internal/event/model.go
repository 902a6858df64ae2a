package event

import (
	"time"

	"gorm.io/datatypes"
)

// Category is the closed set of event categories.
type Category string

const (
	CategoryWorkshop    Category = "workshop"
	CategorySeminar     Category = "seminar"
	CategoryCompetition Category = "competition"
	CategoryMeeting     Category = "meeting"
	CategorySocial      Category = "social"
	CategoryOther       Category = "other"
)

// Valid reports whether c is a recognized category. Unrecognized values are
// rejected at the boundary instead of stored as free text.
func (c Category) Valid() bool {
	switch c {
	case CategoryWorkshop, CategorySeminar, CategoryCompetition, CategoryMeeting, CategorySocial, CategoryOther:
		return true
	}
	return false
}

// Status is the closed set of event lifecycle states.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"type:varchar(255);not null" json:"title"`
	Description      string     `gorm:"type:text;not null" json:"description"`
	ShortDescription string     `gorm:"type:text" json:"shortDescription"`
	Date             time.Time  `gorm:"not null;index" json:"date"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Time             string     `gorm:"type:varchar(20);not null" json:"time"`
	Location         string     `gorm:"type:varchar(255);not null" json:"location"`
	Image            string     `gorm:"type:text;default:''" json:"image"`
	Category         Category   `gorm:"type:varchar(20);not null;default:other" json:"category"`
	Status           Status     `gorm:"type:varchar(20);not null;default:upcoming" json:"status"`

	MaxParticipants      *int           `json:"maxParticipants,omitempty"`
	RegistrationRequired bool           `gorm:"not null;default:false" json:"registrationRequired"`
	RegistrationDeadline *time.Time     `json:"registrationDeadline,omitempty"`
	Registrations        []Registration `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"registeredParticipants"`

	// Organizers holds team member IDs; Tags a plain string list.
	Organizers datatypes.JSON `json:"organizers"`
	Tags       datatypes.JSON `json:"tags"`

	IsPublic  bool      `gorm:"not null;default:true" json:"isPublic"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Derived, not persisted: whether a registration attempt could currently
	// succeed (capacity and deadline permitting).
	RegistrationOpen bool `gorm:"-" json:"registrationOpen"`
}

// Registration is one participant's sign-up, owned exclusively by its event.
// Fixed-field record: unexpected fields are rejected at the boundary.
type Registration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventID      uint      `gorm:"not null;index" json:"event_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	RegisteredAt time.Time `gorm:"not null" json:"registeredAt"`
}

// AcceptsRegistrations is the read-side eligibility predicate: mirrors the
// workflow's precondition checks without mutating anything. Used to decide
// whether to present a registration option at all.
func (e *Event) AcceptsRegistrations(now time.Time) bool {
	if !e.RegistrationRequired {
		return false
	}
	if e.MaxParticipants != nil && len(e.Registrations) >= *e.MaxParticipants {
		return false
	}
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return false
	}
	return true
}

// registrationGate decides whether a registration attempt may proceed.
// Check order is observable through error precedence and is deliberate:
// "not required" first (the list is only meaningful when registration is
// enabled), then duplicate before capacity so a retrying user sees their own
// duplicate instead of a misleading "full". Email comparison is exact and
// case-sensitive, as stored.
func registrationGate(e *Event, email string, now time.Time) error {
	if !e.RegistrationRequired {
		return ErrRegistrationNotRequired
	}
	for _, r := range e.Registrations {
		if r.Email == email {
			return ErrAlreadyRegistered
		}
	}
	if e.MaxParticipants != nil && len(e.Registrations) >= *e.MaxParticipants {
		return ErrEventFull
	}
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return ErrRegistrationClosed
	}
	return nil
}

// ============================
// 🟡 Create / Update Event Request
type CreateEventRequest struct {
	Title                string
	Description          string
	ShortDescription     string
	Date                 string // "2006-01-02"
	EndDate              string
	Time                 string // "15:04"
	Location             string
	Category             string
	Status               string
	MaxParticipants      *int
	Organizers           []uint
	Tags                 []string
	IsPublic             *bool
	RegistrationRequired *bool
	RegistrationDeadline string // RFC 3339 or "2006-01-02"
	Image                string // set after upload
}

// RegisterRequest is the public registration payload. DisallowUnknownFields
// is enforced in the handler so loosely-shaped payloads are rejected.
type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// ListFilter narrows the public event listing.
type ListFilter struct {
	Status   string
	Category string
	Upcoming bool
}
