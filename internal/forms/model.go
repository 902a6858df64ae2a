package forms

import (
	"time"

	"gorm.io/datatypes"
)

// FormType labels which public form produced a submission.
type FormType string

const (
	TypeContact           FormType = "contact"
	TypeJoin              FormType = "join"
	TypeEventRegistration FormType = "event_registration"
	TypeFeedback          FormType = "feedback"
	TypeApplication       FormType = "application"
)

func (t FormType) Valid() bool {
	switch t {
	case TypeContact, TypeJoin, TypeEventRegistration, TypeFeedback, TypeApplication:
		return true
	}
	return false
}

// Status tracks the admin review lifecycle of a submission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusResponded Status = "responded"
	StatusArchived  Status = "archived"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusResponded, StatusArchived, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Priority is set by admins while triaging.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// FormSubmission stores one public form post. The variable part of the
// payload lives in FormData since each form type carries different fields.
type FormSubmission struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	FormType        FormType       `gorm:"type:varchar(30);not null;index" json:"formType"`
	Name            string         `gorm:"not null" json:"name"`
	Email           string         `gorm:"not null;index" json:"email"`
	Phone           string         `json:"phone,omitempty"`
	Subject         string         `json:"subject,omitempty"`
	Message         string         `gorm:"type:text" json:"message,omitempty"`
	FormData        datatypes.JSON `gorm:"type:jsonb" json:"formData,omitempty"`
	Status          Status         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Priority        Priority       `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	AssignedTo      *uint          `json:"assignedTo,omitempty"`
	ResponseMessage string         `gorm:"type:text" json:"responseMessage,omitempty"`
	RespondedBy     *uint          `json:"respondedBy,omitempty"`
	RespondedAt     *time.Time     `json:"respondedAt,omitempty"`
	IPAddress       string         `json:"-"`
	UserAgent       string         `json:"-"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (FormSubmission) TableName() string {
	return "form_submissions"
}

// SubmitRequest is the public application payload.
type SubmitRequest struct {
	FullName         string `json:"fullName" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	Branch           string `json:"branch"`
	Year             string `json:"year"`
	DomainOfInterest string `json:"domainOfInterest"`
	Message          string `json:"message"`
}

// UpdateRequest carries the admin triage fields, all optional.
type UpdateRequest struct {
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	AssignedTo *uint  `json:"assignedTo"`
}

// RespondRequest records an admin reply to a submission.
type RespondRequest struct {
	Message string `json:"message" binding:"required"`
}

// ListFilter narrows the admin submission listing.
type ListFilter struct {
	FormType string
	Status   string
	Priority string
	Page     int
	Limit    int
}
