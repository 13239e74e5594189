package models

import (
	"time"
)

// Status is the lifecycle stage of a tracked job application.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusAccepted  Status = "accepted"
)

// Statuses is the fixed enumeration, in display order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusAccepted}

// Label is the human readable name used by stats and exports.
func (s Status) Label() string {
	switch s {
	case StatusApplied:
		return "Applied"
	case StatusInterview:
		return "Interview"
	case StatusOffer:
		return "Offer"
	case StatusRejected:
		return "Rejected"
	case StatusAccepted:
		return "Accepted"
	}
	return string(s)
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// User mirrors either a primary (password) account or a shadow record for
// an OAuth identity, keyed by the derived id.
type User struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Email       string     `gorm:"uniqueIndex:idx_email_provider;not null" json:"email"`
	Name        string     `json:"name,omitempty"`
	Provider    string     `gorm:"uniqueIndex:idx_email_provider;not null;default:'email'" json:"provider"`
	Password    string     `json:"-"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	// ConfirmToken is cleared once the email is confirmed.
	ConfirmToken string       `gorm:"index" json:"-"`
	Metadata     UserMetadata `gorm:"serializer:json" json:"metadata"`
}

// UserMetadata is the typed replacement for the free-form profile map.
type UserMetadata struct {
	AvatarURL   string       `json:"avatar_url,omitempty"`
	CV          *DocumentRef `json:"cv,omitempty"`
	CoverLetter *DocumentRef `json:"cover_letter,omitempty"`
}

// DocumentRef points at an uploaded document in the blob store.
type DocumentRef struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Job is a single tracked application, always owned by exactly one user.
type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID          string `gorm:"type:uuid;index;not null" json:"user_id"`
	Position        string `gorm:"not null" json:"position"`
	Company         string `gorm:"not null" json:"company"`
	City            string `json:"city"`
	ApplicationDate string `gorm:"index" json:"application_date"`
	Status          Status `gorm:"default:'applied'" json:"status"`
	Description     string `gorm:"type:text" json:"description,omitempty"`
	Details         string `gorm:"type:text" json:"details,omitempty"`
	JobLink         string `json:"job_link,omitempty"`
}

// Posting is an entry on the public job board. Stored in DynamoDB, not gorm.
type Posting struct {
	ID          string `json:"id" dynamodbav:"PostingId"`
	Title       string `json:"title" dynamodbav:"Title"`
	Description string `json:"description" dynamodbav:"Description"`
	Location    string `json:"location" dynamodbav:"Location"`
	Details     string `json:"details,omitempty" dynamodbav:"Details,omitempty"`
	CreatedAt   string `json:"created_at" dynamodbav:"CreatedAt"`
}
