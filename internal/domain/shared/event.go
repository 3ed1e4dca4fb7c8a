package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents something that happened in the storefront
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	// SubjectID identifies the record the event is about
	SubjectID() string
}

// BaseDomainEvent provides common fields for all domain events
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Subject   string    `json:"subject_id"`
}

// EventID returns the unique event identifier
func (e *BaseDomainEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type of the event
func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

// OccurredAt returns when the event occurred
func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// SubjectID returns the record the event is about
func (e *BaseDomainEvent) SubjectID() string {
	return e.Subject
}

// NewBaseDomainEvent creates a new base domain event
func NewBaseDomainEvent(eventType, subjectID string) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Subject:   subjectID,
	}
}
