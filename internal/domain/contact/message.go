package contact

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/saanjh/storefront/internal/domain/shared"
)

// Field limits for a contact submission
const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MaxSubjectLength = 200
	MaxMessageLength = 5000
)

// ThankYouNotice is shown after a submission is accepted
const ThankYouNotice = "Thank you for reaching out. We will respond within 24 hours."

// Message is a submission from the contact form
type Message struct {
	shared.BaseEntity
	Name     string `gorm:"size:100;not null"`
	Email    string `gorm:"size:254;not null;index"`
	Subject  string `gorm:"size:200;not null"`
	Body     string `gorm:"type:text;not null"`
	ClientIP string `gorm:"size:64"`
}

// TableName returns the table used for contact messages
func (Message) TableName() string {
	return "contact_messages"
}

// NewMessage creates a message after trimming and checking every field
func NewMessage(name, email, subject, body string) (*Message, error) {
	m := &Message{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Subject:    strings.TrimSpace(subject),
		Body:       strings.TrimSpace(body),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the message invariants
func (m *Message) Validate() error {
	switch {
	case m.Name == "":
		return shared.NewDomainError("INVALID_INPUT", "Name is required")
	case utf8.RuneCountInString(m.Name) > MaxNameLength:
		return shared.NewDomainError("INVALID_INPUT", "Name is too long")
	case m.Email == "":
		return shared.NewDomainError("INVALID_INPUT", "Email is required")
	case len(m.Email) > MaxEmailLength:
		return shared.NewDomainError("INVALID_INPUT", "Email is too long")
	case m.Subject == "":
		return shared.NewDomainError("INVALID_INPUT", "Subject is required")
	case utf8.RuneCountInString(m.Subject) > MaxSubjectLength:
		return shared.NewDomainError("INVALID_INPUT", "Subject is too long")
	case m.Body == "":
		return shared.NewDomainError("INVALID_INPUT", "Message is required")
	case utf8.RuneCountInString(m.Body) > MaxMessageLength:
		return shared.NewDomainError("INVALID_INPUT", "Message is too long")
	}

	addr, err := mail.ParseAddress(m.Email)
	if err != nil || addr.Address != m.Email {
		return shared.NewDomainError("INVALID_INPUT", "Email is not a valid address")
	}
	return nil
}

// EventTypeMessageReceived is published after a message is stored
const EventTypeMessageReceived = "ContactMessageReceived"

// MessageReceived is raised when a contact message has been stored
type MessageReceived struct {
	shared.BaseDomainEvent
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

// NewMessageReceived creates the event for m
func NewMessageReceived(m *Message) *MessageReceived {
	return &MessageReceived{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMessageReceived, m.ID.String()),
		Email:           m.Email,
		Subject:         m.Subject,
	}
}
