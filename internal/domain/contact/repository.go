package contact

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists contact messages
type Repository interface {
	// Save stores a new message
	Save(ctx context.Context, m *Message) error

	// FindByID returns shared.ErrNotFound when the message does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)

	// CountByEmailSince counts messages from an address, used to spot floods
	CountByEmailSince(ctx context.Context, email string, sinceUnix int64) (int64, error)
}
