package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	err := NewDomainError("CUSTOM", "custom failure")
	assert.Equal(t, "custom failure", err.Error())
	assert.Equal(t, "CUSTOM", err.Code)

	wrapped := fmt.Errorf("loading page: %w", ErrBackendUnavailable)
	var domainErr *DomainError
	assert.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, "BACKEND_UNAVAILABLE", domainErr.Code)
}

func TestBaseDomainEvent(t *testing.T) {
	ev := NewBaseDomainEvent("ContactMessageReceived", "msg-1")
	assert.NotEqual(t, [16]byte{}, [16]byte(ev.EventID()))
	assert.Equal(t, "ContactMessageReceived", ev.EventType())
	assert.Equal(t, "msg-1", ev.SubjectID())
	assert.False(t, ev.OccurredAt().IsZero())
}

func TestNewBaseEntity(t *testing.T) {
	e := NewBaseEntity()
	assert.NotEqual(t, [16]byte{}, [16]byte(e.GetID()))
	assert.False(t, e.GetCreatedAt().IsZero())
}
