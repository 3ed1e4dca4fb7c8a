package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist in its collection
var ErrNotFound = errors.New("content: item not found")

// ItemsResult is the payload of a collection read
type ItemsResult struct {
	Items []json.RawMessage `json:"items"`
}

// DataService is the generic CRUD facade over the content backend.
// Implementations must be safe for concurrent use.
type DataService interface {
	// GetAll returns every record of the collection
	GetAll(ctx context.Context, collection Collection) (*ItemsResult, error)
	// GetByID returns one record or ErrNotFound
	GetByID(ctx context.Context, collection Collection, id string) (json.RawMessage, error)
	// Update applies a partial record. The patch must carry "_id".
	Update(ctx context.Context, collection Collection, patch map[string]any) (json.RawMessage, error)
}

// GetAll reads a collection and decodes each record into T
func GetAll[T any](ctx context.Context, svc DataService, collection Collection) ([]T, error) {
	result, err := svc.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return []T{}, nil
	}

	items := make([]T, 0, len(result.Items))
	for i, raw := range result.Items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode %s item %d: %w", collection, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// GetByID reads one record and decodes it into T
func GetByID[T any](ctx context.Context, svc DataService, collection Collection, id string) (*T, error) {
	raw, err := svc.GetByID(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decode %s item %s: %w", collection, id, err)
	}
	return &item, nil
}

// PatchID extracts the record id from an update patch
func PatchID(patch map[string]any) (string, bool) {
	v, ok := patch["_id"]
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
