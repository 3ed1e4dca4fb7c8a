package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saanjh/storefront/internal/domain/contact"
	"github.com/saanjh/storefront/internal/domain/shared"
)

// AutoMigrate creates the contact inbox schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&contact.Message{})
}

// GormContactRepository implements contact.Repository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Save stores a new message
func (r *GormContactRepository) Save(ctx context.Context, m *contact.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindByID finds a message by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	var m contact.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// CountByEmailSince counts messages from an address created at or after sinceUnix
func (r *GormContactRepository) CountByEmailSince(ctx context.Context, email string, sinceUnix int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&contact.Message{}).
		Where("email = ? AND created_at >= ?", email, time.Unix(sinceUnix, 0).UTC()).
		Count(&count).Error
	return count, err
}

var _ contact.Repository = (*GormContactRepository)(nil)
