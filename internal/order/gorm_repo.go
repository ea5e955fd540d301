package order

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/velourluxe/storefront/internal/domain"
)

// GormRepository is the database-backed order repository.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, ord *domain.Order) error {
	// order row and its items commit atomically
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(ord).Error
	})
}

func (r *GormRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var ord domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&ord, id).Error
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *GormRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	var ord domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&ord).Error
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *GormRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}
