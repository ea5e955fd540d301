package cart

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/velourluxe/storefront/internal/domain"
)

// GormStore is the database-backed cart store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) List(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (s *GormStore) Find(ctx context.Context, userID, productID int64, color string) (*domain.CartItem, error) {
	var item domain.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND color = ?", userID, productID, color).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *GormStore) Save(ctx context.Context, item *domain.CartItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *GormStore) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&domain.CartItem{}, id).Error
}

func (s *GormStore) Clear(ctx context.Context, userID int64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.CartItem{}).Error
}

// GormCatalog adapts the products table to the cart Catalog interface.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := c.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
