package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velourluxe/storefront/internal/domain"
)

type memStore struct {
	nextID int64
	items  []domain.CartItem
}

func (s *memStore) List(_ context.Context, userID int64) ([]domain.CartItem, error) {
	var out []domain.CartItem
	for _, it := range s.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *memStore) Find(_ context.Context, userID, productID int64, color string) (*domain.CartItem, error) {
	for i := range s.items {
		it := s.items[i]
		if it.UserID == userID && it.ProductID == productID && it.Color == color {
			cp := it
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) Save(_ context.Context, item *domain.CartItem) error {
	if item.ID == 0 {
		s.nextID++
		item.ID = s.nextID
		s.items = append(s.items, *item)
		return nil
	}
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = *item
			return nil
		}
	}
	s.items = append(s.items, *item)
	return nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memStore) Clear(_ context.Context, userID int64) error {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return nil
}

type memCatalog struct {
	products map[int64]domain.Product
}

func (c *memCatalog) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	p, found := c.products[id]
	if !found {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func newTestService() (*Service, *memStore) {
	store := &memStore{}
	catalog := &memCatalog{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Classic Flap Medium", Price: d("8200.00"),
			Colors: []string{"Black", "Beige"}, InStock: true},
		2: {ID: 2, Name: "Capucines MM", Price: d("6900.00"),
			Colors: []string{"Noir"}, InStock: false},
	}}
	return NewService(store, catalog), store
}

func TestAddItemMergesSameIdentity(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, 7, 1, "Black", 1))
	require.NoError(t, svc.AddItem(ctx, 7, 1, "Black", 2))

	require.Len(t, store.items, 1)
	assert.Equal(t, 3, store.items[0].Quantity)
}

func TestAddItemDistinctColorsDistinctLines(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, 7, 1, "Black", 1))
	require.NoError(t, svc.AddItem(ctx, 7, 1, "Beige", 1))

	assert.Len(t, store.items, 2)
}

func TestAddItemValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddItem(ctx, 7, 99, "Black", 1), ErrProductNotFound)
	assert.ErrorIs(t, svc.AddItem(ctx, 7, 1, "Chartreuse", 1), ErrColorUnavailable)
	assert.ErrorIs(t, svc.AddItem(ctx, 7, 2, "Noir", 1), ErrOutOfStock)
	assert.ErrorIs(t, svc.AddItem(ctx, 7, 1, "Black", 0), ErrBadQuantity)
	assert.ErrorIs(t, svc.AddItem(ctx, 7, 1, "Black", -3), ErrBadQuantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, 7, 1, "Black", 2))
	require.NoError(t, svc.SetQuantity(ctx, 7, 1, "Black", 0))
	assert.Empty(t, store.items)

	assert.ErrorIs(t, svc.SetQuantity(ctx, 7, 1, "Black", 1), ErrLineNotFound)
}

func TestSetQuantityReplaces(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, 7, 1, "Black", 2))
	require.NoError(t, svc.SetQuantity(ctx, 7, 1, "Black", 5))
	assert.Equal(t, 5, store.items[0].Quantity)
}

func TestViewPricesCart(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, 7, 1, "Black", 1))

	view, err := svc.View(ctx, 7, defaultPricing())
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.True(t, view.Subtotal.Equal(d("8200.00")))
	assert.True(t, view.Shipping.IsZero())
	assert.True(t, view.Tax.Equal(d("656.00")))
	assert.True(t, view.Total.Equal(d("8856.00")))
}

func TestViewIsolatedPerUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, 7, 1, "Black", 1))

	view, err := svc.View(ctx, 8, defaultPricing())
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Total.IsZero())
}

func TestClear(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, 7, 1, "Black", 1))
	require.NoError(t, svc.AddItem(ctx, 8, 1, "Beige", 1))
	require.NoError(t, svc.Clear(ctx, 7))

	require.Len(t, store.items, 1)
	assert.Equal(t, int64(8), store.items[0].UserID)
}
