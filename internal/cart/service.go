package cart

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/velourluxe/storefront/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrColorUnavailable = errors.New("color not available for this product")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrLineNotFound     = errors.New("cart line not found")
	ErrBadQuantity      = errors.New("quantity must be positive")
)

// Store persists cart lines for a user.
type Store interface {
	List(ctx context.Context, userID int64) ([]domain.CartItem, error)
	// Find returns nil when no line matches the (user, product, color) identity.
	Find(ctx context.Context, userID, productID int64, color string) (*domain.CartItem, error)
	Save(ctx context.Context, item *domain.CartItem) error
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context, userID int64) error
}

// Catalog provides product lookups for validation and pricing.
type Catalog interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type Line struct {
	ProductID int64           `json:"product_id,string"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Color     string          `json:"color"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type View struct {
	Lines []Line `json:"lines"`
	Quote
}

type Service struct {
	store   Store
	catalog Catalog
}

func NewService(store Store, catalog Catalog) *Service {
	return &Service{store: store, catalog: catalog}
}

// View loads the user's cart and prices it with the current settings.
func (s *Service) View(ctx context.Context, userID int64, cfg PricingConfig) (*View, error) {
	items, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}

	view := &View{Lines: make([]Line, 0, len(items))}
	priced := make([]PricedLine, 0, len(items))
	for _, item := range items {
		p, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			// product deleted since it was added; skip the orphan line
			continue
		}
		view.Lines = append(view.Lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Color:     item.Color,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2),
		})
		priced = append(priced, PricedLine{UnitPrice: p.Price, Quantity: item.Quantity})
	}
	view.Quote = Price(priced, cfg)
	return view, nil
}

// AddItem merges into an existing (product, color) line or creates a new one.
func (s *Service) AddItem(ctx context.Context, userID, productID int64, color string, qty int) error {
	if qty <= 0 {
		return ErrBadQuantity
	}
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return ErrProductNotFound
	}
	if !p.InStock {
		return ErrOutOfStock
	}
	if !p.HasColor(color) {
		return ErrColorUnavailable
	}

	existing, err := s.store.Find(ctx, userID, productID, color)
	if err != nil {
		return errors.Wrap(err, "find cart line")
	}
	if existing != nil {
		existing.Quantity += qty
		existing.UpdatedAt = time.Now()
		return errors.Wrap(s.store.Save(ctx, existing), "update cart line")
	}
	return errors.Wrap(s.store.Save(ctx, &domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Color:     color,
		Quantity:  qty,
	}), "create cart line")
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (s *Service) SetQuantity(ctx context.Context, userID, productID int64, color string, qty int) error {
	existing, err := s.store.Find(ctx, userID, productID, color)
	if err != nil {
		return errors.Wrap(err, "find cart line")
	}
	if existing == nil {
		return ErrLineNotFound
	}
	if qty <= 0 {
		return errors.Wrap(s.store.Delete(ctx, existing.ID), "remove cart line")
	}
	existing.Quantity = qty
	existing.UpdatedAt = time.Now()
	return errors.Wrap(s.store.Save(ctx, existing), "update cart line")
}

func (s *Service) RemoveLine(ctx context.Context, userID, productID int64, color string) error {
	existing, err := s.store.Find(ctx, userID, productID, color)
	if err != nil {
		return errors.Wrap(err, "find cart line")
	}
	if existing == nil {
		return ErrLineNotFound
	}
	return errors.Wrap(s.store.Delete(ctx, existing.ID), "remove cart line")
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	return errors.Wrap(s.store.Clear(ctx, userID), "clear cart")
}
