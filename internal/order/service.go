package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/velourluxe/storefront/internal/cart"
	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/pkg/common"
)

// EventOrderCreated is published after an order row is committed.
// Subscribers (operator mail, reporting) run async; their failures never
// reach the shopper.
const EventOrderCreated = "order:created"

var (
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPersistence marks a retryable storage failure.
	ErrPersistence       = errors.New("order could not be saved, please retry")
	ErrOrderNotFound     = errors.New("order not found")
	ErrIllegalTransition = errors.New("illegal order status transition")
)

// ValidationError reports field-level problems with the checkout form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type CustomerInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Validate checks the required checkout fields. Callers run it before any
// side effect so an incomplete form never reaches the payment gateway.
func (c CustomerInfo) Validate() *ValidationError {
	fields := map[string]string{}
	required := map[string]string{
		"name":        c.Name,
		"email":       c.Email,
		"address":     c.Address,
		"city":        c.City,
		"country":     c.Country,
		"postal_code": c.PostalCode,
	}
	for name, val := range required {
		if strings.TrimSpace(val) == "" {
			fields[name] = "is required"
		}
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		fields["email"] = "is not a valid email address"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id int64) (*domain.Order, error)
	GetForUser(ctx context.Context, id, userID int64) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type Service struct {
	repo Repository
	bus  EventBus.Bus

	newID  func() int64
	newRef func() string
}

func NewService(repo Repository, bus EventBus.Bus) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		newID:  common.UUIDint64,
		newRef: common.OrderRef,
	}
}

// NewRef issues the display reference for an order about to be submitted.
// Handing it to the payment gateway first lets a gateway-side authorization
// be reconciled with the order row that follows.
func (s *Service) NewRef() string {
	return s.newRef()
}

// Submit turns a priced cart view into a pending order: validates the
// customer form, freezes line prices, persists, and publishes the
// order-created event. The notification side effects are fire-and-forget.
// An empty ref gets a fresh one; checkout passes the ref it already sent
// to the payment gateway.
func (s *Service) Submit(ctx context.Context, userID int64, info CustomerInfo, view *cart.View, ref string) (*domain.Order, error) {
	if view == nil || len(view.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if verr := info.Validate(); verr != nil {
		return nil, verr
	}
	if ref == "" {
		ref = s.newRef()
	}

	ord := &domain.Order{
		ID:         s.newID(),
		Ref:        ref,
		UserID:     userID,
		Name:       strings.TrimSpace(info.Name),
		Email:      strings.TrimSpace(info.Email),
		Phone:      strings.TrimSpace(info.Phone),
		Address:    strings.TrimSpace(info.Address),
		City:       strings.TrimSpace(info.City),
		Country:    strings.TrimSpace(info.Country),
		PostalCode: strings.TrimSpace(info.PostalCode),
		Subtotal:   view.Subtotal,
		Shipping:   view.Shipping,
		Tax:        view.Tax,
		Total:      view.Total,
		Status:     domain.OrderStatusPending,
	}
	for _, line := range view.Lines {
		ord.Items = append(ord.Items, domain.OrderItem{
			OrderID:   ord.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Color:     line.Color,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	if err := s.repo.Create(ctx, ord); err != nil {
		zap.L().Error("order persistence failed",
			zap.String("ref", ord.Ref), zap.Error(err))
		return nil, ErrPersistence
	}

	if s.bus != nil {
		s.bus.Publish(EventOrderCreated, ord)
	}
	return ord, nil
}

// CanTransition enforces the linear pending -> shipped -> delivered flow.
func CanTransition(from, to string) bool {
	switch from {
	case domain.OrderStatusPending:
		return to == domain.OrderStatusShipped
	case domain.OrderStatusShipped:
		return to == domain.OrderStatusDelivered
	default:
		return false
	}
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	ord, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if !CanTransition(ord.Status, status) {
		return nil, ErrIllegalTransition
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, ErrPersistence
	}
	ord.Status = status
	return ord, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetForUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	return s.repo.GetForUser(ctx, id, userID)
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.repo.ListForUser(ctx, userID)
}
