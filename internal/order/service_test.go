package order

import (
	"context"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velourluxe/storefront/internal/cart"
	"github.com/velourluxe/storefront/internal/domain"
)

type memRepo struct {
	orders    map[int64]*domain.Order
	createErr error
}

func newMemRepo() *memRepo {
	return &memRepo{orders: make(map[int64]*domain.Order)}
}

func (r *memRepo) Create(_ context.Context, ord *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *ord
	r.orders[ord.ID] = &cp
	return nil
}

func (r *memRepo) Get(_ context.Context, id int64) (*domain.Order, error) {
	ord, found := r.orders[id]
	if !found {
		return nil, ErrOrderNotFound
	}
	cp := *ord
	return &cp, nil
}

func (r *memRepo) GetForUser(_ context.Context, id, userID int64) (*domain.Order, error) {
	ord, found := r.orders[id]
	if !found || ord.UserID != userID {
		return nil, ErrOrderNotFound
	}
	cp := *ord
	return &cp, nil
}

func (r *memRepo) ListForUser(_ context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, ord := range r.orders {
		if ord.UserID == userID {
			out = append(out, *ord)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	ord, found := r.orders[id]
	if !found {
		return ErrOrderNotFound
	}
	ord.Status = status
	return nil
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func validInfo() CustomerInfo {
	return CustomerInfo{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Address:    "1 Analytical Way",
		City:       "London",
		Country:    "UK",
		PostalCode: "SW1A 1AA",
	}
}

func pricedView() *cart.View {
	return &cart.View{
		Lines: []cart.Line{{
			ProductID: 1,
			Name:      "Birkin 30 Togo",
			Color:     "Noir",
			UnitPrice: d("12500.00"),
			Quantity:  1,
			LineTotal: d("12500.00"),
		}},
		Quote: cart.Quote{
			Subtotal: d("12500.00"),
			Shipping: decimal.Zero,
			Tax:      d("1000.00"),
			Total:    d("13500.00"),
		},
	}
}

func TestSubmitHappyPath(t *testing.T) {
	repo := newMemRepo()
	bus := EventBus.New()

	var published *domain.Order
	require.NoError(t, bus.Subscribe(EventOrderCreated, func(ord *domain.Order) {
		published = ord
	}))

	svc := NewService(repo, bus)
	ord, err := svc.Submit(context.Background(), 7, validInfo(), pricedView(), "")
	require.NoError(t, err)

	assert.NotZero(t, ord.ID)
	assert.NotEmpty(t, ord.Ref)
	assert.Equal(t, domain.OrderStatusPending, ord.Status)
	assert.True(t, ord.Total.Equal(d("13500.00")))
	require.Len(t, ord.Items, 1)
	assert.True(t, ord.Items[0].UnitPrice.Equal(d("12500.00")), "line price must be frozen")

	require.NotNil(t, published, "order-created event not published")
	assert.Equal(t, ord.Ref, published.Ref)
	assert.NotNil(t, repo.orders[ord.ID])
}

func TestSubmitUsesProvidedRef(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, EventBus.New())

	ref := svc.NewRef()
	require.NotEmpty(t, ref)

	ord, err := svc.Submit(context.Background(), 7, validInfo(), pricedView(), ref)
	require.NoError(t, err)
	assert.Equal(t, ref, ord.Ref, "the ref sent to the gateway must land on the order row")
	assert.Equal(t, ref, repo.orders[ord.ID].Ref)
}

func TestSubmitUniqueIDsAndRefs(t *testing.T) {
	svc := NewService(newMemRepo(), EventBus.New())

	seenIDs := map[int64]bool{}
	seenRefs := map[string]bool{}
	for i := 0; i < 20; i++ {
		ord, err := svc.Submit(context.Background(), 7, validInfo(), pricedView(), "")
		require.NoError(t, err)
		assert.False(t, seenIDs[ord.ID], "duplicate order id %d", ord.ID)
		assert.False(t, seenRefs[ord.Ref], "duplicate order ref %s", ord.Ref)
		seenIDs[ord.ID] = true
		seenRefs[ord.Ref] = true
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(newMemRepo(), EventBus.New())

	info := validInfo()
	info.Name = "  "
	info.Email = "not-an-email"
	info.PostalCode = ""

	_, err := svc.Submit(context.Background(), 7, info, pricedView(), "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "postal_code")
	assert.NotContains(t, verr.Fields, "city")
}

func TestSubmitEmptyCart(t *testing.T) {
	svc := NewService(newMemRepo(), EventBus.New())

	_, err := svc.Submit(context.Background(), 7, validInfo(), &cart.View{}, "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.Submit(context.Background(), 7, validInfo(), nil, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitPersistenceFailure(t *testing.T) {
	repo := newMemRepo()
	repo.createErr = errors.New("connection reset")
	bus := EventBus.New()

	published := false
	require.NoError(t, bus.Subscribe(EventOrderCreated, func(_ *domain.Order) {
		published = true
	}))

	svc := NewService(repo, bus)
	_, err := svc.Submit(context.Background(), 7, validInfo(), pricedView(), "")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.False(t, published, "no event on failed persist")
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(domain.OrderStatusPending, domain.OrderStatusShipped))
	assert.True(t, CanTransition(domain.OrderStatusShipped, domain.OrderStatusDelivered))

	assert.False(t, CanTransition(domain.OrderStatusPending, domain.OrderStatusDelivered))
	assert.False(t, CanTransition(domain.OrderStatusShipped, domain.OrderStatusPending))
	assert.False(t, CanTransition(domain.OrderStatusDelivered, domain.OrderStatusShipped))
	assert.False(t, CanTransition(domain.OrderStatusDelivered, domain.OrderStatusPending))
	assert.False(t, CanTransition("bogus", domain.OrderStatusShipped))
}

func TestUpdateStatus(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, EventBus.New())

	ord, err := svc.Submit(context.Background(), 7, validInfo(), pricedView(), "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), ord.ID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), ord.ID, domain.OrderStatusPending)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	_, err = svc.UpdateStatus(context.Background(), 404404, domain.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetForUserScoping(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, EventBus.New())

	ord, err := svc.Submit(context.Background(), 7, validInfo(), pricedView(), "")
	require.NoError(t, err)

	_, err = svc.GetForUser(context.Background(), ord.ID, 7)
	assert.NoError(t, err)

	_, err = svc.GetForUser(context.Background(), ord.ID, 8)
	assert.Error(t, err, "other users must not see the order")
}
