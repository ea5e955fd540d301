package mail

import (
	"fmt"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/internal/order"
)

// Notifier delivers operator order notifications off the request path.
// Delivery runs on a small worker pool; a failed send is logged and
// dropped, never retried and never surfaced to the shopper.
type Notifier struct {
	mailer Mailer
	pool   *ants.Pool
	to     string
}

func NewNotifier(mailer Mailer, to string, workers int) (*Notifier, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, errors.Wrap(err, "init mail worker pool")
	}
	return &Notifier{mailer: mailer, pool: pool, to: to}, nil
}

// Subscribe attaches the notifier to the order-created event.
func (n *Notifier) Subscribe(bus EventBus.Bus) error {
	return bus.Subscribe(order.EventOrderCreated, n.OnOrderCreated)
}

func (n *Notifier) OnOrderCreated(ord *domain.Order) {
	if ord == nil || n.to == "" {
		return
	}
	err := n.pool.Submit(func() {
		subject := fmt.Sprintf("New order %s - %s", ord.Ref, ord.Total.StringFixed(2))
		if err := n.mailer.Send(n.to, subject, RenderOrder(ord)); err != nil {
			zap.L().Error("order notification failed",
				zap.String("ref", ord.Ref), zap.Error(err))
			return
		}
		zap.L().Info("order notification sent", zap.String("ref", ord.Ref))
	})
	if err != nil {
		zap.L().Warn("mail worker pool saturated, dropping notification",
			zap.String("ref", ord.Ref), zap.Error(err))
	}
}

func (n *Notifier) Release() {
	n.pool.Release()
}

// RenderOrder formats the plain-text operator notification body.
func RenderOrder(ord *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s placed at %s\n\n", ord.Ref, ord.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Customer: %s <%s>\n", ord.Name, ord.Email)
	if ord.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", ord.Phone)
	}
	fmt.Fprintf(&b, "Ship to: %s, %s, %s %s\n\n", ord.Address, ord.City, ord.Country, ord.PostalCode)
	for _, item := range ord.Items {
		fmt.Fprintf(&b, "  %d x %s (%s) @ %s\n",
			item.Quantity, item.Name, item.Color, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", ord.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Shipping: %s\n", ord.Shipping.StringFixed(2))
	fmt.Fprintf(&b, "Tax:      %s\n", ord.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Total:    %s\n", ord.Total.StringFixed(2))
	return b.String()
}
