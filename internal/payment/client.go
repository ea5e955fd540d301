package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/velourluxe/storefront/config"
)

var (
	ErrDeclined    = errors.New("payment declined")
	ErrUnavailable = errors.New("payment gateway unavailable")
)

// Authorize captures a card payment for an order before it is persisted.
type Authorizer interface {
	Authorize(ctx context.Context, req AuthorizeRequest) error
}

type AuthorizeRequest struct {
	OrderRef  string          `json:"order_ref"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	CardToken string          `json:"card_token"`
}

type gatewayResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GatewayClient talks to the external card gateway. When payment is
// disabled in config (demo mode) every authorization succeeds locally.
type GatewayClient struct {
	cfg config.PaymentConfig
}

func NewGatewayClient(cfg config.PaymentConfig) *GatewayClient {
	return &GatewayClient{cfg: cfg}
}

func (c *GatewayClient) Authorize(ctx context.Context, req AuthorizeRequest) error {
	if !c.cfg.Enabled {
		zap.L().Info("payment gateway disabled, skipping card capture",
			zap.String("order_ref", req.OrderRef))
		return nil
	}

	timeout := time.Duration(c.cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var resp gatewayResponse
	var code int
	err := gout.POST(c.cfg.GatewayURL+"/v1/authorize").
		WithContext(ctx).
		SetTimeout(timeout).
		SetHeader(gout.H{"Authorization": "Bearer " + c.cfg.MerchantKey}).
		SetJSON(req).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrap(ErrUnavailable, err.Error())
	}
	if code != 200 || resp.Status != "approved" {
		return errors.Wrap(ErrDeclined, fmt.Sprintf("status=%s message=%s", resp.Status, resp.Message))
	}
	return nil
}
