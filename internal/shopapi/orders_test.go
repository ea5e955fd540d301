package shopapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velourluxe/storefront/internal/payment"
)

type recordingAuthorizer struct {
	calls   int
	lastRef string
}

func (a *recordingAuthorizer) Authorize(_ context.Context, req payment.AuthorizeRequest) error {
	a.calls++
	a.lastRef = req.OrderRef
	return nil
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCheckoutValidatesBeforePayment(t *testing.T) {
	gateway := &recordingAuthorizer{}
	payments = gateway

	body := `{"name":"","email":"ada@example.com","address":"",` +
		`"city":"London","country":"UK","postal_code":"SW1A 1AA","card_token":"tok_visa"}`
	c, rec := postJSON("/api/v1/checkout", body)

	require.NoError(t, checkout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, rec.Body.String(), "name")
	assert.Contains(t, rec.Body.String(), "address")
	assert.Zero(t, gateway.calls, "incomplete form must not place a card hold")
}

func TestCheckoutRejectsBadEmailBeforePayment(t *testing.T) {
	gateway := &recordingAuthorizer{}
	payments = gateway

	body := `{"name":"Ada Lovelace","email":"not-an-email","address":"1 Analytical Way",` +
		`"city":"London","country":"UK","postal_code":"SW1A 1AA","card_token":"tok_visa"}`
	c, rec := postJSON("/api/v1/checkout", body)

	require.NoError(t, checkout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gateway.calls)
}
