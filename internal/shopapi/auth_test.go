package shopapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func failureContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegistrationFailureDuplicateEmail(t *testing.T) {
	c, rec := failureContext()
	require.NoError(t, registrationFailure(c, gorm.ErrDuplicatedKey))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")
}

func TestRegistrationFailureWrappedDuplicate(t *testing.T) {
	c, rec := failureContext()
	require.NoError(t, registrationFailure(c, errors.Wrap(gorm.ErrDuplicatedKey, "create user")))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegistrationFailureOtherError(t *testing.T) {
	c, rec := failureContext()
	require.NoError(t, registrationFailure(c, errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "DATABASE_ERROR")
}
