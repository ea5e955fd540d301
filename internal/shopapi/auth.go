package shopapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pkg/errors"

	"github.com/velourluxe/storefront/internal/auth"
	"github.com/velourluxe/storefront/internal/domain"
	"github.com/velourluxe/storefront/internal/webserver"
	"github.com/velourluxe/storefront/pkg/common"
)

func registerAuthRoutes() {
	webserver.PubPOST("/auth/register", register)
	webserver.PubPOST("/auth/login", login)
	webserver.ApiGET("/profile", getProfile)
	webserver.ApiPUT("/profile", updateProfile)
	webserver.ApiPUT("/profile/password", updatePassword)
}

type registerPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Confirm   string `json:"confirm"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", nil)
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" || !strings.Contains(payload.Email, "@") {
		return fail(c, http.StatusBadRequest, "INVALID_EMAIL", "A valid email address is required", nil)
	}
	if len(payload.Password) < auth.MinPasswordLen {
		return fail(c, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters", nil)
	}
	if payload.Password != payload.Confirm {
		return fail(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "Password confirmation does not match", nil)
	}

	var count int64
	GetDB(c).Model(&domain.User{}).Where("email = ?", payload.Email).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists", nil)
	}

	hashed, err := auth.HashPassword(payload.Password)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to create account", nil)
	}
	// role is customer and immutable through this API
	user := domain.User{
		ID:        common.UUIDint64(),
		Email:     payload.Email,
		Password:  hashed,
		FirstName: strings.TrimSpace(payload.FirstName),
		LastName:  strings.TrimSpace(payload.LastName),
		Phone:     strings.TrimSpace(payload.Phone),
		Level:     domain.RoleCustomer,
		Status:    common.ENABLED,
	}
	if err := GetDB(c).Create(&user).Error; err != nil {
		return registrationFailure(c, err)
	}
	zap.L().Info("customer registered", zap.String("email", user.Email))
	return issueToken(c, &user)
}

// registrationFailure maps a failed account insert. A concurrent duplicate
// email slips past the pre-check and hits the unique index instead, so the
// translated duplicate-key error still answers 409.
func registrationFailure(c echo.Context, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fail(c, http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists", nil)
	}
	return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create account", nil)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", nil)
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))

	var user domain.User
	err := GetDB(c).Where("email = ?", email).First(&user).Error
	// a generic message for every failure path: no user-existence leakage
	if errors.Is(err, gorm.ErrRecordNotFound) || err != nil ||
		!auth.CheckPassword(user.Password, payload.Password) ||
		user.Status != common.ENABLED {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	}

	GetDB(c).Model(&domain.User{}).Where("id = ?", user.ID).
		Update("last_login", time.Now())
	return issueToken(c, &user)
}

func issueToken(c echo.Context, user *domain.User) error {
	token, exp, err := webserver.TokenManager().Sign(user.ID, user.Level)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to issue session token", nil)
	}
	return ok(c, map[string]interface{}{
		"token":      token,
		"expires_at": exp,
		"user":       user,
	})
}

func getProfile(c echo.Context) error {
	var user domain.User
	if err := GetDB(c).First(&user, currentUserID(c)).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Account not found", nil)
	}
	return ok(c, user)
}

type profilePayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func updateProfile(c echo.Context) error {
	var payload profilePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse profile", nil)
	}
	updates := map[string]interface{}{
		"first_name": strings.TrimSpace(payload.FirstName),
		"last_name":  strings.TrimSpace(payload.LastName),
		"phone":      strings.TrimSpace(payload.Phone),
		"updated_at": time.Now(),
	}
	if err := GetDB(c).Model(&domain.User{}).
		Where("id = ?", currentUserID(c)).
		Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update profile", nil)
	}
	var user domain.User
	GetDB(c).First(&user, currentUserID(c))
	return ok(c, user)
}

type passwordPayload struct {
	Current string `json:"current"`
	New     string `json:"new"`
	Confirm string `json:"confirm"`
}

func updatePassword(c echo.Context) error {
	var payload passwordPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", nil)
	}
	if len(payload.New) < auth.MinPasswordLen {
		return fail(c, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters", nil)
	}
	if payload.New != payload.Confirm {
		return fail(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "Password confirmation does not match", nil)
	}

	var user domain.User
	if err := GetDB(c).First(&user, currentUserID(c)).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Account not found", nil)
	}
	if !auth.CheckPassword(user.Password, payload.Current) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	}

	hashed, err := auth.HashPassword(payload.New)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SERVER_ERROR", "Failed to update password", nil)
	}
	if err := GetDB(c).Model(&domain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"password": hashed, "updated_at": time.Now()}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update password", nil)
	}
	return ok(c, map[string]interface{}{"updated": true})
}
