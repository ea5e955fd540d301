package webserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/velourluxe/storefront/internal/app"
	"github.com/velourluxe/storefront/internal/auth"
	"github.com/velourluxe/storefront/internal/domain"
)

// AppContextKey is the echo context key holding the application.
const AppContextKey = "storefront.app"

var server *WebServer

type WebServer struct {
	app    *app.Application
	root   *echo.Echo
	pub    *echo.Group
	api    *echo.Group
	admin  *echo.Group
	tokens *auth.TokenManager
}

// Init builds the global web server instance.
func Init(application *app.Application) {
	server = NewWebServer(application)
}

func NewWebServer(application *app.Application) *WebServer {
	cfg := application.Config()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, application)
			return next(c)
		}
	})
	e.HTTPErrorHandler = errorHandler
	e.Static("/media", cfg.GetMediaDir())

	tokens := auth.NewTokenManager(auth.TokenConfig{
		Issuer:   cfg.System.Appid,
		Secret:   cfg.Web.JwtSecret,
		TokenTTL: time.Duration(cfg.Web.TokenTTLMin) * time.Minute,
	})

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey: tokens.Secret(),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			})
		},
	})

	s := &WebServer{
		app:    application,
		root:   e,
		pub:    e.Group("/api/v1"),
		api:    e.Group("/api/v1", jwtMiddleware),
		admin:  e.Group("/api/v1/admin", jwtMiddleware, adminOnly),
		tokens: tokens,
	}
	return s
}

// Listen starts the HTTP server and blocks.
func Listen() error {
	cfg := server.app.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return server.root.Start(addr)
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}
	if code >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", c.Path()), zap.Error(err))
	}
	_ = c.JSON(code, map[string]interface{}{
		"code":    "ERROR",
		"message": message,
	})
}

// adminOnly gates admin routes on the role claim.
func adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil || claims.Role != domain.RoleAdmin {
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"code":    "FORBIDDEN",
				"message": "Permission denied",
			})
		}
		return next(c)
	}
}

// GetClaims returns the verified token claims, or nil on public routes.
func GetClaims(c echo.Context) *auth.Claims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetApp returns the application bound to the request context.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(AppContextKey).(app.AppContext)
}

// TokenManager exposes the signer for the login handlers.
func TokenManager() *auth.TokenManager {
	return server.tokens
}

// Public routes, no authentication.

func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// Authenticated customer routes.

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// Admin-only routes.

func AdminGET(path string, h echo.HandlerFunc) {
	server.admin.GET(path, h)
}

func AdminPOST(path string, h echo.HandlerFunc) {
	server.admin.POST(path, h)
}

func AdminPUT(path string, h echo.HandlerFunc) {
	server.admin.PUT(path, h)
}

func AdminDELETE(path string, h echo.HandlerFunc) {
	server.admin.DELETE(path, h)
}
