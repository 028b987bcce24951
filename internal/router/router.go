package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"leavedesk/internal/auth"
	"leavedesk/internal/config"
	"leavedesk/internal/errors"
	"leavedesk/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	leaveHandler *handler.LeaveHandler,
	adminHandler *handler.AdminHandler,
	availabilityHandler *handler.AvailabilityHandler,
	reportHandler *handler.ReportHandler,
	notificationHandler *handler.NotificationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication). Tokens are validated by
	// our own JWT service so handlers always see *auth.Claims.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}))

	secured.GET("/me", authHandler.Me)

	// Employee leave routes
	secured.GET("/leaves", leaveHandler.List)
	secured.POST("/leaves", leaveHandler.Create)
	secured.PUT("/leaves/:id", leaveHandler.Update)
	secured.DELETE("/leaves/:id", leaveHandler.Delete)

	// Admin routes; role is enforced server-side from the token claims
	admin := secured.Group("/admin", adminOnly)
	admin.GET("/leaves", adminHandler.ListLeaves)
	admin.PUT("/leaves/:id/status", adminHandler.SetStatus)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/employees", adminHandler.Employees)
	admin.GET("/availability", availabilityHandler.Week)
	admin.GET("/export", reportHandler.Export)
	admin.GET("/notifications", notificationHandler.Since)
	admin.GET("/notifications/stream", notificationHandler.Stream)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if !claims.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "admin access required",
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}
