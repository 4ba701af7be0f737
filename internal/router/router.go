package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	jwtauth "minidocto/internal/auth"
	"minidocto/internal/config"
	"minidocto/internal/handler"
	ratelimit "minidocto/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *jwtauth.JWTService,
	authHandler *handler.AuthHandler,
	professionalHandler *handler.ProfessionalHandler,
	appointmentHandler *handler.AppointmentHandler,
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

	// Public routes; credential endpoints are rate limited per IP
	rl := ratelimit.NewRateLimiter(5, 10)
	auth := api.Group("/auth", rl.Middleware())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	api.GET("/professionals", professionalHandler.List)
	api.GET("/professionals/:id", professionalHandler.Get)

	// Mutating routes. The original service shipped these without token
	// enforcement; AUTH_ENFORCE=true closes that gap by requiring a bearer
	// token (ownership is still not compared, only presence and validity).
	protected := api.Group("")
	if cfg.AuthEnforce {
		protected.Use(echojwt.WithConfig(echojwt.Config{
			TokenLookup: "header:" + echo.HeaderAuthorization,
			ParseTokenFunc: func(c echo.Context, tokenStr string) (interface{}, error) {
				return jwtService.ValidateToken(tokenStr)
			},
		}))
	}

	protected.POST("/professionals/availability", professionalHandler.AddAvailability)
	protected.DELETE("/professionals/availability", professionalHandler.RemoveAvailability)

	protected.POST("/appointments", appointmentHandler.Book)
	protected.GET("/appointments/:userId", appointmentHandler.ListForUser)
	protected.DELETE("/appointments/:id", appointmentHandler.Cancel)
	protected.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
