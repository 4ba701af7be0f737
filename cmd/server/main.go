package main

import (
	"log"
	"net/http"

	_ "minidocto/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"minidocto/internal/auth"
	"minidocto/internal/cache"
	"minidocto/internal/config"
	"minidocto/internal/db"
	"minidocto/internal/handler"
	"minidocto/internal/model"
	"minidocto/internal/repository"
	"minidocto/internal/router"
	"minidocto/internal/service"
)

// @title Mini Docto API
// @version 1.0
// @description Appointment booking API connecting patients to professionals, with published availability slots and score-ranked professionals.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AvailabilitySlot{},
		&model.Appointment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	slotRepo := repository.NewAvailabilityRepository(gormDB)
	apptRepo := repository.NewAppointmentRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	availabilityService := service.NewAvailabilityService(userRepo, slotRepo, cacheClient)
	bookingService := service.NewBookingService(userRepo, slotRepo, apptRepo, cacheClient)
	professionalService := service.NewProfessionalService(userRepo, slotRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, professionalService)
	professionalHandler := handler.NewProfessionalHandler(professionalService, availabilityService)
	appointmentHandler := handler.NewAppointmentHandler(bookingService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		professionalHandler,
		appointmentHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
