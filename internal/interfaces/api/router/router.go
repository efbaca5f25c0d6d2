package router

import (
	"fmt"
	"net/http"
	"petagenda/internal/interfaces/api/handler"
	"petagenda/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	PetHandler      *handler.PetHandler
	ReminderHandler *handler.ReminderHandler
	VaccineHandler  *handler.VaccineHandler
	ProfileHandler  *handler.ProfileHandler
	LineHandler     *handler.LineHandler // Optional; nil disables the webhook
	Logger          logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.With("request_id", v.RequestID).Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s",
				v.Method, v.URI, v.Status, v.Latency,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Line-Signature"},
		MaxAge:       300,
	}))

	// Routes
	e.GET("/health", handler.HealthCheck)

	pets := e.Group("/pets")
	pets.GET("", cfg.PetHandler.List)
	pets.POST("", cfg.PetHandler.Create)
	pets.GET("/:id", cfg.PetHandler.Get)
	pets.PUT("/:id", cfg.PetHandler.Update)
	pets.DELETE("/:id", cfg.PetHandler.Delete)
	pets.GET("/:petId/reminders", cfg.ReminderHandler.List)
	pets.POST("/:petId/reminders", cfg.ReminderHandler.Create)
	pets.GET("/:petId/vaccinations", cfg.VaccineHandler.List)
	pets.POST("/:petId/vaccinations", cfg.VaccineHandler.Create)

	e.GET("/reminders", cfg.ReminderHandler.List)
	e.GET("/reminders/:id", cfg.ReminderHandler.Get)
	e.PUT("/reminders/:id", cfg.ReminderHandler.Update)
	e.DELETE("/reminders/:id", cfg.ReminderHandler.Delete)

	e.GET("/vaccinations", cfg.VaccineHandler.List)
	e.GET("/vaccinations/:id", cfg.VaccineHandler.Get)
	e.PUT("/vaccinations/:id", cfg.VaccineHandler.Update)
	e.DELETE("/vaccinations/:id", cfg.VaccineHandler.Delete)

	e.GET("/profile", cfg.ProfileHandler.GetProfile)
	e.PUT("/profile", cfg.ProfileHandler.UpdateProfile)
	e.GET("/friends", cfg.ProfileHandler.ListFriends)
	e.POST("/friends", cfg.ProfileHandler.AddFriend)
	e.GET("/statistics", cfg.ProfileHandler.Statistics)

	// LINE Webhook Endpoint
	if cfg.LineHandler != nil {
		e.POST("/callback", cfg.LineHandler.HandleWebhook)
	}

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
