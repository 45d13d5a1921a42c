package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"nutritrack/internal/infrastructure"
)

type RouterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func NewRouter(h *Handler, jwtService *infrastructure.JWTService, cfg RouterConfig, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger(logger.Named("access")))
	e.Use(middleware.Recover())
	if cfg.RequestsPerSecond > 0 {
		e.Use(RateLimit(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)))
	}

	e.GET("/healthz", h.Health)
	e.GET("/error.html", h.ErrorPage)

	e.POST("/LoginController", h.Login)
	e.POST("/login", h.Login)

	meals := e.Group("/meals")
	meals.GET("", h.ListMeals)
	meals.GET("/:name/ingredients", h.ListIngredients)

	session := RequireSession(jwtService)
	meals.POST("/:name/ingredients", h.AddIngredient, session)
	meals.DELETE("/:id", h.DeleteMeal, session)

	return e
}
