package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"nutritrack/internal/application/command"
	"nutritrack/internal/application/interfaces"
	"nutritrack/internal/domain"
)

const (
	SessionCookieName = "session"

	mealsPath = "meals"
	errorPath = "error.html"
)

const errorPage = `<!DOCTYPE html>
<html>
<head><title>Login failed</title></head>
<body><h1>Login failed</h1><p>Invalid login or password.</p><a href="/">Back</a></body>
</html>
`

type Handler struct {
	authService  interfaces.AuthService
	mealService  interfaces.MealService
	secureCookie bool
	logger       *zap.Logger
}

func NewHandler(authService interfaces.AuthService, mealService interfaces.MealService, secureCookie bool, logger *zap.Logger) *Handler {
	return &Handler{
		authService:  authService,
		mealService:  mealService,
		secureCookie: secureCookie,
		logger:       logger.Named("http"),
	}
}

// Login handles the login form. Success redirects to the meals view with a
// session cookie; every failure redirects to the same error page.
func (h *Handler) Login(c echo.Context) error {
	cmd := &command.LoginUserCommand{
		Login:    c.FormValue("uname"),
		Password: c.FormValue("psw"),
	}

	result, err := h.authService.LoginUser(c.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.logger.Info("login rejected", zap.String("login", cmd.Login))
		case errors.Is(err, domain.ErrTooManyAttempts):
			h.logger.Warn("login rate limited", zap.String("login", cmd.Login))
		default:
			h.logger.Error("login failed", zap.String("login", cmd.Login), zap.Error(err))
		}
		return c.Redirect(http.StatusFound, errorPath)
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		MaxAge:   int(time.Until(result.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, mealsPath)
}

func (h *Handler) ErrorPage(c echo.Context) error {
	return c.HTML(http.StatusOK, errorPage)
}

func (h *Handler) ListMeals(c echo.Context) error {
	result, err := h.mealService.ListMeals(c.Request().Context())
	if err != nil {
		h.logger.Error("list meals", zap.Error(err))
		return sendDomainError(c, err)
	}
	return sendJSONResponse(c, result, http.StatusOK)
}

func (h *Handler) ListIngredients(c echo.Context) error {
	result, err := h.mealService.ListIngredients(c.Request().Context(), c.Param("name"))
	if err != nil {
		return sendDomainError(c, err)
	}
	return sendJSONResponse(c, result, http.StatusOK)
}

func (h *Handler) AddIngredient(c echo.Context) error {
	var cmd command.AddIngredientCommand
	if err := c.Bind(&cmd); err != nil {
		return sendJSONError(c, "invalid input data", http.StatusBadRequest)
	}
	cmd.MealName = c.Param("name")

	result, err := h.mealService.AddIngredient(c.Request().Context(), &cmd)
	if err != nil {
		return sendDomainError(c, err)
	}
	return sendJSONResponse(c, result, http.StatusCreated)
}

func (h *Handler) DeleteMeal(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return sendJSONError(c, "invalid meal id", http.StatusBadRequest)
	}

	if err := h.mealService.DeleteMeal(c.Request().Context(), uint(id)); err != nil {
		return sendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
