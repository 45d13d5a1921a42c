package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nutritrack/internal/application/services"
	"nutritrack/internal/config"
	"nutritrack/internal/infrastructure"
	"nutritrack/internal/infrastructure/db"
	"nutritrack/internal/infrastructure/db/postgres"
)

type testServer struct {
	e   *echo.Echo
	jwt *infrastructure.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	provider := db.NewProvider(config.DatabaseConfig{
		Driver: "sqlite",
		Name:   filepath.Join(t.TempDir(), "nutritrack.db"),
	}, logger)
	require.NoError(t, postgres.Migrate(ctx, provider))

	users := postgres.NewUserRepository(provider)
	meals := postgres.NewMealRepository(provider)
	ingredients := postgres.NewIngredientRepository(provider)
	require.NoError(t, services.NewProvisioningService(users, meals, nil, logger).
		Seed(ctx, []services.SeedUser{{Email: "admin@esi.ac.ma", Password: "admin"}}))

	jwtService := infrastructure.NewJWTService("test-secret", time.Hour)
	auth := services.NewAuthService(users, jwtService, infrastructure.NewRateLimiter(time.Minute, 100), nil, logger)
	mealSvc := services.NewMealService(meals, ingredients, nil, 0, nil, logger)

	h := NewHandler(auth, mealSvc, false, logger)
	return &testServer{
		e:   NewRouter(h, jwtService, RouterConfig{}, logger),
		jwt: jwtService,
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func loginRequest(login, password string) *http.Request {
	form := url.Values{}
	form.Set("uname", login)
	form.Set("psw", password)
	req := httptest.NewRequest(http.MethodPost, "/LoginController", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLogin_RedirectsToMeals(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(loginRequest("admin@esi.ac.ma", "admin"))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "meals", rec.Header().Get(echo.HeaderLocation))
	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)

	claims, err := s.jwt.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "admin@esi.ac.ma", claims.Email)
}

func TestLogin_FailuresRedirectToErrorPage(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		login    string
		password string
	}{
		{name: "wrong password", login: "admin@esi.ac.ma", password: "wrong"},
		{name: "unknown login", login: "ghost@esi.ac.ma", password: "admin"},
		{name: "empty fields", login: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(loginRequest(tt.login, tt.password))
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "error.html", rec.Header().Get(echo.HeaderLocation))
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestErrorPage(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/error.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Login failed")
}

func TestListMeals(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/meals", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Result []struct {
				Id   uint   `json:"id"`
				Name string `json:"name"`
			} `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)

	names := make([]string, 0, len(body.Data.Result))
	for _, m := range body.Data.Result {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Breakfast", "Lunch", "Snacks", "Dinner"}, names)
}

func TestIngredients_RequireSessionAndCascade(t *testing.T) {
	s := newTestServer(t)

	addReq := func(cookie *http.Cookie) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/meals/Breakfast/ingredients",
			strings.NewReader(`{"name":"Egg","calories":155}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		return req
	}

	rec := s.do(addReq(nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := sessionCookie(t, s.do(loginRequest("admin@esi.ac.ma", "admin")))

	rec = s.do(addReq(cookie))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(httptest.NewRequest(http.MethodGet, "/meals/Breakfast/ingredients", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Data struct {
			Meal struct {
				Id uint `json:"id"`
			} `json:"meal"`
			Result []struct {
				Name     string `json:"name"`
				Calories int    `json:"calories"`
			} `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data.Result, 1)
	assert.Equal(t, "Egg", list.Data.Result[0].Name)
	assert.Equal(t, 155, list.Data.Result[0].Calories)

	token, err := s.jwt.GenerateToken("user-1", "admin@esi.ac.ma")
	require.NoError(t, err)
	del := httptest.NewRequest(http.MethodDelete, "/meals/1", nil)
	del.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = s.do(del)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/meals/Breakfast/ingredients", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	del = httptest.NewRequest(http.MethodDelete, "/meals/1", nil)
	del.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, s.do(del).Code)
}

func TestDeleteMeal_BadID(t *testing.T) {
	s := newTestServer(t)
	token, err := s.jwt.GenerateToken("user-1", "admin@esi.ac.ma")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/meals/abc", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, s.do(req).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t)
	e := NewRouter(NewHandler(nil, nil, false, zap.NewNop()), s.jwt, RouterConfig{RequestsPerSecond: 0.001, Burst: 1}, zap.NewNop())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestListMeals_StorageFailureIsUnavailable(t *testing.T) {
	logger := zap.NewNop()
	provider := db.NewProvider(config.DatabaseConfig{
		Driver: "sqlite",
		Name:   filepath.Join(t.TempDir(), "unmigrated.db"),
	}, logger)
	mealSvc := services.NewMealService(postgres.NewMealRepository(provider), postgres.NewIngredientRepository(provider), nil, 0, nil, logger)
	jwtService := infrastructure.NewJWTService("test-secret", time.Hour)
	e := NewRouter(NewHandler(nil, mealSvc, false, logger), jwtService, RouterConfig{}, logger)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meals", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "no such table")
}
