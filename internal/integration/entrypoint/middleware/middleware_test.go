package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/application/usecase/usecasetest"
	"github.com/billing-panel/backend/internal/domain/entity"
)

type stubTokenService struct {
	claims map[string]*adapter.TokenClaims
}

func (s stubTokenService) IssueAccessToken(context.Context, *entity.User) (*adapter.IssuedToken, error) {
	return nil, errors.New("not implemented")
}

func (s stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if c, ok := s.claims[token]; ok {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

func (s stubTokenService) RevokeAccessToken(context.Context, string) error { return nil }

func TestAuthenticateAndRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens := stubTokenService{claims: map[string]*adapter.TokenClaims{
		"admin-token": {UserID: uuid.New(), Email: "admin@panel.test", Role: entity.RoleAdmin},
		"sales-token": {UserID: uuid.New(), Email: "sales@panel.test", Role: entity.RoleSales},
	}}
	auth := NewAuthMiddleware(tokens)

	router := gin.New()
	router.DELETE("/customers/:id", auth.Authenticate(), RequireRoles(entity.RoleAdmin), func(c *gin.Context) {
		if GetAccessTokenFromContext(c) == "" {
			t.Error("expected access token in context")
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer sales-token", want: http.StatusForbidden},
		{name: "allowed role", header: "Bearer admin-token", want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/customers/"+uuid.NewString(), nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := &usecasetest.Clock{Current: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	limiter := NewRateLimiter(RateLimiterConfig{Enabled: true, MaxAttempts: 2, WindowDuration: time.Minute}, clock)
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		return rec
	}

	if got := do().Code; got != http.StatusOK {
		t.Fatalf("first attempt = %d", got)
	}
	if got := do().Code; got != http.StatusOK {
		t.Fatalf("second attempt = %d", got)
	}
	blocked := do()
	if blocked.Code != http.StatusTooManyRequests {
		t.Fatalf("third attempt = %d, want 429", blocked.Code)
	}
	if blocked.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	clock.Advance(time.Minute + time.Second)
	if got := do().Code; got != http.StatusOK {
		t.Errorf("after window = %d, want 200", got)
	}

	clock.Advance(2 * time.Minute)
	limiter.Cleanup()
	if len(limiter.windows) != 0 {
		t.Errorf("expected expired windows to be dropped, have %d", len(limiter.windows))
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(RateLimiterConfig{Enabled: false, MaxAttempts: 1}, &usecasetest.Clock{Current: time.Now()})
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d = %d", i, rec.Code)
		}
	}
}
