package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
)

type stubTokenService struct{}

func (stubTokenService) GenerateAccessToken(_ context.Context, userID, _ string) (*adapter.AccessToken, error) {
	return &adapter.AccessToken{Token: "token-" + userID}, nil
}

func (stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid")
	}
	return &adapter.TokenClaims{UserID: "user_1", Username: "maria"}, nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", NewAuthMiddleware(stubTokenService{}).Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		username, _ := GetUsernameFromContext(c)
		c.String(http.StatusOK, userID+":"+username)
	})
	return router
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, ""},
		{"valid token", "Bearer good", http.StatusOK, "user_1:maria"},
	}

	router := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRateLimiter_Window(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiterWithConfig(2, time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if ok, _ := rl.hit("ip|maria"); !ok {
			t.Fatalf("expected attempt %d to be allowed", i+1)
		}
	}
	now = now.Add(15 * time.Second)
	ok, wait := rl.hit("ip|maria")
	if ok {
		t.Error("expected third attempt to be rejected")
	}
	if wait != 45*time.Second {
		t.Errorf("expected 45s until the window closes, got %s", wait)
	}
	if ok, _ := rl.hit("ip|pedro"); !ok {
		t.Error("expected a different key to be allowed")
	}

	now = now.Add(46 * time.Second)
	if ok, _ := rl.hit("ip|maria"); !ok {
		t.Error("expected attempt after window to be allowed")
	}

	now = now.Add(2 * time.Minute)
	rl.Prune()
	if len(rl.windows) != 0 {
		t.Errorf("expected closed windows to be removed, got %d", len(rl.windows))
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		limit     int
		bodies    []string
		wantCodes []int
	}{
		{
			name:      "same login is limited",
			limit:     1,
			bodies:    []string{`{"login":"maria","password":"x"}`, `{"login":" MARIA ","password":"y"}`},
			wantCodes: []int{http.StatusOK, http.StatusTooManyRequests},
		},
		{
			name:      "logins count separately",
			limit:     1,
			bodies:    []string{`{"login":"maria","password":"x"}`, `{"login":"pedro","password":"x"}`},
			wantCodes: []int{http.StatusOK, http.StatusOK},
		},
		{
			name:      "unreadable body falls back to the address",
			limit:     1,
			bodies:    []string{"", "not json"},
			wantCodes: []int{http.StatusOK, http.StatusTooManyRequests},
		},
		{
			name:      "disabled",
			limit:     0,
			bodies:    []string{`{"login":"maria"}`, `{"login":"maria"}`, `{"login":"maria"}`},
			wantCodes: []int{http.StatusOK, http.StatusOK, http.StatusOK},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiterWithConfig(tt.limit, time.Minute)
			received := make([]string, 0, len(tt.bodies))
			router := gin.New()
			router.POST("/login", rl.Middleware(), func(c *gin.Context) {
				body, _ := io.ReadAll(c.Request.Body)
				received = append(received, string(body))
				c.Status(http.StatusOK)
			})

			for i, body := range tt.bodies {
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
				if rec.Code != tt.wantCodes[i] {
					t.Errorf("request %d: expected %d, got %d", i, tt.wantCodes[i], rec.Code)
				}
				if rec.Code == http.StatusTooManyRequests && rec.Header().Get("Retry-After") != "60" {
					t.Errorf("request %d: expected Retry-After 60, got %q", i, rec.Header().Get("Retry-After"))
				}
				if rec.Code == http.StatusOK && received[len(received)-1] != body {
					t.Errorf("request %d: expected handler to read %q, got %q", i, body, received[len(received)-1])
				}
			}
		})
	}
}
