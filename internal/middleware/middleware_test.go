package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/model"
	"github.com/stemsi/institute-admin/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokens struct {
	claims *service.Claims
	err    error
}

func (s stubTokens) ValidateToken(string) (*service.Claims, error) {
	return s.claims, s.err
}

type stubSessions struct{ err error }

func (s stubSessions) ValidateSession(context.Context, *service.Claims) error { return s.err }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func protected(tokens TokenValidator, sessions SessionValidator, roles ...int) *gin.Engine {
	r := gin.New()
	r.GET("/x", RequireJWT(tokens), CheckActiveSession(sessions), RequireRole(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, "user %d", GetClaims(c).UserID)
	})
	return r
}

func TestAuthChain(t *testing.T) {
	admin := &service.Claims{UserID: 1, RoleID: model.RoleAdmin}
	teacher := &service.Claims{UserID: 2, RoleID: model.RoleTeacher}

	tests := []struct {
		name       string
		header     string
		tokens     stubTokens
		sessions   stubSessions
		wantStatus int
		wantCode   string
	}{
		{"no header", "", stubTokens{claims: admin}, stubSessions{}, http.StatusUnauthorized, "TOKEN_REQUIRED"},
		{"not bearer", "Basic abc", stubTokens{claims: admin}, stubSessions{}, http.StatusUnauthorized, "TOKEN_REQUIRED"},
		{"invalid token", "Bearer abc", stubTokens{err: errors.New("bad")}, stubSessions{}, http.StatusUnauthorized, "TOKEN_INVALID"},
		{"expired token", "Bearer abc", stubTokens{err: fmt.Errorf("parse token: %w", jwt.ErrTokenExpired)}, stubSessions{}, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"replaced session", "Bearer abc", stubTokens{claims: admin}, stubSessions{err: service.ErrSessionInvalidated}, http.StatusUnauthorized, "SESSION_INVALIDATED"},
		{"wrong role", "Bearer abc", stubTokens{claims: teacher}, stubSessions{}, http.StatusForbidden, "FORBIDDEN"},
		{"allowed", "bearer abc", stubTokens{claims: admin}, stubSessions{}, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(protected(tt.tokens, tt.sessions, model.RoleAdmin), req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantCode != "" && !strings.Contains(w.Body.String(), tt.wantCode) {
				t.Fatalf("body %s lacks %s", w.Body.String(), tt.wantCode)
			}
		})
	}
}

type memoryCounter struct {
	hits map[string]int64
	err  error
}

func (m *memoryCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.hits[key]++
	return m.hits[key], nil
}

func limited(counter AttemptCounter, rate int) *gin.Engine {
	r := gin.New()
	rl := NewRateLimiter(counter, rate, time.Minute, zerolog.Nop())
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRateLimiter(t *testing.T) {
	r := limited(&memoryCounter{hits: map[string]int64{}}, 2)

	for i := 1; i <= 3; i++ {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
		if i <= 2 && w.Code != http.StatusNoContent {
			t.Fatalf("attempt %d: status %d", i, w.Code)
		}
		if i == 3 {
			if w.Code != http.StatusTooManyRequests {
				t.Fatalf("attempt 3: status %d", w.Code)
			}
			if w.Header().Get("Retry-After") != "60" {
				t.Fatalf("Retry-After = %q", w.Header().Get("Retry-After"))
			}
		}
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	r := limited(&memoryCounter{err: errors.New("redis down")}, 1)
	for i := 0; i < 3; i++ {
		if w := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil)); w.Code != http.StatusNoContent {
			t.Fatalf("status %d", w.Code)
		}
	}
}

func TestBrotli(t *testing.T) {
	big := strings.Repeat("Lovelace ", 400)
	r := gin.New()
	r.Use(Brotli(1024))
	r.GET("/big", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"name": big}) })
	r.GET("/small", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"name": "Ada"}) })
	r.GET("/file", func(c *gin.Context) { c.Data(http.StatusOK, "application/octet-stream", []byte(big)) })
	r.DELETE("/none", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	get := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Accept-Encoding", "gzip, br;q=0.9")
		return serve(r, req)
	}

	t.Run("large json is compressed", func(t *testing.T) {
		w := get(http.MethodGet, "/big")
		if w.Header().Get("Content-Encoding") != "br" {
			t.Fatalf("Content-Encoding = %q", w.Header().Get("Content-Encoding"))
		}
		plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(plain), "Lovelace") {
			t.Fatal("decompressed body mismatch")
		}
	})

	t.Run("small json untouched", func(t *testing.T) {
		w := get(http.MethodGet, "/small")
		if w.Header().Get("Content-Encoding") != "" || !strings.Contains(w.Body.String(), "Ada") {
			t.Fatalf("headers=%v body=%s", w.Header(), w.Body.String())
		}
	})

	t.Run("binary untouched", func(t *testing.T) {
		w := get(http.MethodGet, "/file")
		if w.Header().Get("Content-Encoding") != "" || w.Body.Len() != len(big) {
			t.Fatalf("binary body altered")
		}
	})

	t.Run("empty body keeps status", func(t *testing.T) {
		if w := get(http.MethodDelete, "/none"); w.Code != http.StatusNoContent {
			t.Fatalf("status = %d", w.Code)
		}
	})
}
