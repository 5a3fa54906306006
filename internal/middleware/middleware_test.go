package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"
	valid := jwt.RegisteredClaims{
		Subject:   "surveyor",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	expired := jwt.RegisteredClaims{
		Subject:   "surveyor",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"valid", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(secret), valid), http.StatusOK},
		{"lowercase scheme", "bearer " + signed(t, jwt.SigningMethodHS256, []byte(secret), valid), http.StatusOK},
		{"wrong secret", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte("other"), valid), http.StatusUnauthorized},
		{"wrong method", "Bearer " + signed(t, jwt.SigningMethodHS512, []byte(secret), valid), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(secret), expired), http.StatusUnauthorized},
	}

	r := gin.New()
	r.GET("/", JWTAuth(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SubjectKey))
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusOK && w.Body.String() != "surveyor" {
				t.Errorf("subject = %q", w.Body.String())
			}
		})
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("a") {
		t.Error("third request inside the window should be rejected")
	}
	if !rl.Allow("b") {
		t.Error("other clients have their own window")
	}
}

func TestRateLimiterWindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond)
	defer rl.Stop()

	if !rl.Allow("a") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("a") {
		t.Fatal("second request should be rejected")
	}
	time.Sleep(80 * time.Millisecond)
	if !rl.Allow("a") {
		t.Error("request after the window should pass")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	r := gin.New()
	r.Use(Logger(), RateLimit(rl))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}
