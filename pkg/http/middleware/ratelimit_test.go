package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	applogger "MetalPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

func TestLimiterRefills(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lim := NewLimiter(1, 2)
	lim.now = func() time.Time { return clock }

	if !lim.Allow("a") || !lim.Allow("a") {
		t.Fatalf("burst of 2 should pass")
	}
	if lim.Allow("a") {
		t.Fatalf("third request should be limited")
	}
	if !lim.Allow("b") {
		t.Fatalf("keys are independent")
	}
	clock = clock.Add(1500 * time.Millisecond)
	if !lim.Allow("a") {
		t.Fatalf("expected refill after 1.5s")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(applogger.Nop(), NewLimiter(0.001, 1), "/healthz"))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/", ok)
	e.GET("/healthz", ok)

	codes := make([]int, 0, 4)
	for _, path := range []string{"/", "/", "/healthz", "/healthz"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		codes = append(codes, rec.Code)
	}
	want := []int{200, 429, 200, 200}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("request %d: got %d, want %d", i, codes[i], want[i])
		}
	}
}
