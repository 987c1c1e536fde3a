//go:build unit

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"inspection-marketplace/internal/handler/middleware"
	"inspection-marketplace/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newLoggedEngine(t *testing.T) (*gin.Engine, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	cfg := config.NewTestConfig().Log
	cfg.Level = "info"
	l := middleware.NewLoggerTo(&buf, cfg)

	engine := gin.New()
	engine.Use(l.LoggingMiddleware())
	authenticated := func(c *gin.Context) {
		c.Set("jwt_claims", map[string]any{"user_id": "u-42", "role": "buyer"})
		c.Next()
	}
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	engine.POST("/api/bookings/:id/accept", authenticated, ok)
	engine.POST("/api/proposals/:id/counter", ok)
	engine.POST("/api/admin/users/:id/verify-email", ok)
	engine.GET("/api/mechanics/me/payout-dashboard", ok)
	engine.POST("/webhooks/payments", ok)
	return engine, &buf
}

func TestLoggingMiddleware(t *testing.T) {
	id := uuid.NewString()

	cases := []struct {
		name    string
		method  string
		path    string
		want    []string
		notWant []string
	}{
		{
			name:   "booking route names the booking and the actor",
			method: http.MethodPost,
			path:   "/api/bookings/" + id + "/accept",
			want:   []string{"booking_id=" + id, "user_id=u-42", "role=buyer", "status_code=204"},
		},
		{
			name:    "proposal route",
			method:  http.MethodPost,
			path:    "/api/proposals/" + id + "/counter",
			want:    []string{"proposal_id=" + id},
			notWant: []string{"booking_id", "user_id="},
		},
		{
			name:   "admin acting on another user",
			method: http.MethodPost,
			path:   "/api/admin/users/" + id + "/verify-email",
			want:   []string{"target_user_id=" + id},
		},
		{
			name:    "own mechanic routes carry no resource id",
			method:  http.MethodGet,
			path:    "/api/mechanics/me/payout-dashboard",
			notWant: []string{"mechanic_id"},
		},
		{
			name:   "webhook",
			method: http.MethodPost,
			path:   "/webhooks/payments",
			want:   []string{"webhook=true"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			engine, buf := newLoggedEngine(t)

			req := nethttptest.NewRequest(c.method, c.path, nil)
			req.Header.Set("X-User-ID", "spoofed")
			engine.ServeHTTP(nethttptest.NewRecorder(), req)

			out := buf.String()
			assert.Contains(t, out, "Request completed")
			assert.NotContains(t, out, "spoofed")
			for _, w := range c.want {
				assert.Contains(t, out, w)
			}
			for _, w := range c.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}
