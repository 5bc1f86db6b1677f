package v1_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	v1 "github.com/KirkDiggler/rpg-dungeon/internal/handlers/api/v1"
)

func serveTraced(t *testing.T, header string) trace.SpanContext {
	t.Helper()

	var seen trace.SpanContext
	e := echo.New()
	e.Use(v1.TraceContext(propagation.TraceContext{}))
	e.GET("/traced", func(c echo.Context) error {
		seen = trace.SpanContextFromContext(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/traced", nil)
	if header != "" {
		req.Header.Set("traceparent", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	return seen
}

func TestTraceContext_JoinsIncomingTrace(t *testing.T) {
	sc := serveTraced(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	require.True(t, sc.IsValid())
	assert.True(t, sc.IsRemote())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", sc.TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", sc.SpanID().String())
	assert.True(t, sc.IsSampled())
}

func TestTraceContext_NoHeader(t *testing.T) {
	sc := serveTraced(t, "")
	assert.False(t, sc.IsValid())
}
