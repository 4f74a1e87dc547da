package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func spanAttribute(span sdktrace.ReadOnlySpan, key attribute.Key) (string, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value.AsString(), true
		}
	}
	return "", false
}

func TestTracingAttributeInjector(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("copies request and seller identity onto the span", func(t *testing.T) {
		recorder := newRecordingTracer(t)
		sellerID := uuid.New().String()

		r := gin.New()
		r.Use(RequestID(), Tracing("marketplace-backend"), TracingAttributeInjector())
		r.GET("/collections", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/collections", nil)
		req.Header.Set("X-Seller-ID", sellerID)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)

		got, ok := spanAttribute(spans[0], "seller_id")
		require.True(t, ok)
		assert.Equal(t, sellerID, got)

		requestID, ok := spanAttribute(spans[0], "request_id")
		require.True(t, ok)
		assert.NotEmpty(t, requestID)
	})

	t.Run("ignores a malformed seller header", func(t *testing.T) {
		recorder := newRecordingTracer(t)

		r := gin.New()
		r.Use(Tracing("marketplace-backend"), TracingAttributeInjector())
		r.GET("/collections", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/collections", nil)
		req.Header.Set("X-Seller-ID", "not-a-uuid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		_, ok := spanAttribute(spans[0], "seller_id")
		assert.False(t, ok)
	})

	t.Run("prefers the authenticated seller over the header", func(t *testing.T) {
		recorder := newRecordingTracer(t)
		claimed := uuid.New().String()

		r := gin.New()
		r.Use(Tracing("marketplace-backend"), func(c *gin.Context) {
			c.Set(JWTSellerIDKey, claimed)
		}, TracingAttributeInjector())
		r.GET("/collections", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/collections", nil)
		req.Header.Set("X-Seller-ID", uuid.New().String())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		got, ok := spanAttribute(spans[0], "seller_id")
		require.True(t, ok)
		assert.Equal(t, claimed, got)
	})
}

func TestSpanErrorMarker(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("marks 4xx responses as errored", func(t *testing.T) {
		recorder := newRecordingTracer(t)

		r := gin.New()
		r.Use(Tracing("marketplace-backend"), SpanErrorMarker())
		r.GET("/collections/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/collections/"+uuid.NewString(), nil))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("leaves successful responses unmarked", func(t *testing.T) {
		recorder := newRecordingTracer(t)

		r := gin.New()
		r.Use(Tracing("marketplace-backend"), SpanErrorMarker())
		r.GET("/collections", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/collections", nil))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.NotEqual(t, codes.Error, spans[0].Status().Code)
	})
}
