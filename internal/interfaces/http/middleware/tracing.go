package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// maxRequestIDAttrLength bounds the request ID copied onto a span so a
// hostile header cannot bloat trace storage.
const maxRequestIDAttrLength = 128

// Tracing starts a server span per request via otelgin. Place it before
// the logging middleware so log entries inherit an active trace context.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// TracingAttributeInjector copies the request correlation ID and the
// authenticated seller and user onto the active span. It runs after the
// JWT middleware so the claims are already bound to the context.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if requestID := c.GetString("request_id"); requestID != "" && len(requestID) <= maxRequestIDAttrLength {
				span.SetAttributes(attribute.String("request_id", requestID))
			}
			if sellerID := spanUUIDValue(c, JWTSellerIDKey, "X-Seller-ID"); sellerID != "" {
				span.SetAttributes(attribute.String("seller_id", sellerID))
			}
			if userID := spanUUIDValue(c, JWTUserIDKey, ""); userID != "" {
				span.SetAttributes(attribute.String("user_id", userID))
			}
		}
		c.Next()
	}
}

// SpanErrorMarker flags the active span as errored for 4xx/5xx
// responses so failed requests stand out in the trace backend.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		status := c.Writer.Status()
		if status >= 400 {
			span.SetStatus(codes.Error, c.Request.Method+" "+c.FullPath())
			span.SetAttributes(attribute.Int("http.response.status_code", status))
		}
	}
}

// spanUUIDValue reads an identity value from the gin context, falling
// back to a header in development setups without JWT auth. Only valid
// UUIDs are copied onto spans.
func spanUUIDValue(c *gin.Context, contextKey, headerFallback string) string {
	if v, exists := c.Get(contextKey); exists {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if headerFallback == "" {
		return ""
	}
	raw := c.GetHeader(headerFallback)
	if raw == "" {
		return ""
	}
	if _, err := uuid.Parse(raw); err != nil {
		return ""
	}
	return raw
}
