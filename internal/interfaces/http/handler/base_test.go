package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/marketplace/backend/internal/domain/shared"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGetSellerID(t *testing.T) {
	t.Run("reads seller ID from JWT context", func(t *testing.T) {
		c, _ := newTestContext()
		sellerID := uuid.New()
		c.Set("jwt_seller_id", sellerID.String())

		got, err := getSellerID(c)
		assert.NoError(t, err)
		assert.Equal(t, sellerID, got)
	})

	t.Run("falls back to X-Seller-ID header", func(t *testing.T) {
		c, _ := newTestContext()
		sellerID := uuid.New()
		c.Request.Header.Set("X-Seller-ID", sellerID.String())

		got, err := getSellerID(c)
		assert.NoError(t, err)
		assert.Equal(t, sellerID, got)
	})

	t.Run("errors when no seller identity present", func(t *testing.T) {
		c, _ := newTestContext()

		_, err := getSellerID(c)
		assert.Error(t, err)
	})

	t.Run("errors on malformed seller ID", func(t *testing.T) {
		c, _ := newTestContext()
		c.Request.Header.Set("X-Seller-ID", "not-a-uuid")

		_, err := getSellerID(c)
		assert.Error(t, err)
	})
}

func TestBaseHandler_HandleDomainError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("maps NOT_FOUND to 404", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleDomainError(c, shared.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})

	t.Run("maps VALIDATION_ERROR to 400", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleDomainError(c, shared.NewValidationError("Name is required"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
		assert.Contains(t, w.Body.String(), "Name is required")
	})

	t.Run("maps TYPE_MISMATCH to 400", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleDomainError(c, shared.NewTypeMismatchError("Manual operation on smart collection"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "TYPE_MISMATCH")
	})

	t.Run("maps unknown errors to 500 without leaking detail", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleDomainError(c, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	})

	t.Run("unwraps wrapped domain errors", func(t *testing.T) {
		c, w := newTestContext()
		wrapped := errors.Join(errors.New("context"), shared.ErrNotFound)
		h.HandleDomainError(c, wrapped)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBaseHandler_Responses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("Success wraps data in envelope", func(t *testing.T) {
		c, w := newTestContext()
		h.Success(c, gin.H{"name": "Summer Picks"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), "Summer Picks")
	})

	t.Run("SuccessWithMeta includes pagination", func(t *testing.T) {
		c, w := newTestContext()
		h.SuccessWithMeta(c, []string{"a"}, 45, 2, 20)

		assert.Contains(t, w.Body.String(), `"total":45`)
		assert.Contains(t, w.Body.String(), `"total_pages":3`)
	})

	t.Run("error responses carry the request ID", func(t *testing.T) {
		c, w := newTestContext()
		c.Set("request_id", "req-789")
		h.NotFound(c, "Resource not found")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "req-789")
	})
}
