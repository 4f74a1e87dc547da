package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

func setupProductRouter(productRepo *MockProductRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := catalogapp.NewProductService(productRepo)
	h := NewProductHandler(service)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r
}

func TestProductHandler_Create(t *testing.T) {
	sellerID := uuid.New()

	t.Run("creates a product listing", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		router := setupProductRouter(productRepo)

		productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		w := doRequest(router, http.MethodPost, "/api/v1/catalog/products", sellerID, gin.H{
			"title": "Straw Hat",
			"price": "19.99",
			"tags":  []string{"summer", "accessories"},
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "straw-hat")
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects request without title", func(t *testing.T) {
		router := setupProductRouter(new(MockProductRepository))

		w := doRequest(router, http.MethodPost, "/api/v1/catalog/products", sellerID, gin.H{
			"price": "19.99",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects request without seller identity", func(t *testing.T) {
		router := setupProductRouter(new(MockProductRepository))

		w := doRequest(router, http.MethodPost, "/api/v1/catalog/products", uuid.Nil, gin.H{
			"title": "Straw Hat",
			"price": "19.99",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	sellerID := uuid.New()

	t.Run("returns product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		router := setupProductRouter(productRepo)

		product, err := catalog.NewProduct(sellerID, "Straw Hat", decimal.NewFromFloat(19.99))
		require.NoError(t, err)
		productRepo.On("FindByIDForSeller", mock.Anything, sellerID, product.ID).Return(product, nil)

		w := doRequest(router, http.MethodGet, "/api/v1/catalog/products/"+product.ID.String(), sellerID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Straw Hat")
	})

	t.Run("returns NOT_FOUND for foreign product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		router := setupProductRouter(productRepo)

		productID := uuid.New()
		productRepo.On("FindByIDForSeller", mock.Anything, sellerID, productID).Return(nil, shared.ErrNotFound)

		w := doRequest(router, http.MethodGet, "/api/v1/catalog/products/"+productID.String(), sellerID, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}

func TestProductHandler_List(t *testing.T) {
	sellerID := uuid.New()

	productRepo := new(MockProductRepository)
	router := setupProductRouter(productRepo)

	p1, err := catalog.NewProduct(sellerID, "Straw Hat", decimal.NewFromInt(20))
	require.NoError(t, err)
	p2, err := catalog.NewProduct(sellerID, "Beach Towel", decimal.NewFromInt(15))
	require.NoError(t, err)

	productRepo.On("FindAllForSeller", mock.Anything, sellerID, mock.Anything).Return([]catalog.Product{*p1, *p2}, nil)
	productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	w := doRequest(router, http.MethodGet, "/api/v1/catalog/products?page=1&page_size=20", sellerID, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
	assert.Contains(t, w.Body.String(), "Straw Hat")
	assert.Contains(t, w.Body.String(), "Beach Towel")
}

func TestProductHandler_Update(t *testing.T) {
	sellerID := uuid.New()

	t.Run("applies partial update", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		router := setupProductRouter(productRepo)

		product, err := catalog.NewProduct(sellerID, "Straw Hat", decimal.NewFromInt(20))
		require.NoError(t, err)
		productRepo.On("FindByIDForSeller", mock.Anything, sellerID, product.ID).Return(product, nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)

		w := doRequest(router, http.MethodPatch, "/api/v1/catalog/products/"+product.ID.String(), sellerID, gin.H{
			"quantity": 7,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"quantity":7`)
	})

	t.Run("rejects invalid status value", func(t *testing.T) {
		router := setupProductRouter(new(MockProductRepository))

		w := doRequest(router, http.MethodPatch, "/api/v1/catalog/products/"+uuid.NewString(), sellerID, gin.H{
			"status": "parked",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	sellerID := uuid.New()

	productRepo := new(MockProductRepository)
	router := setupProductRouter(productRepo)

	product, err := catalog.NewProduct(sellerID, "Straw Hat", decimal.NewFromInt(20))
	require.NoError(t, err)
	productRepo.On("FindByIDForSeller", mock.Anything, sellerID, product.ID).Return(product, nil)
	productRepo.On("Delete", mock.Anything, product.ID).Return(nil)

	w := doRequest(router, http.MethodDelete, "/api/v1/catalog/products/"+product.ID.String(), sellerID, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	productRepo.AssertExpectations(t)
}
