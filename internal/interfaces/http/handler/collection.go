package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
)

// CollectionHandler handles collection API endpoints
type CollectionHandler struct {
	BaseHandler
	collectionService *catalogapp.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collectionService *catalogapp.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
	}
}

// RegisterRoutes registers collection routes on the given group
func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	collections := rg.Group("/catalog/collections")
	{
		collections.POST("", h.Create)
		collections.GET("", h.List)
		collections.POST("/preview", h.PreviewRules)
		collections.GET("/slug/:slug", h.GetBySlug)
		collections.GET("/:id", h.GetByID)
		collections.PATCH("/:id", h.Update)
		collections.DELETE("/:id", h.Delete)
		collections.POST("/:id/publish", h.Publish)
		collections.POST("/:id/unpublish", h.Unpublish)
		collections.POST("/:id/preview", h.Preview)
		collections.GET("/:id/products", h.ListProducts)
		collections.POST("/:id/products", h.AddProduct)
		collections.DELETE("/:id/products/:productId", h.RemoveProduct)
		collections.PUT("/:id/products", h.ReorderProducts)
	}
}

// Create creates a new collection
func (h *CollectionHandler) Create(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	var req catalogapp.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	collection, err := h.collectionService.Create(c.Request.Context(), sellerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, collection)
}

// GetByID retrieves a collection by its ID
func (h *CollectionHandler) GetByID(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	collection, err := h.collectionService.GetByID(c.Request.Context(), sellerID, collectionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, collection)
}

// GetBySlug retrieves a collection by its slug
func (h *CollectionHandler) GetBySlug(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collection, err := h.collectionService.GetBySlug(c.Request.Context(), sellerID, c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, collection)
}

// List returns the seller's collections with filtering and pagination
func (h *CollectionHandler) List(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	var filter catalogapp.CollectionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	collections, total, err := h.collectionService.List(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, collections, total, filter.Page, filter.PageSize)
}

// Update applies a partial update to a collection
func (h *CollectionHandler) Update(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	var req catalogapp.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	collection, err := h.collectionService.Update(c.Request.Context(), sellerID, collectionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, collection)
}

// Delete removes a collection
func (h *CollectionHandler) Delete(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	if err := h.collectionService.Delete(c.Request.Context(), sellerID, collectionID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Publish takes a draft collection live
func (h *CollectionHandler) Publish(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	collection, err := h.collectionService.Publish(c.Request.Context(), sellerID, collectionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, collection)
}

// Unpublish reverts a collection to draft
func (h *CollectionHandler) Unpublish(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	collection, err := h.collectionService.Unpublish(c.Request.Context(), sellerID, collectionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, collection)
}

// AddProduct adds a product to a manual collection
func (h *CollectionHandler) AddProduct(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	var req catalogapp.AddCollectionProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.collectionService.AddProduct(c.Request.Context(), sellerID, collectionID, req.ProductID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveProduct removes a product from a manual collection
func (h *CollectionHandler) RemoveProduct(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	result, err := h.collectionService.RemoveProduct(c.Request.Context(), sellerID, collectionID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ReorderProducts replaces the member ordering of a manual collection
func (h *CollectionHandler) ReorderProducts(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	var req catalogapp.ReorderCollectionProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	collection, err := h.collectionService.ReorderProducts(c.Request.Context(), sellerID, collectionID, req.ProductIDs)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, collection)
}

// ListProducts returns the resolved member products of a collection
func (h *CollectionHandler) ListProducts(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	products, total, err := h.collectionService.ListProducts(c.Request.Context(), sellerID, collectionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"products": products, "total": total})
}

// Preview returns a capped product sample for a saved collection. The
// body may carry an override rule list; an empty body previews the
// stored rules.
func (h *CollectionHandler) Preview(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid collection ID format")
		return
	}

	var req catalogapp.PreviewCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindError(c, err)
		return
	}

	preview, err := h.collectionService.PreviewCollection(c.Request.Context(), sellerID, collectionID, req.Rules)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, preview)
}

// PreviewRules previews an unsaved rule set without persisting anything
func (h *CollectionHandler) PreviewRules(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Seller identity required")
		return
	}

	var req catalogapp.PreviewRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	preview, err := h.collectionService.PreviewRules(c.Request.Context(), sellerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, preview)
}
