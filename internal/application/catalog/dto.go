package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// ConditionRequest is one rule in a smart collection's rule set as it
// arrives over the API. Shape validation happens here; semantic
// validation (parseable payloads, known type/operator combinations) is
// deliberately lenient and handled at compile time.
type ConditionRequest struct {
	Type     string `json:"type" binding:"required,oneof=tag price title stock category"`
	Operator string `json:"operator" binding:"required,oneof=contains equals greater_than less_than between in_stock out_of_stock"`
	Value    string `json:"value" binding:"max=200"`
	Min      string `json:"min" binding:"max=50"`
	Max      string `json:"max" binding:"max=50"`
}

// CreateCollectionRequest represents a request to create a collection
type CreateCollectionRequest struct {
	Name           string             `json:"name" binding:"required,min=1,max=200"`
	Slug           string             `json:"slug" binding:"omitempty,max=220"`
	Description    string             `json:"description" binding:"max=2000"`
	Type           string             `json:"type" binding:"required,oneof=manual smart"`
	ProductIDs     []uuid.UUID        `json:"product_ids"`
	Rules          []ConditionRequest `json:"rules" binding:"omitempty,dive"`
	SortOrder      string             `json:"sort_order" binding:"omitempty"`
	SEOTitle       string             `json:"seo_title" binding:"max=200"`
	SEODescription string             `json:"seo_description" binding:"max=500"`
	IsFeatured     *bool              `json:"is_featured"`
	Publish        bool               `json:"publish"`
}

// UpdateCollectionRequest represents a partial update to a collection.
// Nil fields are left untouched.
type UpdateCollectionRequest struct {
	Name              *string             `json:"name" binding:"omitempty,min=1,max=200"`
	Slug              *string             `json:"slug" binding:"omitempty,max=220"`
	Description       *string             `json:"description" binding:"omitempty,max=2000"`
	Type              *string             `json:"type" binding:"omitempty,oneof=manual smart"`
	ProductIDs        *[]uuid.UUID        `json:"product_ids"`
	Rules             *[]ConditionRequest `json:"rules" binding:"omitempty,dive"`
	SortOrder         *string             `json:"sort_order"`
	SEOTitle          *string             `json:"seo_title" binding:"omitempty,max=200"`
	SEODescription    *string             `json:"seo_description" binding:"omitempty,max=500"`
	ShowOnStorefront  *bool               `json:"show_on_storefront"`
	ShowOnMobile      *bool               `json:"show_on_mobile"`
	IsActive          *bool               `json:"is_active"`
	IsFeatured        *bool               `json:"is_featured"`
	IsTrending        *bool               `json:"is_trending"`
	IsSeasonal        *bool               `json:"is_seasonal"`
	IsSale            *bool               `json:"is_sale"`
	HomepagePlacement *bool               `json:"homepage_placement"`
	PlacementPriority *int                `json:"placement_priority"`
	IsDraft           *bool               `json:"is_draft"`
}

// CollectionResponse represents a collection in API responses. The
// product count is resolved live at response-build time and is never
// read from storage.
type CollectionResponse struct {
	ID                uuid.UUID          `json:"id"`
	SellerID          uuid.UUID          `json:"seller_id"`
	Name              string             `json:"name"`
	Slug              string             `json:"slug"`
	Description       string             `json:"description"`
	Type              string             `json:"type"`
	ProductIDs        []uuid.UUID        `json:"product_ids"`
	Rules             []ConditionRequest `json:"rules"`
	ProductCount      int64              `json:"product_count"`
	SortOrder         string             `json:"sort_order"`
	ShowOnStorefront  bool               `json:"show_on_storefront"`
	ShowOnMobile      bool               `json:"show_on_mobile"`
	IsActive          bool               `json:"is_active"`
	IsFeatured        bool               `json:"is_featured"`
	IsDraft           bool               `json:"is_draft"`
	IsTrending        bool               `json:"is_trending"`
	IsSeasonal        bool               `json:"is_seasonal"`
	IsSale            bool               `json:"is_sale"`
	SEOTitle          string             `json:"seo_title"`
	SEODescription    string             `json:"seo_description"`
	HomepagePlacement bool               `json:"homepage_placement"`
	PlacementPriority int                `json:"placement_priority"`
	PublishedAt       *time.Time         `json:"published_at"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	Version           int                `json:"version"`
}

// CollectionListResponse is the abbreviated shape used in list views
type CollectionListResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Type         string    `json:"type"`
	ProductCount int64     `json:"product_count"`
	IsActive     bool      `json:"is_active"`
	IsFeatured   bool      `json:"is_featured"`
	IsDraft      bool      `json:"is_draft"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CollectionListFilter represents filter options for the collection list
type CollectionListFilter struct {
	Search     string `form:"search"`
	Type       string `form:"type" binding:"omitempty,oneof=manual smart"`
	IsDraft    *bool  `form:"is_draft"`
	IsActive   *bool  `form:"is_active"`
	IsFeatured *bool  `form:"is_featured"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AddCollectionProductRequest adds one product to a manual collection
type AddCollectionProductRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// ReorderCollectionProductsRequest replaces the member ordering of a
// manual collection
type ReorderCollectionProductsRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=1"`
}

// PreviewRulesRequest previews an arbitrary rule set without saving it
type PreviewRulesRequest struct {
	Rules []ConditionRequest `json:"rules" binding:"required,dive"`
}

// PreviewCollectionRequest previews an existing collection, optionally
// overriding its stored rules with an unsaved rule set
type PreviewCollectionRequest struct {
	Rules []ConditionRequest `json:"rules" binding:"omitempty,dive"`
}

// MembershipChangeResponse reports the outcome of a membership edit
type MembershipChangeResponse struct {
	Changed      bool  `json:"changed"`
	ProductCount int64 `json:"product_count"`
}

// CollectionPreviewResponse is a capped sample of matching products
// plus the uncapped total
type CollectionPreviewResponse struct {
	Products    []ProductListResponse `json:"products"`
	Total       int64                 `json:"total"`
	SampleLimit int                   `json:"sample_limit"`
}

// CreateProductRequest represents a request to create a product listing
type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Slug        string          `json:"slug" binding:"omitempty,max=220"`
	Description string          `json:"description" binding:"max=5000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Quantity    *int            `json:"quantity" binding:"omitempty,min=0"`
	Tags        []string        `json:"tags" binding:"omitempty,max=50,dive,max=100"`
	Category    string          `json:"category" binding:"max=100"`
}

// UpdateProductRequest represents a partial update to a product listing
type UpdateProductRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity" binding:"omitempty,min=0"`
	Tags        *[]string        `json:"tags" binding:"omitempty,max=50,dive,max=100"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Status      *string          `json:"status" binding:"omitempty,oneof=active inactive archived"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	SellerID    uuid.UUID       `json:"seller_id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Tags        []string        `json:"tags"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ProductListResponse is the abbreviated shape used in list views and
// collection previews
type ProductListResponse struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Tags     []string        `json:"tags"`
	Category string          `json:"category"`
	Status   string          `json:"status"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive archived"`
	Category string `form:"category"`
	Tag      string `form:"tag"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToConditions converts API rule shapes to domain conditions
func ToConditions(reqs []ConditionRequest) []catalog.Condition {
	conditions := make([]catalog.Condition, len(reqs))
	for i, r := range reqs {
		conditions[i] = catalog.Condition{
			Type:     catalog.ConditionType(r.Type),
			Operator: catalog.ConditionOperator(r.Operator),
			Value:    r.Value,
			Min:      r.Min,
			Max:      r.Max,
		}
	}
	return conditions
}

// ToConditionRequests converts domain conditions back to the API shape
func ToConditionRequests(conditions []catalog.Condition) []ConditionRequest {
	reqs := make([]ConditionRequest, len(conditions))
	for i, c := range conditions {
		reqs[i] = ConditionRequest{
			Type:     string(c.Type),
			Operator: string(c.Operator),
			Value:    c.Value,
			Min:      c.Min,
			Max:      c.Max,
		}
	}
	return reqs
}

// ToCollectionResponse converts a domain Collection to CollectionResponse.
// productCount is supplied by the caller because resolving it requires a
// live catalog query.
func ToCollectionResponse(c *catalog.Collection, productCount int64) CollectionResponse {
	return CollectionResponse{
		ID:                c.ID,
		SellerID:          c.SellerID,
		Name:              c.Name,
		Slug:              c.Slug,
		Description:       c.Description,
		Type:              string(c.Type),
		ProductIDs:        append([]uuid.UUID{}, c.ManualMembers...),
		Rules:             ToConditionRequests(c.Rules),
		ProductCount:      productCount,
		SortOrder:         string(c.SortOrder),
		ShowOnStorefront:  c.ShowOnStorefront,
		ShowOnMobile:      c.ShowOnMobile,
		IsActive:          c.IsActive,
		IsFeatured:        c.IsFeatured,
		IsDraft:           c.IsDraft,
		IsTrending:        c.IsTrending,
		IsSeasonal:        c.IsSeasonal,
		IsSale:            c.IsSale,
		SEOTitle:          c.SEOTitle,
		SEODescription:    c.SEODescription,
		HomepagePlacement: c.HomepagePlacement,
		PlacementPriority: c.PlacementPriority,
		PublishedAt:       c.PublishedAt,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		Version:           c.Version,
	}
}

// ToCollectionListResponse converts a domain Collection to its list shape
func ToCollectionListResponse(c *catalog.Collection, productCount int64) CollectionListResponse {
	return CollectionListResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Type:         string(c.Type),
		ProductCount: productCount,
		IsActive:     c.IsActive,
		IsFeatured:   c.IsFeatured,
		IsDraft:      c.IsDraft,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Tags:        append([]string{}, p.Tags...),
		Category:    p.Category,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProductListResponse converts a domain Product to its list shape
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:       p.ID,
		Title:    p.Title,
		Slug:     p.Slug,
		Price:    p.Price,
		Quantity: p.Quantity,
		Tags:     append([]string{}, p.Tags...),
		Category: p.Category,
		Status:   string(p.Status),
	}
}

// ToProductListResponses converts a slice of domain Products
func ToProductListResponses(products []catalog.Product) []ProductListResponse {
	responses := make([]ProductListResponse, len(products))
	for i := range products {
		responses[i] = ToProductListResponse(&products[i])
	}
	return responses
}
