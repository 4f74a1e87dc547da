package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ProductService handles product listing operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product listing
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(sellerID, req.Title, req.Price)
	if err != nil {
		return nil, err
	}

	if req.Slug != "" {
		product.Slug = req.Slug
	}
	if req.Description != "" {
		if err := product.Update(req.Title, req.Description); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := product.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if len(req.Tags) > 0 {
		product.SetTags(req.Tags)
	}
	if req.Category != "" {
		product.SetCategory(req.Category)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, sellerID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForSeller(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, sellerID uuid.UUID, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Tag != "" {
		domainFilter.Filters["tag"] = filter.Tag
	}

	products, err := s.productRepo.FindAllForSeller(ctx, sellerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, shared.Filter{
		Search:  domainFilter.Search,
		Filters: withSellerID(domainFilter.Filters, sellerID),
	})
	if err != nil {
		return nil, 0, err
	}

	return ToProductListResponses(products), total, nil
}

// Update applies a partial update to a product listing
func (s *ProductService) Update(ctx context.Context, sellerID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForSeller(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil || req.Description != nil {
		title := product.Title
		description := product.Description
		if req.Title != nil {
			title = *req.Title
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(title, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := product.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Tags != nil {
		product.SetTags(*req.Tags)
	}
	if req.Category != nil {
		product.SetCategory(*req.Category)
	}

	if req.Status != nil {
		if err := applyStatusTransition(product, catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product listing. Stale references in manual
// collection member lists are tolerated and filtered out at resolution
// time, so no collection cleanup happens here.
func (s *ProductService) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDForSeller(ctx, sellerID, productID)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, product.ID)
}

func applyStatusTransition(product *catalog.Product, target catalog.ProductStatus) error {
	if product.Status == target {
		return nil
	}
	switch target {
	case catalog.ProductStatusActive:
		return product.Activate()
	case catalog.ProductStatusInactive:
		return product.Deactivate()
	case catalog.ProductStatusArchived:
		return product.Archive()
	default:
		return shared.NewValidationError("Unknown product status: " + string(target))
	}
}

func withSellerID(filters map[string]interface{}, sellerID uuid.UUID) map[string]interface{} {
	merged := make(map[string]interface{}, len(filters)+1)
	for k, v := range filters {
		merged[k] = v
	}
	merged["seller_id"] = sellerID
	return merged
}
