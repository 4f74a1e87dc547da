package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// DefaultPreviewSampleLimit caps the product sample returned by preview
// endpoints. The accompanying total is always the uncapped match count.
const DefaultPreviewSampleLimit = 50

// CollectionService handles collection management and resolution.
//
// Membership is resolved against live catalog state on every read:
// product counts and previews are computed at call time, never stored.
type CollectionService struct {
	collectionRepo catalog.CollectionRepository
	productRepo    catalog.ProductRepository
	previewLimit   int
}

// NewCollectionService creates a new CollectionService. A non-positive
// previewLimit falls back to DefaultPreviewSampleLimit.
func NewCollectionService(
	collectionRepo catalog.CollectionRepository,
	productRepo catalog.ProductRepository,
	previewLimit int,
) *CollectionService {
	if previewLimit <= 0 {
		previewLimit = DefaultPreviewSampleLimit
	}
	return &CollectionService{
		collectionRepo: collectionRepo,
		productRepo:    productRepo,
		previewLimit:   previewLimit,
	}
}

// Create creates a new collection. Supplying product IDs for a smart
// collection or rules for a manual one is rejected as a type mismatch
// rather than silently dropped.
func (s *CollectionService) Create(ctx context.Context, sellerID uuid.UUID, req CreateCollectionRequest) (*CollectionResponse, error) {
	collection, err := catalog.NewCollection(sellerID, req.Name, catalog.CollectionType(req.Type))
	if err != nil {
		return nil, err
	}

	if req.Slug != "" {
		collection.SetSlug(req.Slug)
	}
	if req.Description != "" {
		collection.SetDescription(req.Description)
	}
	if req.SortOrder != "" {
		if err := collection.SetSortOrder(catalog.CollectionSortOrder(req.SortOrder)); err != nil {
			return nil, err
		}
	}

	if len(req.ProductIDs) > 0 {
		if err := collection.SetManualMembers(req.ProductIDs); err != nil {
			return nil, err
		}
	}
	if len(req.Rules) > 0 {
		if err := collection.SetRules(ToConditions(req.Rules)); err != nil {
			return nil, err
		}
	}

	collection.SEOTitle = req.SEOTitle
	collection.SEODescription = req.SEODescription
	if req.IsFeatured != nil {
		collection.IsFeatured = *req.IsFeatured
	}

	if req.Publish {
		if err := collection.Publish(); err != nil {
			return nil, err
		}
	}

	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, collection)
}

// GetByID retrieves a collection with its live product count
func (s *CollectionService) GetByID(ctx context.Context, sellerID, collectionID uuid.UUID) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByIDForSeller(ctx, sellerID, collectionID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, collection)
}

// GetBySlug retrieves a collection by slug with its live product count
func (s *CollectionService) GetBySlug(ctx context.Context, sellerID uuid.UUID, slug string) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindBySlug(ctx, sellerID, slug)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, collection)
}

// List retrieves collections with live product counts
func (s *CollectionService) List(ctx context.Context, sellerID uuid.UUID, filter CollectionListFilter) ([]CollectionListResponse, int64, error) {
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

	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.IsDraft != nil {
		domainFilter.Filters["is_draft"] = *filter.IsDraft
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}
	if filter.IsFeatured != nil {
		domainFilter.Filters["is_featured"] = *filter.IsFeatured
	}

	collections, err := s.collectionRepo.FindAllForSeller(ctx, sellerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.collectionRepo.CountForSeller(ctx, sellerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CollectionListResponse, len(collections))
	for i := range collections {
		count, err := s.resolveProductCount(ctx, &collections[i])
		if err != nil {
			return nil, 0, err
		}
		responses[i] = ToCollectionListResponse(&collections[i], count)
	}

	return responses, total, nil
}

// Update applies a partial update. The type change, when present, is
// applied before members and rules so that a single request can switch
// the type and supply the new representation.
func (s *CollectionService) Update(ctx context.Context, sellerID, collectionID uuid.UUID, req UpdateCollectionRequest) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByIDForSeller(ctx, sellerID, collectionID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if err := collection.SetType(catalog.CollectionType(*req.Type)); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		if err := collection.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Slug != nil {
		collection.SetSlug(*req.Slug)
	}
	if req.Description != nil {
		collection.SetDescription(*req.Description)
	}
	if req.SortOrder != nil {
		if err := collection.SetSortOrder(catalog.CollectionSortOrder(*req.SortOrder)); err != nil {
			return nil, err
		}
	}
	if req.ProductIDs != nil {
		if err := collection.SetManualMembers(*req.ProductIDs); err != nil {
			return nil, err
		}
	}
	if req.Rules != nil {
		if err := collection.SetRules(ToConditions(*req.Rules)); err != nil {
			return nil, err
		}
	}

	if req.SEOTitle != nil {
		collection.SEOTitle = *req.SEOTitle
	}
	if req.SEODescription != nil {
		collection.SEODescription = *req.SEODescription
	}
	if req.ShowOnStorefront != nil {
		collection.ShowOnStorefront = *req.ShowOnStorefront
	}
	if req.ShowOnMobile != nil {
		collection.ShowOnMobile = *req.ShowOnMobile
	}
	if req.IsActive != nil {
		collection.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		collection.IsFeatured = *req.IsFeatured
	}
	if req.IsTrending != nil {
		collection.IsTrending = *req.IsTrending
	}
	if req.IsSeasonal != nil {
		collection.IsSeasonal = *req.IsSeasonal
	}
	if req.IsSale != nil {
		collection.IsSale = *req.IsSale
	}
	if req.HomepagePlacement != nil {
		collection.HomepagePlacement = *req.HomepagePlacement
	}
	if req.PlacementPriority != nil {
		collection.PlacementPriority = *req.PlacementPriority
	}

	// Draft transitions go through the publish gate
	if req.IsDraft != nil {
		if *req.IsDraft {
			collection.Unpublish()
		} else if err := collection.Publish(); err != nil {
			return nil, err
		}
	}

	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, collection)
}

// Delete removes a collection
func (s *CollectionService) Delete(ctx context.Context, sellerID, collectionID uuid.UUID) error {
	collection, err := s.collectionRepo.FindByIDForSeller(ctx, sellerID, collectionID)
	if err != nil {
		return err
	}
	return s.collectionRepo.Delete(ctx, collection.ID)
}

// Publish transitions a collection out of draft state
func (s *CollectionService) Publish(ctx context.Context, sellerID, collectionID uuid.UUID) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByIDForSeller(ctx, sellerID, collectionID)
	if err != nil {
		return nil, err
	}

	if err := collection.Publish(); err != nil {
		return nil, err
	}
	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, collection)
}

// Unpublish returns a collection to draft state
func (s *CollectionService) Unpublish(ctx context.Context, sellerID, collectionID uuid.UUID) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByIDForSeller(ctx, sellerID, collectionID)
	if err != nil {
		return nil, err
	}

	collection.Unpublish()
	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, collection)
}

// AddProduct adds a product to a manual collection. The product must
// exist in the seller's catalog; adding an existing member is a no-op
// reported through Changed.
func (s *CollectionService) AddProduct(ctx context.Context, sellerID, collectionID, productID uuid.UUID) (*MembershipChangeResponse, error) {
	collection, err := s.collectionRepo.FindByIDForSeller(ctx, sellerID, collectionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByIDForSeller(ctx, sellerID, productID); err != nil {
		return nil, err
	}

	added, err := collection.AddMember(productID)
	if err != nil {
		return nil, err
	}

	if added {
		if err := s.collectionRepo.Save(ctx, collection); err != nil {
			return nil, err
		}
	}

	count, err := s.resolveProductCount(ctx, collection)
	if err != nil {
		return nil, err
	}

	return &MembershipChangeResponse{Changed: added, ProductCount: count}, nil
}

// RemoveProduct removes a product from a manual collection. Removing an
// absent member is a no-op reported through Changed.
func (s *CollectionService) RemoveProduct(ctx context.Context, sellerID, collectionID, productID uuid.UUID) (*MembershipChangeResponse, error) {
	collection, err := s.collectionRepo.FindByIDForSeller(ctx, sellerID, collectionID)
	if err != nil {
		return nil, err
	}

	removed, err := collection.RemoveMember(productID)
	if err != nil {
		return nil, err
	}

	if removed {
		if err := s.collectionRepo.Save(ctx, collection); err != nil {
			return nil, err
		}
	}

	count, err := s.resolveProductCount(ctx, collection)
	if err != nil {
		return nil, err
	}

	return &MembershipChangeResponse{Changed: removed, ProductCount: count}, nil
}

// ReorderProducts replaces the member ordering of a manual collection
func (s *CollectionService) ReorderProducts(ctx context.Context, sellerID, collectionID uuid.UUID, productIDs []uuid.UUID) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByIDForSeller(ctx, sellerID, collectionID)
	if err != nil {
		return nil, err
	}

	if err := collection.ReorderMembers(productIDs); err != nil {
		return nil, err
	}
	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, collection)
}

// ListProducts resolves a collection's current members against the live
// catalog. Manual collections return existing members in list order;
// smart collections evaluate their rules at call time.
func (s *CollectionService) ListProducts(ctx context.Context, sellerID, collectionID uuid.UUID) ([]ProductListResponse, int64, error) {
	collection, err := s.collectionRepo.FindByIDForSeller(ctx, sellerID, collectionID)
	if err != nil {
		return nil, 0, err
	}

	if collection.IsManual() {
		products, err := s.productRepo.FindByIDs(ctx, sellerID, collection.ManualMembers)
		if err != nil {
			return nil, 0, err
		}
		return ToProductListResponses(products), int64(len(products)), nil
	}

	query := catalog.CompileRules(sellerID, collection.Rules)
	products, err := s.productRepo.FindByQuery(ctx, query, 0)
	if err != nil {
		return nil, 0, err
	}
	return ToProductListResponses(products), int64(len(products)), nil
}

// PreviewCollection previews an existing collection's rule set. An
// override rule list, when supplied, is evaluated instead of the stored
// rules without persisting anything. Previewing a manual collection
// without an override is a type mismatch.
func (s *CollectionService) PreviewCollection(ctx context.Context, sellerID, collectionID uuid.UUID, overrideRules []ConditionRequest) (*CollectionPreviewResponse, error) {
	collection, err := s.collectionRepo.FindByIDForSeller(ctx, sellerID, collectionID)
	if err != nil {
		return nil, err
	}

	if len(overrideRules) > 0 {
		return s.preview(ctx, sellerID, ToConditions(overrideRules))
	}

	if !collection.IsSmart() {
		return nil, shared.NewTypeMismatchError("Only a smart collection can be previewed")
	}

	return s.preview(ctx, sellerID, collection.Rules)
}

// PreviewRules previews an arbitrary rule set without persisting it,
// so sellers can see matches while still composing rules.
func (s *CollectionService) PreviewRules(ctx context.Context, sellerID uuid.UUID, req PreviewRulesRequest) (*CollectionPreviewResponse, error) {
	return s.preview(ctx, sellerID, ToConditions(req.Rules))
}

func (s *CollectionService) preview(ctx context.Context, sellerID uuid.UUID, rules []catalog.Condition) (*CollectionPreviewResponse, error) {
	query := catalog.CompileRules(sellerID, rules)

	products, err := s.productRepo.FindByQuery(ctx, query, s.previewLimit)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.CountByQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	return &CollectionPreviewResponse{
		Products:    ToProductListResponses(products),
		Total:       total,
		SampleLimit: s.previewLimit,
	}, nil
}

// resolveProductCount computes the live membership count. Manual lists
// count only members that still exist; smart counts run the compiled
// query.
func (s *CollectionService) resolveProductCount(ctx context.Context, c *catalog.Collection) (int64, error) {
	if c.IsManual() {
		if len(c.ManualMembers) == 0 {
			return 0, nil
		}
		return s.productRepo.CountByIDs(ctx, c.SellerID, c.ManualMembers)
	}

	query := catalog.CompileRules(c.SellerID, c.Rules)
	return s.productRepo.CountByQuery(ctx, query)
}

func (s *CollectionService) toResponse(ctx context.Context, c *catalog.Collection) (*CollectionResponse, error) {
	count, err := s.resolveProductCount(ctx, c)
	if err != nil {
		return nil, err
	}
	response := ToCollectionResponse(c, count)
	return &response, nil
}
