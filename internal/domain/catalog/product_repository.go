package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// ProductRepository is the persistence contract for products.
//
// FindByQuery and CountByQuery execute a compiled ProductQuery against
// live catalog state. Their SQL translation must agree with
// ProductQuery.Matches; membership is never materialized or cached.
type ProductRepository interface {
	shared.SellerRepository[Product]

	// FindBySlug returns a seller's product by slug
	FindBySlug(ctx context.Context, sellerID uuid.UUID, slug string) (*Product, error)

	// FindByIDs returns the products among ids that exist for the seller,
	// preserving the order of ids. Missing IDs are skipped, not errors.
	FindByIDs(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// CountByIDs returns how many of ids exist for the seller. Manual
	// member lists may reference products deleted since they were added,
	// so live counts go through here rather than len() of the list.
	CountByIDs(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) (int64, error)

	// FindByQuery returns products matching the query. A limit of 0 means
	// no limit.
	FindByQuery(ctx context.Context, query ProductQuery, limit int) ([]Product, error)

	// CountByQuery returns the number of products matching the query
	CountByQuery(ctx context.Context, query ProductQuery) (int64, error)
}
