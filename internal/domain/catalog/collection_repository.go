package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// CollectionRepository is the persistence contract for collections
type CollectionRepository interface {
	shared.SellerRepository[Collection]

	// FindBySlug returns a seller's collection by slug
	FindBySlug(ctx context.Context, sellerID uuid.UUID, slug string) (*Collection, error)

	// CountForSeller returns the number of collections matching the filter
	// for the given seller
	CountForSeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (int64, error)
}
