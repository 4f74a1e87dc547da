package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForSeller finds a product by ID within a seller's catalog
func (r *GormProductRepository) FindByIDForSeller(ctx context.Context, sellerID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND id = ?", sellerID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySlug finds a product by its slug within a seller's catalog
func (r *GormProductRepository) FindBySlug(ctx context.Context, sellerID uuid.UUID, slug string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND slug = ?", sellerID, slug).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAllForSeller finds all products for a seller
func (r *GormProductRepository) FindAllForSeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}).Where("seller_id = ?", sellerID), filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByIDs finds multiple products by their IDs, preserving the order
// of ids. IDs without a matching product are skipped.
func (r *GormProductRepository) FindByIDs(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND id IN ?", sellerID, ids).
		Find(&products).Error; err != nil {
		return nil, err
	}

	// Re-sort into the caller's order; manual collection resolution
	// relies on member positions.
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]catalog.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// CountByIDs counts how many of ids exist for the seller
func (r *GormProductRepository) CountByIDs(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("seller_id = ? AND id IN ?", sellerID, ids).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByQuery finds products matching a compiled query. A limit of 0
// means no limit.
func (r *GormProductRepository) FindByQuery(ctx context.Context, query catalog.ProductQuery, limit int) ([]catalog.Product, error) {
	var products []catalog.Product
	q := r.applyQuery(r.db.WithContext(ctx).Model(&catalog.Product{}), query).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CountByQuery counts products matching a compiled query
func (r *GormProductRepository) CountByQuery(ctx context.Context, query catalog.ProductQuery) (int64, error) {
	var count int64
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&catalog.Product{}), query).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyQuery translates a compiled ProductQuery into SQL predicates.
// The translation must agree with catalog.ProductQuery.Matches.
func (r *GormProductRepository) applyQuery(q *gorm.DB, query catalog.ProductQuery) *gorm.DB {
	q = q.Where("seller_id = ? AND status = ?", query.SellerID, catalog.ProductStatusActive)

	for _, clause := range query.Clauses {
		switch clause.Kind {
		case catalog.ClauseTagContains:
			q = q.Where("EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE lower(tag) = lower(?))", clause.Text)
		case catalog.ClauseTagEquals:
			q = q.Where("? = ANY(tags)", clause.Text)
		case catalog.ClausePriceMin:
			q = q.Where("price > ?", clause.Min)
		case catalog.ClausePriceMax:
			q = q.Where("price < ?", clause.Max)
		case catalog.ClausePriceBetween:
			q = q.Where("price >= ? AND price <= ?", clause.Min, clause.Max)
		case catalog.ClauseTitleContains:
			q = q.Where("title ILIKE ?", "%"+clause.Text+"%")
		case catalog.ClauseInStock:
			q = q.Where("quantity > 0")
		case catalog.ClauseOutOfStock:
			q = q.Where("quantity = 0")
		case catalog.ClauseCategoryEquals:
			q = q.Where("category = ?", clause.Text)
		}
	}

	return q
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "seller_id":
			query = query.Where("seller_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "tag":
			query = query.Where("? = ANY(tags)", value)
		case "min_price":
			query = query.Where("price >= ?", value)
		case "max_price":
			query = query.Where("price <= ?", value)
		}
	}

	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
