package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// MockCollectionRepository is a mock implementation of CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindByIDForSeller(ctx context.Context, sellerID, id uuid.UUID) (*catalog.Collection, error) {
	args := m.Called(ctx, sellerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindBySlug(ctx context.Context, sellerID uuid.UUID, slug string) (*catalog.Collection, error) {
	args := m.Called(ctx, sellerID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Collection, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindAllForSeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]catalog.Collection, error) {
	args := m.Called(ctx, sellerID, filter)
	return args.Get(0).([]catalog.Collection), args.Error(1)
}

func (m *MockCollectionRepository) Save(ctx context.Context, collection *catalog.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCollectionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollectionRepository) CountForSeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, sellerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForSeller(ctx context.Context, sellerID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, sellerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, sellerID uuid.UUID, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, sellerID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForSeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, sellerID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, sellerID, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountByIDs(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, sellerID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindByQuery(ctx context.Context, query catalog.ProductQuery, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountByQuery(ctx context.Context, query catalog.ProductQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newService(collectionRepo *MockCollectionRepository, productRepo *MockProductRepository) *CollectionService {
	return NewCollectionService(collectionRepo, productRepo, 0)
}

func domainErrorCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	return domainErr.Code
}

func TestCollectionServiceCreate(t *testing.T) {
	sellerID := uuid.New()
	ctx := context.Background()

	t.Run("creates manual collection with members and live count", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		memberID := uuid.New()
		collectionRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Collection")).Return(nil)
		productRepo.On("CountByIDs", ctx, sellerID, mock.Anything).Return(int64(1), nil)

		response, err := service.Create(ctx, sellerID, CreateCollectionRequest{
			Name:       "Winter Picks",
			Type:       "manual",
			ProductIDs: []uuid.UUID{memberID},
		})
		require.NoError(t, err)

		assert.Equal(t, "manual", response.Type)
		assert.Equal(t, []uuid.UUID{memberID}, response.ProductIDs)
		assert.Equal(t, int64(1), response.ProductCount)
		assert.True(t, response.IsDraft)
		collectionRepo.AssertExpectations(t)
	})

	t.Run("creates smart collection and counts by query", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collectionRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Collection")).Return(nil)
		productRepo.On("CountByQuery", ctx, mock.AnythingOfType("catalog.ProductQuery")).Return(int64(7), nil)

		response, err := service.Create(ctx, sellerID, CreateCollectionRequest{
			Name: "Under Fifty",
			Type: "smart",
			Rules: []ConditionRequest{
				{Type: "price", Operator: "less_than", Value: "50"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "smart", response.Type)
		assert.Equal(t, int64(7), response.ProductCount)
		require.Len(t, response.Rules, 1)
	})

	t.Run("rejects members on a smart collection", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		_, err := service.Create(ctx, sellerID, CreateCollectionRequest{
			Name:       "Under Fifty",
			Type:       "smart",
			ProductIDs: []uuid.UUID{uuid.New()},
		})
		assert.Equal(t, "TYPE_MISMATCH", domainErrorCode(t, err))
		collectionRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects rules on a manual collection", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		_, err := service.Create(ctx, sellerID, CreateCollectionRequest{
			Name:  "Winter Picks",
			Type:  "manual",
			Rules: []ConditionRequest{{Type: "stock", Operator: "in_stock"}},
		})
		assert.Equal(t, "TYPE_MISMATCH", domainErrorCode(t, err))
	})

	t.Run("create with publish runs the gate", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		_, err := service.Create(ctx, sellerID, CreateCollectionRequest{
			Name:    "Winter Picks",
			Type:    "manual",
			Publish: true,
		})
		assert.Equal(t, "VALIDATION_ERROR", domainErrorCode(t, err))
		collectionRepo.AssertNotCalled(t, "Save")
	})
}

func TestCollectionServiceMembership(t *testing.T) {
	sellerID := uuid.New()
	ctx := context.Background()

	newStoredManual := func(t *testing.T, members ...uuid.UUID) *catalog.Collection {
		collection, err := catalog.NewCollection(sellerID, "Winter Picks", catalog.CollectionTypeManual)
		require.NoError(t, err)
		if len(members) > 0 {
			require.NoError(t, collection.SetManualMembers(members))
		}
		collection.ClearDomainEvents()
		return collection
	}

	t.Run("add product verifies catalog membership first", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collection := newStoredManual(t)
		productID := uuid.New()

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		productRepo.On("FindByIDForSeller", ctx, sellerID, productID).Return(nil, shared.ErrNotFound)

		_, err := service.AddProduct(ctx, sellerID, collection.ID, productID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		collectionRepo.AssertNotCalled(t, "Save")
	})

	t.Run("add product saves and returns live count", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collection := newStoredManual(t)
		product, err := catalog.NewProduct(sellerID, "Wool Sweater", decimal.NewFromInt(49))
		require.NoError(t, err)

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		productRepo.On("FindByIDForSeller", ctx, sellerID, product.ID).Return(product, nil)
		collectionRepo.On("Save", ctx, collection).Return(nil)
		productRepo.On("CountByIDs", ctx, sellerID, mock.Anything).Return(int64(1), nil)

		response, err := service.AddProduct(ctx, sellerID, collection.ID, product.ID)
		require.NoError(t, err)
		assert.True(t, response.Changed)
		assert.Equal(t, int64(1), response.ProductCount)
		collectionRepo.AssertExpectations(t)
	})

	t.Run("idempotent add skips the save", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		productID := uuid.New()
		collection := newStoredManual(t, productID)
		product, err := catalog.NewProduct(sellerID, "Wool Sweater", decimal.NewFromInt(49))
		require.NoError(t, err)

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		productRepo.On("FindByIDForSeller", ctx, sellerID, productID).Return(product, nil)
		productRepo.On("CountByIDs", ctx, sellerID, mock.Anything).Return(int64(1), nil)

		response, err := service.AddProduct(ctx, sellerID, collection.ID, productID)
		require.NoError(t, err)
		assert.False(t, response.Changed)
		collectionRepo.AssertNotCalled(t, "Save")
	})

	t.Run("removing an absent member skips the save", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collection := newStoredManual(t, uuid.New())

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		productRepo.On("CountByIDs", ctx, sellerID, mock.Anything).Return(int64(1), nil)

		response, err := service.RemoveProduct(ctx, sellerID, collection.ID, uuid.New())
		require.NoError(t, err)
		assert.False(t, response.Changed)
		collectionRepo.AssertNotCalled(t, "Save")
	})

	t.Run("reorder persists the permutation", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		a, b := uuid.New(), uuid.New()
		collection := newStoredManual(t, a, b)

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		collectionRepo.On("Save", ctx, collection).Return(nil)
		productRepo.On("CountByIDs", ctx, sellerID, mock.Anything).Return(int64(2), nil)

		response, err := service.ReorderProducts(ctx, sellerID, collection.ID, []uuid.UUID{b, a})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{b, a}, response.ProductIDs)
	})

	t.Run("count reflects live catalog, not list length", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		// Two members on the list; one product since deleted
		collection := newStoredManual(t, uuid.New(), uuid.New())

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		productRepo.On("CountByIDs", ctx, sellerID, mock.Anything).Return(int64(1), nil)

		response, err := service.GetByID(ctx, sellerID, collection.ID)
		require.NoError(t, err)
		assert.Len(t, response.ProductIDs, 2)
		assert.Equal(t, int64(1), response.ProductCount)
	})
}

func TestCollectionServicePreview(t *testing.T) {
	sellerID := uuid.New()
	ctx := context.Background()

	t.Run("preview caps the sample and reports the true total", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		sample := make([]catalog.Product, DefaultPreviewSampleLimit)
		for i := range sample {
			product, err := catalog.NewProduct(sellerID, "Wool Sweater", decimal.NewFromInt(49))
			require.NoError(t, err)
			sample[i] = *product
		}

		productRepo.On("FindByQuery", ctx, mock.AnythingOfType("catalog.ProductQuery"), DefaultPreviewSampleLimit).Return(sample, nil)
		productRepo.On("CountByQuery", ctx, mock.AnythingOfType("catalog.ProductQuery")).Return(int64(312), nil)

		response, err := service.PreviewRules(ctx, sellerID, PreviewRulesRequest{
			Rules: []ConditionRequest{{Type: "stock", Operator: "in_stock"}},
		})
		require.NoError(t, err)

		assert.Len(t, response.Products, DefaultPreviewSampleLimit)
		assert.Equal(t, int64(312), response.Total)
		assert.Equal(t, DefaultPreviewSampleLimit, response.SampleLimit)
	})

	t.Run("previewing a manual collection is a type mismatch", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collection, err := catalog.NewCollection(sellerID, "Winter Picks", catalog.CollectionTypeManual)
		require.NoError(t, err)

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)

		_, err = service.PreviewCollection(ctx, sellerID, collection.ID, nil)
		assert.Equal(t, "TYPE_MISMATCH", domainErrorCode(t, err))
		productRepo.AssertNotCalled(t, "FindByQuery")
	})

	t.Run("previewing a smart collection uses its stored rules", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collection, err := catalog.NewCollection(sellerID, "Under Fifty", catalog.CollectionTypeSmart)
		require.NoError(t, err)
		require.NoError(t, collection.SetRules([]catalog.Condition{
			{Type: catalog.ConditionTypePrice, Operator: catalog.OperatorLessThan, Value: "50"},
		}))

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		productRepo.On("FindByQuery", ctx, mock.MatchedBy(func(q catalog.ProductQuery) bool {
			return len(q.Clauses) == 1 && q.Clauses[0].Kind == catalog.ClausePriceMax
		}), DefaultPreviewSampleLimit).Return([]catalog.Product{}, nil)
		productRepo.On("CountByQuery", ctx, mock.Anything).Return(int64(0), nil)

		response, err := service.PreviewCollection(ctx, sellerID, collection.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), response.Total)
		assert.Empty(t, response.Products)
	})

	t.Run("override rules are evaluated instead of the stored rules", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collection, err := catalog.NewCollection(sellerID, "Under Fifty", catalog.CollectionTypeSmart)
		require.NoError(t, err)
		require.NoError(t, collection.SetRules([]catalog.Condition{
			{Type: catalog.ConditionTypePrice, Operator: catalog.OperatorLessThan, Value: "50"},
		}))

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		productRepo.On("FindByQuery", ctx, mock.MatchedBy(func(q catalog.ProductQuery) bool {
			return len(q.Clauses) == 1 && q.Clauses[0].Kind == catalog.ClauseInStock
		}), DefaultPreviewSampleLimit).Return([]catalog.Product{}, nil)
		productRepo.On("CountByQuery", ctx, mock.Anything).Return(int64(4), nil)

		response, err := service.PreviewCollection(ctx, sellerID, collection.ID, []ConditionRequest{
			{Type: "stock", Operator: "in_stock"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), response.Total)
		assert.Equal(t, "50", collection.Rules[0].Value, "stored rules must survive an override preview")
	})

	t.Run("override preview works on a manual collection", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collection, err := catalog.NewCollection(sellerID, "Winter Picks", catalog.CollectionTypeManual)
		require.NoError(t, err)

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		productRepo.On("FindByQuery", ctx, mock.Anything, DefaultPreviewSampleLimit).Return([]catalog.Product{}, nil)
		productRepo.On("CountByQuery", ctx, mock.Anything).Return(int64(0), nil)

		_, err = service.PreviewCollection(ctx, sellerID, collection.ID, []ConditionRequest{
			{Type: "tag", Operator: "equals", Value: "winter"},
		})
		require.NoError(t, err)
	})
}

func TestCollectionServiceListProducts(t *testing.T) {
	sellerID := uuid.New()
	ctx := context.Background()

	t.Run("manual resolution preserves member order and drops stale IDs", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		first, err := catalog.NewProduct(sellerID, "First", decimal.NewFromInt(10))
		require.NoError(t, err)
		second, err := catalog.NewProduct(sellerID, "Second", decimal.NewFromInt(20))
		require.NoError(t, err)
		staleID := uuid.New()

		collection, err := catalog.NewCollection(sellerID, "Winter Picks", catalog.CollectionTypeManual)
		require.NoError(t, err)
		require.NoError(t, collection.SetManualMembers([]uuid.UUID{first.ID, staleID, second.ID}))

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		productRepo.On("FindByIDs", ctx, sellerID, []uuid.UUID(collection.ManualMembers)).
			Return([]catalog.Product{*first, *second}, nil)

		products, total, err := service.ListProducts(ctx, sellerID, collection.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, products, 2)
		assert.Equal(t, "First", products[0].Title)
		assert.Equal(t, "Second", products[1].Title)
	})

	t.Run("smart resolution evaluates rules at call time", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collection, err := catalog.NewCollection(sellerID, "In Stock", catalog.CollectionTypeSmart)
		require.NoError(t, err)
		require.NoError(t, collection.SetRules([]catalog.Condition{
			{Type: catalog.ConditionTypeStock, Operator: catalog.OperatorInStock},
		}))

		match, err := catalog.NewProduct(sellerID, "Wool Sweater", decimal.NewFromInt(49))
		require.NoError(t, err)

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		productRepo.On("FindByQuery", ctx, mock.AnythingOfType("catalog.ProductQuery"), 0).
			Return([]catalog.Product{*match}, nil)

		products, total, err := service.ListProducts(ctx, sellerID, collection.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
	})
}

func TestCollectionServiceUpdate(t *testing.T) {
	sellerID := uuid.New()
	ctx := context.Background()

	t.Run("type switch with new rules in one request", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collection, err := catalog.NewCollection(sellerID, "Winter Picks", catalog.CollectionTypeManual)
		require.NoError(t, err)
		require.NoError(t, collection.SetManualMembers([]uuid.UUID{uuid.New()}))

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)
		collectionRepo.On("Save", ctx, collection).Return(nil)
		productRepo.On("CountByQuery", ctx, mock.Anything).Return(int64(3), nil)

		smart := "smart"
		rules := []ConditionRequest{{Type: "stock", Operator: "in_stock"}}
		response, err := service.Update(ctx, sellerID, collection.ID, UpdateCollectionRequest{
			Type:  &smart,
			Rules: &rules,
		})
		require.NoError(t, err)

		assert.Equal(t, "smart", response.Type)
		assert.Empty(t, response.ProductIDs)
		require.Len(t, response.Rules, 1)
		assert.Equal(t, int64(3), response.ProductCount)
	})

	t.Run("not found passes through unwrapped", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collectionID := uuid.New()
		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collectionID).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, sellerID, collectionID, UpdateCollectionRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("publishing through update runs the gate", func(t *testing.T) {
		collectionRepo := new(MockCollectionRepository)
		productRepo := new(MockProductRepository)
		service := newService(collectionRepo, productRepo)

		collection, err := catalog.NewCollection(sellerID, "Winter Picks", catalog.CollectionTypeManual)
		require.NoError(t, err)

		collectionRepo.On("FindByIDForSeller", ctx, sellerID, collection.ID).Return(collection, nil)

		notDraft := false
		_, err = service.Update(ctx, sellerID, collection.ID, UpdateCollectionRequest{IsDraft: &notDraft})
		assert.Equal(t, "VALIDATION_ERROR", domainErrorCode(t, err))
		collectionRepo.AssertNotCalled(t, "Save")
	})
}
