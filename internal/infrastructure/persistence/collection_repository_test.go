package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// newMockCollectionRepository creates a GormCollectionRepository with a mocked SQL connection
func newMockCollectionRepository(t *testing.T) (*GormCollectionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCollectionRepository(gormDB), mock, mockDB
}

func collectionRows(collectionID, sellerID uuid.UUID, collectionType string, members, rules []byte) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "seller_id", "name", "slug", "type", "manual_members", "rules", "sort_order", "is_draft"}).
		AddRow(collectionID, sellerID, "Winter Picks", "winter-picks", collectionType, members, rules, "manual", true)
}

func TestGormCollectionRepository_FindByIDForSeller(t *testing.T) {
	t.Run("hydrates jsonb member list", func(t *testing.T) {
		repo, mock, mockDB := newMockCollectionRepository(t)
		defer mockDB.Close()

		collectionID := uuid.New()
		sellerID := uuid.New()
		memberID := uuid.New()
		members := []byte(`["` + memberID.String() + `"]`)

		mock.ExpectQuery(`SELECT \* FROM "collections" WHERE seller_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(sellerID, collectionID, 1).
			WillReturnRows(collectionRows(collectionID, sellerID, "manual", members, []byte(`[]`)))

		collection, err := repo.FindByIDForSeller(context.Background(), sellerID, collectionID)

		require.NoError(t, err)
		assert.Equal(t, catalog.CollectionTypeManual, collection.Type)
		require.Len(t, collection.ManualMembers, 1)
		assert.Equal(t, memberID, collection.ManualMembers[0])
		assert.Empty(t, collection.Rules)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hydrates jsonb rule set", func(t *testing.T) {
		repo, mock, mockDB := newMockCollectionRepository(t)
		defer mockDB.Close()

		collectionID := uuid.New()
		sellerID := uuid.New()
		rules := []byte(`[{"type":"price","operator":"less_than","value":"50"}]`)

		mock.ExpectQuery(`SELECT \* FROM "collections" WHERE seller_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(sellerID, collectionID, 1).
			WillReturnRows(collectionRows(collectionID, sellerID, "smart", []byte(`[]`), rules))

		collection, err := repo.FindByIDForSeller(context.Background(), sellerID, collectionID)

		require.NoError(t, err)
		assert.Equal(t, catalog.CollectionTypeSmart, collection.Type)
		require.Len(t, collection.Rules, 1)
		assert.Equal(t, catalog.ConditionTypePrice, collection.Rules[0].Type)
		assert.Equal(t, "50", collection.Rules[0].Value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign seller's collection is not found", func(t *testing.T) {
		repo, mock, mockDB := newMockCollectionRepository(t)
		defer mockDB.Close()

		collectionID := uuid.New()
		sellerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "collections" WHERE seller_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(sellerID, collectionID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		collection, err := repo.FindByIDForSeller(context.Background(), sellerID, collectionID)

		assert.Nil(t, collection)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCollectionRepository_CountForSeller(t *testing.T) {
	t.Run("applies type filter", func(t *testing.T) {
		repo, mock, mockDB := newMockCollectionRepository(t)
		defer mockDB.Close()

		sellerID := uuid.New()
		filter := shared.DefaultFilter()
		filter.Filters["type"] = "smart"

		mock.ExpectQuery(`SELECT count\(\*\) FROM "collections" WHERE seller_id = \$1 AND type = \$2`).
			WithArgs(sellerID, "smart").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.CountForSeller(context.Background(), sellerID, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCollectionRepository_Delete(t *testing.T) {
	t.Run("maps zero rows affected to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockCollectionRepository(t)
		defer mockDB.Close()

		collectionID := uuid.New()

		mock.ExpectExec(`DELETE FROM "collections" WHERE id = \$1`).
			WithArgs(collectionID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), collectionID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
