//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/brandkit-api/internal/platform/postgres"
	"github.com/phrazzld/brandkit-api/internal/store"
	"github.com/phrazzld/brandkit-api/internal/store/storetest"
	"github.com/phrazzld/brandkit-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresKitStore_Conformance(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	storetest.Run(t, func(t *testing.T) store.KitStore {
		return postgres.NewPostgresKitStore(db, nil)
	})
}

func TestPostgresKitStore_WithinTransaction(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	kit := storetest.NewKit()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := postgres.NewPostgresKitStore(tx, nil)
		require.NoError(t, s.Put(context.Background(), kit))

		got, err := s.Get(context.Background(), kit.ID)
		require.NoError(t, err)
		storetest.AssertSameKit(t, kit, got)
	})

	// The transaction was rolled back.
	_, err := postgres.NewPostgresKitStore(db, nil).Get(context.Background(), kit.ID)
	assert.ErrorIs(t, err, store.ErrKitNotFound)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	require.NoError(t, postgres.Migrate(context.Background(), db, nil))
}
