package ratings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRatingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'normal',
  created_at DATETIME,
  updated_at DATETIME
);`
	stores := `
CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  owner_id TEXT UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	ratings := `
CREATE TABLE IF NOT EXISTS ratings (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  value INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, store_id)
);`

	for _, stmt := range []string{users, stores, ratings} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO users (id, name, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id.String(), name, email, time.Now(), time.Now(),
	).Error)
	return id
}

func seedStore(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO stores (id, name, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id.String(), "Corner Shop", "corner@example.com", time.Now(), time.Now(),
	).Error)
	return id
}

func TestUpsertInsertsThenUpdatesInPlace(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db, "Jonathan Byers Hawkins Lane", "jon@example.com")
	storeID := seedStore(t, db)

	first, err := repo.Upsert(ctx, userID, storeID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Value)

	second, err := repo.Upsert(ctx, userID, storeID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Value)
	assert.Equal(t, first.ID, second.ID, "resubmission must keep the same row")

	var count int64
	require.NoError(t, db.Table("ratings").Count(&count).Error)
	assert.EqualValues(t, 1, count, "one row per (user, store) pair")
}

func TestUpsertSameValueIsIdempotent(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db, "Jonathan Byers Hawkins Lane", "jon@example.com")
	storeID := seedStore(t, db)

	_, err := repo.Upsert(ctx, userID, storeID, 4)
	require.NoError(t, err)
	again, err := repo.Upsert(ctx, userID, storeID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, again.Value)

	var count int64
	require.NoError(t, db.Table("ratings").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertDifferentPairsCreateSeparateRows(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice Henderson of Maple Street", "alice@example.com")
	bob := seedUser(t, db, "Robert Henderson of Maple Street", "bob@example.com")
	storeID := seedStore(t, db)

	_, err := repo.Upsert(ctx, alice, storeID, 5)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, bob, storeID, 2)
	require.NoError(t, err)

	rows, err := repo.ListForStores(ctx, []uuid.UUID{storeID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestListForStoresEmptyInput(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)

	rows, err := repo.ListForStores(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListForStoreWithRatersOrdersByUpdateTime(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice Henderson of Maple Street", "alice@example.com")
	bob := seedUser(t, db, "Robert Henderson of Maple Street", "bob@example.com")
	storeID := seedStore(t, db)

	_, err := repo.Upsert(ctx, alice, storeID, 5)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, bob, storeID, 2)
	require.NoError(t, err)

	// Bump alice's rating so hers is the most recently updated.
	require.NoError(t, db.Exec(
		`UPDATE ratings SET updated_at = ? WHERE user_id = ?`,
		time.Now().Add(time.Hour), alice.String(),
	).Error)

	rows, err := repo.ListForStoreWithRaters(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "alice@example.com", rows[0].Email)
	assert.Equal(t, 5, rows[0].Value)
	assert.Equal(t, "bob@example.com", rows[1].Email)
}

func TestCount(t *testing.T) {
	db := setupRatingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db, "Jonathan Byers Hawkins Lane", "jon@example.com")
	storeID := seedStore(t, db)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	_, err = repo.Upsert(ctx, userID, storeID, 1)
	require.NoError(t, err)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
