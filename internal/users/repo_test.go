package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	stmt := `
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
	require.NoError(t, db.Exec(stmt).Error)
	return db
}

func createTestUser(t *testing.T, repo *Repository, name, email string, role enums.Role) uuid.UUID {
	t.Helper()
	user, err := repo.Create(context.Background(), CreateUserDTO{
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		Address:      "12 Maple Street",
		Role:         role,
	})
	require.NoError(t, err)
	return user.ID
}

func TestCreateAndFind(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id := createTestUser(t, repo, "Margaret Atwood of Ontario Province", "margaret@example.com", enums.RoleAdmin)

	byID, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "margaret@example.com", byID.Email)
	assert.Equal(t, enums.RoleAdmin, byID.Role)

	byEmail, err := repo.FindByEmail(ctx, "margaret@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateDuplicateEmailFails(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	createTestUser(t, repo, "Margaret Atwood of Ontario Province", "margaret@example.com", enums.RoleNormal)
	_, err := repo.Create(context.Background(), CreateUserDTO{
		Name:         "Another Margaret Atwood Namesake",
		Email:        "margaret@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleNormal,
	})
	assert.Error(t, err)
}

func TestUpdatePasswordHash(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id := createTestUser(t, repo, "Margaret Atwood of Ontario Province", "margaret@example.com", enums.RoleNormal)

	require.NoError(t, repo.UpdatePasswordHash(ctx, id, "newhash"))

	user, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "newhash", user.PasswordHash)

	err = repo.UpdatePasswordHash(ctx, uuid.New(), "otherhash")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSearchFiltersAndSorts(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "Margaret Atwood of Ontario Province", "margaret@example.com", enums.RoleAdmin)
	createTestUser(t, repo, "Gregory House of Princeton Plains", "greg@example.com", enums.RoleStoreOwner)
	createTestUser(t, repo, "Jonathan Byers of Hawkins Lane", "jon@example.com", enums.RoleNormal)

	all, err := repo.Search(ctx, "", "", "email", false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "greg@example.com", all[0].Email)

	owners, err := repo.Search(ctx, "", enums.RoleStoreOwner, "created_at", true)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, "greg@example.com", owners[0].Email)

	matched, err := repo.Search(ctx, "PRINCETON", "", "name", false)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Gregory House of Princeton Plains", matched[0].Name)

	_, err = repo.Search(ctx, "", "", "password_hash", false)
	assert.Error(t, err)
}

func TestCount(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	createTestUser(t, repo, "Margaret Atwood of Ontario Province", "margaret@example.com", enums.RoleNormal)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
