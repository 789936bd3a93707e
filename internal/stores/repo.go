package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error) {
	store := dto.ToModel()
	store.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByOwner returns the single store owned by the provided user.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "owner_id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// ListByOwnerIDs returns the stores owned by any of the provided users.
func (r *Repository) ListByOwnerIDs(ctx context.Context, ownerIDs []uuid.UUID) ([]models.Store, error) {
	if len(ownerIDs) == 0 {
		return []models.Store{}, nil
	}
	var stores []models.Store
	if err := r.db.WithContext(ctx).Where("owner_id IN ?", ownerIDs).Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Search returns stores matching the free-text filter, ordered by a stored
// column. Derived-field ordering (rating) happens in the service after
// aggregation, so callers pass created_at here in that case.
func (r *Repository) Search(ctx context.Context, search, orderColumn string, desc bool) ([]models.Store, error) {
	if !isStoreColumn(orderColumn) {
		return nil, fmt.Errorf("unsupported order column %q", orderColumn)
	}

	query := r.db.WithContext(ctx).Model(&models.Store{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s, id", orderColumn, direction))

	var stores []models.Store
	if err := query.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Count returns the total number of store rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func isStoreColumn(column string) bool {
	switch column {
	case "name", "email", "created_at":
		return true
	}
	return false
}
