package ratings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles rating persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to rating operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert atomically inserts or updates the rating keyed by (user_id, store_id).
// The uniqueness constraint lives in the database; there is no select-then-branch.
func (r *Repository) Upsert(ctx context.Context, userID, storeID uuid.UUID, value int) (*models.Rating, error) {
	rating := &models.Rating{
		ID:      uuid.New(),
		UserID:  userID,
		StoreID: storeID,
		Value:   value,
	}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"value":      value,
					"updated_at": time.Now().UTC(),
				}),
			},
			clause.Returning{},
		).
		Create(rating).Error
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// ListForStores returns every rating row belonging to the provided stores.
func (r *Repository) ListForStores(ctx context.Context, storeIDs []uuid.UUID) ([]models.Rating, error) {
	if len(storeIDs) == 0 {
		return []models.Rating{}, nil
	}
	var rows []models.Rating
	if err := r.db.WithContext(ctx).Where("store_id IN ?", storeIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RaterRow is a rating joined with the submitting user's profile.
type RaterRow struct {
	Name      string
	Email     string
	Value     int
	UpdatedAt time.Time
}

// ListForStoreWithRaters returns the store's ratings with rater details,
// newest update first, id as a tiebreaker for deterministic ordering.
func (r *Repository) ListForStoreWithRaters(ctx context.Context, storeID uuid.UUID) ([]RaterRow, error) {
	var rows []RaterRow
	err := r.db.WithContext(ctx).
		Table("ratings").
		Select("users.name AS name, users.email AS email, ratings.value AS value, ratings.updated_at AS updated_at").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.updated_at DESC, ratings.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the total number of rating rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
