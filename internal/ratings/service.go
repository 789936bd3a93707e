package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"gorm.io/gorm"
)

const (
	// MinValue and MaxValue bound an acceptable star rating.
	MinValue = 1
	MaxValue = 5
)

type ratingRepository interface {
	Upsert(ctx context.Context, userID, storeID uuid.UUID, value int) (*models.Rating, error)
}

type storeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes the rating submission workflow.
type Service interface {
	Submit(ctx context.Context, userID, storeID uuid.UUID, value int) (*RatingDTO, error)
}

type service struct {
	repo   ratingRepository
	stores storeFinder
}

// NewService builds a rating service with the provided repositories.
func NewService(repo ratingRepository, stores storeFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rating repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, stores: stores}, nil
}

// Submit stores the caller's rating for a store, overwriting any prior value.
// The route guard has already established the caller holds the normal role.
func (s *service) Submit(ctx context.Context, userID, storeID uuid.UUID, value int) (*RatingDTO, error) {
	if value < MinValue || value > MaxValue {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	rating, err := s.repo.Upsert(ctx, userID, storeID, value)
	if err != nil {
		if pkgerrors.IsUniqueViolation(err, "") {
			// The upsert targets the natural key, so any surviving unique
			// violation means the constraint set changed underneath us.
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "rating already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store rating")
	}

	return FromModel(rating), nil
}
