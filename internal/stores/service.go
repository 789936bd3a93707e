package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"gorm.io/gorm"
)

const ownerUniqueConstraint = "stores_owner_id_key"

type storeRepository interface {
	Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error)
	Search(ctx context.Context, search, orderColumn string, desc bool) ([]models.Store, error)
	Count(ctx context.Context) (int64, error)
}

type ratingsRepository interface {
	ListForStores(ctx context.Context, storeIDs []uuid.UUID) ([]models.Rating, error)
	ListForStoreWithRaters(ctx context.Context, storeID uuid.UUID) ([]ratings.RaterRow, error)
	Count(ctx context.Context) (int64, error)
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// ListQuery captures the listing filters from the stores endpoint.
type ListQuery struct {
	Search string
	Sort   Sort
}

// CreateStoreInput captures the admin store-creation payload.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID *uuid.UUID
}

// Service exposes store operations.
type Service interface {
	List(ctx context.Context, callerID uuid.UUID, callerRole enums.Role, query ListQuery) ([]StoreView, error)
	Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error)
	Dashboard(ctx context.Context, ownerID uuid.UUID) (*DashboardDTO, error)
	Stats(ctx context.Context) (*StatsDTO, error)
}

type service struct {
	repo    storeRepository
	ratings ratingsRepository
	users   usersRepository
}

// NewService builds a store service with the provided repositories.
func NewService(repo storeRepository, ratingsRepo ratingsRepository, usersRepo usersRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if ratingsRepo == nil {
		return nil, fmt.Errorf("ratings repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, ratings: ratingsRepo, users: usersRepo}, nil
}

// List returns the role-projected store listing. Stored-column sorts are
// pushed to the database; rating sorts run in memory after aggregation.
func (s *service) List(ctx context.Context, callerID uuid.UUID, callerRole enums.Role, query ListQuery) ([]StoreView, error) {
	sortSpec := query.Sort
	if sortSpec.Field == "" {
		sortSpec = DefaultSort
	}

	orderColumn := string(sortSpec.Field)
	orderDesc := sortSpec.Desc
	sortInMemory := sortSpec.Field == SortFieldRating
	if sortInMemory {
		orderColumn = string(DefaultSort.Field)
		orderDesc = DefaultSort.Desc
	}

	storeRows, err := s.repo.Search(ctx, query.Search, orderColumn, orderDesc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search stores")
	}

	storeIDs := make([]uuid.UUID, 0, len(storeRows))
	for _, store := range storeRows {
		storeIDs = append(storeIDs, store.ID)
	}

	ratingRows, err := s.ratings.ListForStores(ctx, storeIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ratings")
	}

	valuesByStore := make(map[uuid.UUID][]int, len(storeRows))
	// Built once per request so myRating resolution stays O(1) per store.
	myRatingByStore := map[uuid.UUID]int{}
	for _, row := range ratingRows {
		valuesByStore[row.StoreID] = append(valuesByStore[row.StoreID], row.Value)
		if callerRole == enums.RoleNormal && row.UserID == callerID {
			myRatingByStore[row.StoreID] = row.Value
		}
	}

	views := make([]StoreView, 0, len(storeRows))
	for _, store := range storeRows {
		agg := ratings.Aggregate(valuesByStore[store.ID])

		var myRating *int
		if value, ok := myRatingByStore[store.ID]; ok {
			v := value
			myRating = &v
		}

		views = append(views, Project(store, agg, callerRole, myRating))
	}

	if sortInMemory {
		SortByRating(views, sortSpec.Desc)
	}

	return views, nil
}

// Create persists a new store. When an owner is supplied they must be an
// existing store_owner user without a store of their own yet.
func (s *service) Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	if input.OwnerID != nil {
		owner, err := s.users.FindByID(ctx, *input.OwnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner_id must reference an existing user")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load owner")
		}
		if owner.Role != enums.RoleStoreOwner {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner must have the store_owner role")
		}
	}

	store, err := s.repo.Create(ctx, CreateStoreDTO{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: input.OwnerID,
	})
	if err != nil {
		if pkgerrors.IsUniqueViolation(err, ownerUniqueConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "owner already has a store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}

	return FromModel(store), nil
}

// Dashboard returns the owner's store with its aggregate and rater list.
func (s *service) Dashboard(ctx context.Context, ownerID uuid.UUID) (*DashboardDTO, error) {
	store, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no store found for this owner")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	raterRows, err := s.ratings.ListForStoreWithRaters(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ratings")
	}

	values := make([]int, 0, len(raterRows))
	entries := make([]DashboardRating, 0, len(raterRows))
	for _, row := range raterRows {
		values = append(values, row.Value)
		entries = append(entries, DashboardRating{
			RaterName:  row.Name,
			RaterEmail: row.Email,
			Value:      row.Value,
			Date:       row.UpdatedAt,
		})
	}

	agg := ratings.Aggregate(values)

	return &DashboardDTO{
		StoreName:     store.Name,
		AverageRating: agg.Average,
		RatingCount:   agg.Count,
		Ratings:       entries,
	}, nil
}

// Stats returns the admin dashboard totals.
func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	storeCount, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stores")
	}
	ratingCount, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count ratings")
	}

	return &StatsDTO{
		Users:   userCount,
		Stores:  storeCount,
		Ratings: ratingCount,
	}, nil
}
