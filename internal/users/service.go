package users

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"github.com/ratewise/ratewise-backend/pkg/security"
)

const emailUniqueConstraint = "users_email_key"

// unratedStoreRating is what admins see for owners without a rated store.
const unratedStoreRating = "N/A"

type userRepository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	Search(ctx context.Context, search string, role enums.Role, orderColumn string, desc bool) ([]models.User, error)
}

type storeLister interface {
	ListByOwnerIDs(ctx context.Context, ownerIDs []uuid.UUID) ([]models.Store, error)
}

type ratingLister interface {
	ListForStores(ctx context.Context, storeIDs []uuid.UUID) ([]models.Rating, error)
}

// ListQuery captures the admin user-listing filters.
type ListQuery struct {
	Search string
	Role   enums.Role
	Sort   Sort
}

// CreateUserInput captures the admin user-creation payload.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     enums.Role
}

// Service exposes admin user operations.
type Service interface {
	List(ctx context.Context, query ListQuery) ([]AdminUserView, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
}

type service struct {
	repo        userRepository
	stores      storeLister
	ratings     ratingLister
	passwordCfg config.PasswordConfig
}

// NewService builds a user service with the provided collaborators.
func NewService(repo userRepository, stores storeLister, ratingsRepo ratingLister, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if ratingsRepo == nil {
		return nil, fmt.Errorf("ratings repository required")
	}
	return &service{repo: repo, stores: stores, ratings: ratingsRepo, passwordCfg: passwordCfg}, nil
}

// List returns users matching the query. Every store_owner row is annotated
// with their store's average rating string.
func (s *service) List(ctx context.Context, query ListQuery) ([]AdminUserView, error) {
	if query.Role != "" && !query.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", query.Role))
	}

	sortSpec := query.Sort
	if sortSpec.Field == "" {
		sortSpec = DefaultSort
	}

	rows, err := s.repo.Search(ctx, query.Search, query.Role, string(sortSpec.Field), sortSpec.Desc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search users")
	}

	ratingByOwner, err := s.ownerRatings(ctx, rows)
	if err != nil {
		return nil, err
	}

	views := make([]AdminUserView, 0, len(rows))
	for _, row := range rows {
		view := AdminUserView{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Address:   row.Address,
			Role:      row.Role,
			CreatedAt: row.CreatedAt,
		}
		if row.Role == enums.RoleStoreOwner {
			label := unratedStoreRating
			if formatted, ok := ratingByOwner[row.ID]; ok {
				label = formatted
			}
			view.StoreRating = &label
		}
		views = append(views, view)
	}
	return views, nil
}

// ownerRatings resolves owner id -> formatted average for the store_owner
// rows in the listing. Owners without a store or without ratings are absent
// from the result.
func (s *service) ownerRatings(ctx context.Context, rows []models.User) (map[uuid.UUID]string, error) {
	ownerIDs := make([]uuid.UUID, 0)
	for _, row := range rows {
		if row.Role == enums.RoleStoreOwner {
			ownerIDs = append(ownerIDs, row.ID)
		}
	}
	if len(ownerIDs) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	ownedStores, err := s.stores.ListByOwnerIDs(ctx, ownerIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load owned stores")
	}

	storeIDs := make([]uuid.UUID, 0, len(ownedStores))
	ownerByStore := make(map[uuid.UUID]uuid.UUID, len(ownedStores))
	for _, store := range ownedStores {
		if store.OwnerID == nil {
			continue
		}
		storeIDs = append(storeIDs, store.ID)
		ownerByStore[store.ID] = *store.OwnerID
	}

	ratingRows, err := s.ratings.ListForStores(ctx, storeIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ratings")
	}

	valuesByStore := make(map[uuid.UUID][]int, len(storeIDs))
	for _, row := range ratingRows {
		valuesByStore[row.StoreID] = append(valuesByStore[row.StoreID], row.Value)
	}

	result := make(map[uuid.UUID]string, len(ownerByStore))
	for storeID, ownerID := range ownerByStore {
		values := valuesByStore[storeID]
		if len(values) == 0 {
			continue
		}
		agg := ratings.Aggregate(values)
		result[ownerID] = strconv.FormatFloat(agg.Average, 'f', 1, 64)
	}
	return result, nil
}

// Create persists a new user with an explicit role. Name and address bounds
// are checked at the request boundary; the password policy and role live here
// so every creation path shares them.
func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", input.Role))
	}
	if ok, reason := security.ValidatePasswordPolicy(input.Password); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, reason)
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
		Role:         input.Role,
	})
	if err != nil {
		if pkgerrors.IsUniqueViolation(err, emailUniqueConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	return FromModel(user), nil
}
