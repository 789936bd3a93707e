package stores

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

// StoreDTO is the transport shape of a raw store row (admin create response).
type StoreDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	OwnerID   *uuid.UUID `json:"owner_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateStoreDTO holds the data required by the repo to persist a new store.
type CreateStoreDTO struct {
	Name    string
	Email   string
	Address string
	OwnerID *uuid.UUID
}

func (c CreateStoreDTO) ToModel() *models.Store {
	return &models.Store{
		Name:    c.Name,
		Email:   c.Email,
		Address: c.Address,
		OwnerID: c.OwnerID,
	}
}

func FromModel(s *models.Store) *StoreDTO {
	if s == nil {
		return nil
	}
	return &StoreDTO{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Address:   s.Address,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// DashboardRating is one rater's entry on the owner dashboard.
type DashboardRating struct {
	RaterName  string    `json:"raterName"`
	RaterEmail string    `json:"raterEmail"`
	Value      int       `json:"value"`
	Date       time.Time `json:"date"`
}

// DashboardDTO is the store owner's view of their store.
type DashboardDTO struct {
	StoreName     string            `json:"storeName"`
	AverageRating float64           `json:"averageRating"`
	RatingCount   int               `json:"ratingCount"`
	Ratings       []DashboardRating `json:"ratings"`
}

// StatsDTO carries the admin totals.
type StatsDTO struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Ratings int64 `json:"ratings"`
}

// SortField names a listing sort key.
type SortField string

const (
	SortFieldName      SortField = "name"
	SortFieldEmail     SortField = "email"
	SortFieldCreatedAt SortField = "created_at"
	SortFieldRating    SortField = "rating"
)

// Sort is a parsed sort directive.
type Sort struct {
	Field SortField
	Desc  bool
}

// DefaultSort matches the original listing behavior: newest stores first.
var DefaultSort = Sort{Field: SortFieldCreatedAt, Desc: true}

// ParseSort interprets a "field:asc|desc" query value. Empty input yields the
// default ordering; unknown fields or directions are a validation error.
func ParseSort(raw string) (Sort, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultSort, nil
	}

	parts := strings.SplitN(raw, ":", 2)
	field := SortField(strings.ToLower(strings.TrimSpace(parts[0])))
	switch field {
	case SortFieldName, SortFieldEmail, SortFieldCreatedAt, SortFieldRating:
	default:
		return Sort{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported sort field %q", parts[0]))
	}

	desc := false
	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
		case "desc":
			desc = true
		default:
			return Sort{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("sort direction must be asc or desc, got %q", parts[1]))
		}
	}

	return Sort{Field: field, Desc: desc}, nil
}
