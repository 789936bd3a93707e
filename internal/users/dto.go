package users

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

// UserDTO is the transport shape of a user row. The password hash never
// leaves the repository layer.
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	Role      enums.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AdminUserView is one row of the admin user listing. storeRating is only
// populated for store_owner rows: "N/A" when the owner has no store or no
// ratings yet, the formatted average otherwise.
type AdminUserView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Address     string     `json:"address"`
	Role        enums.Role `json:"role"`
	StoreRating *string    `json:"storeRating"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         enums.Role
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Address:      c.Address,
		Role:         c.Role,
	}
}

// SortField names a user listing sort key. All of them are stored columns.
type SortField string

const (
	SortFieldName      SortField = "name"
	SortFieldEmail     SortField = "email"
	SortFieldRole      SortField = "role"
	SortFieldCreatedAt SortField = "created_at"
)

// Sort is a parsed sort directive.
type Sort struct {
	Field SortField
	Desc  bool
}

var DefaultSort = Sort{Field: SortFieldCreatedAt, Desc: true}

// ParseSort interprets a "field:asc|desc" query value.
func ParseSort(raw string) (Sort, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultSort, nil
	}

	parts := strings.SplitN(raw, ":", 2)
	field := SortField(strings.ToLower(strings.TrimSpace(parts[0])))
	switch field {
	case SortFieldName, SortFieldEmail, SortFieldRole, SortFieldCreatedAt:
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
