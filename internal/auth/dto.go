package auth

import (
	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
)

// SessionUser is the user payload returned alongside a freshly minted token.
type SessionUser struct {
	ID      uuid.UUID  `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Role    enums.Role `json:"role"`
	Address string     `json:"address"`
}

// SessionDTO is the login/signup response body.
type SessionDTO struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

func sessionUserFromModel(u *models.User) SessionUser {
	return SessionUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Address: u.Address,
	}
}
