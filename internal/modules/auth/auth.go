package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/lusakatech/rentiva-backend/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(tokenString string) (*Principal, error)
}

// Principal is the authenticated identity attached to a request.
// The booking state machine authorises transitions against its Role.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Role user.Role `json:"role"`
}
