package ports

import (
	"context"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
)

// AuthService covers registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	// Login returns a signed token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
