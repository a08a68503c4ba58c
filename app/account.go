package app

import (
	"context"

	"github.com/stylesense/stylesense/domain"
)

// AccountService provides information about the authenticated user.
type AccountService interface {
	// CurrentUser returns the signed-in user.
	CurrentUser(ctx context.Context) (domain.User, error)
}
