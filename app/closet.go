package app

import (
	"context"

	"github.com/stylesense/stylesense/domain"
)

// ClosetService manages the virtual closet.
type ClosetService interface {
	List(ctx context.Context) ([]domain.ClosetItem, error)
	Add(ctx context.Context, item domain.ClosetItem) (domain.ClosetItem, error)
	Update(ctx context.Context, item domain.ClosetItem) (domain.ClosetItem, error)
	Delete(ctx context.Context, id string) error
}
