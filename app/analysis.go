package app

import (
	"context"

	"github.com/stylesense/stylesense/domain"
)

// AnalysisService manages the authenticated user's outfit analyses.
type AnalysisService interface {
	// Analyze uploads an outfit photo and returns the generated feedback.
	Analyze(ctx context.Context, imagePath, occasion string) (domain.Analysis, error)

	// Get returns one analysis by ID.
	Get(ctx context.Context, id string) (domain.Analysis, error)

	// List returns a page of the user's analyses and the total count.
	List(ctx context.Context, limit, skip int) ([]domain.Analysis, int, error)

	// Delete removes an analysis.
	Delete(ctx context.Context, id string) error

	// TogglePublic publishes or unpublishes an analysis to the community feed.
	TogglePublic(ctx context.Context, id string, tags []string) error
}
