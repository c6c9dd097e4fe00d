package ports

import (
	"context"

	"github.com/cliplink/affiliate-system/internal/core/domain"
)

// LinkRepository defines persistence operations for affiliate links.
type LinkRepository interface {
	Create(ctx context.Context, link *domain.AffiliateLink) (*domain.AffiliateLink, error)
	FindByID(ctx context.Context, id string) (*domain.AffiliateLink, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.AffiliateLink, error)

	// IncrementClicks atomically bumps the click counter and returns the
	// updated link.
	IncrementClicks(ctx context.Context, id string) (*domain.AffiliateLink, error)
}
