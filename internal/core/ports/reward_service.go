package ports

import (
	"context"

	"github.com/cliplink/affiliate-system/internal/core/domain"
)

// GenerateLinkInput carries all data for the admin link-minting operation.
type GenerateLinkInput struct {
	// ActingRole is the role of the authenticated caller, taken from the
	// freshly resolved user record, never from token claims.
	ActingRole     string
	VideoID        string
	DestinationURL string
	TargetUserID   string
}

// CreditEntriesInput carries all data for the admin entry-credit operation.
type CreditEntriesInput struct {
	ActingRole   string
	TargetUserID string
	Amount       int
}

// TrackClickInput identifies a single click on an affiliate link.
type TrackClickInput struct {
	LinkID string
	// ClientAddr is used only to suppress repeat counting of the same
	// client within the dedup window.
	ClientAddr string
}

// DashboardResult is a user's own record with its link list resolved.
type DashboardResult struct {
	User  *domain.User
	Links []*domain.AffiliateLink
}

// RewardService groups the link-minting, entry-credit and dashboard
// operations plus the click tracking redirect lookup.
type RewardService interface {
	GenerateLink(ctx context.Context, input GenerateLinkInput) (*domain.AffiliateLink, error)
	CreditEntries(ctx context.Context, input CreditEntriesInput) (*domain.User, error)
	Dashboard(ctx context.Context, userID string) (*DashboardResult, error)

	// TrackClick records a click and returns the destination URL to
	// redirect to. Duplicate clicks within the dedup window still redirect
	// but are not counted.
	TrackClick(ctx context.Context, input TrackClickInput) (string, error)
}
