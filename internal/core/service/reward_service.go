package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/cliplink/affiliate-system/internal/core/domain"
	"github.com/cliplink/affiliate-system/internal/core/ports"
)

// xpPerClick is the XP credited to a link's owner for one counted click.
const xpPerClick = 1

// ClickDeduper abstracts the repeat-click suppression store (Redis).
// Seen atomically marks a client/link pair and reports whether it had
// already been marked inside the dedup window.
type ClickDeduper interface {
	Seen(ctx context.Context, linkID, clientAddr string) (bool, error)
}

type rewardService struct {
	users ports.UserRepository
	links ports.LinkRepository
	dedup ClickDeduper
	log   zerolog.Logger
}

// NewRewardService returns a RewardService implementation.
func NewRewardService(users ports.UserRepository, links ports.LinkRepository, dedup ClickDeduper, log zerolog.Logger) ports.RewardService {
	return &rewardService{users: users, links: links, dedup: dedup, log: log}
}

// GenerateLink mints an affiliate link for the target user and appends its
// ID to the owner's link list. The two writes are individually atomic but
// not transactional as a pair; a crash in between leaves an unreferenced
// link, which is an accepted inconsistency window.
func (s *rewardService) GenerateLink(ctx context.Context, input ports.GenerateLinkInput) (*domain.AffiliateLink, error) {
	if input.ActingRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.VideoID == "" {
		return nil, fmt.Errorf("%w: video_id is required", domain.ErrValidation)
	}
	if !validDestination(input.DestinationURL) {
		return nil, fmt.Errorf("%w: destination_url must be an absolute URL", domain.ErrValidation)
	}

	owner, err := s.users.FindByID(ctx, input.TargetUserID)
	if err != nil {
		return nil, err
	}

	link, err := s.links.Create(ctx, &domain.AffiliateLink{
		OwnerID:        owner.ID,
		VideoID:        input.VideoID,
		DestinationURL: input.DestinationURL,
	})
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", owner.ID).Msg("failed to create link")
		return nil, err
	}

	if err := s.users.AppendLink(ctx, owner.ID, link.ID); err != nil {
		s.log.Error().Err(err).Str("link_id", link.ID).Str("owner_id", owner.ID).Msg("failed to append link to owner")
		return nil, err
	}

	s.log.Info().Str("link_id", link.ID).Str("owner_id", owner.ID).Str("video_id", link.VideoID).Msg("link generated")
	return link, nil
}

// CreditEntries adds a positive amount to the target user's entries counter.
func (s *rewardService) CreditEntries(ctx context.Context, input ports.CreditEntriesInput) (*domain.User, error) {
	if input.ActingRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive integer", domain.ErrValidation)
	}

	user, err := s.users.IncrementEntries(ctx, input.TargetUserID, input.Amount)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Int("amount", input.Amount).Int("entries", user.Entries).Msg("entries credited")
	return user, nil
}

// Dashboard returns the caller's own record with its link list resolved.
func (s *rewardService) Dashboard(ctx context.Context, userID string) (*ports.DashboardResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	links, err := s.links.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardResult{User: user, Links: links}, nil
}

// TrackClick resolves the link's destination and counts the click. Repeat
// clicks from the same client inside the dedup window still redirect but do
// not bump counters or XP.
func (s *rewardService) TrackClick(ctx context.Context, input ports.TrackClickInput) (string, error) {
	link, err := s.links.FindByID(ctx, input.LinkID)
	if err != nil {
		return "", err
	}

	seen, err := s.dedup.Seen(ctx, link.ID, input.ClientAddr)
	if err != nil {
		s.log.Warn().Err(err).Str("link_id", link.ID).Msg("click dedup check failed, counting anyway")
	} else if seen {
		s.log.Debug().Str("link_id", link.ID).Str("client", input.ClientAddr).Msg("duplicate click skipped")
		return link.DestinationURL, nil
	}

	if _, err := s.links.IncrementClicks(ctx, link.ID); err != nil {
		// The visitor still gets their redirect; the lost count is logged.
		s.log.Error().Err(err).Str("link_id", link.ID).Msg("failed to increment clicks")
		return link.DestinationURL, nil
	}

	s.creditClickXP(ctx, link.OwnerID)

	return link.DestinationURL, nil
}

// creditClickXP awards click XP to the owner and recomputes the level.
// Failures here are non-fatal for the redirect.
func (s *rewardService) creditClickXP(ctx context.Context, ownerID string) {
	owner, err := s.users.AddXP(ctx, ownerID, xpPerClick)
	if err != nil {
		s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("failed to credit click XP")
		return
	}

	if lvl := domain.LevelForXP(owner.XP); lvl != owner.Level {
		if err := s.users.SetLevel(ctx, owner.ID, lvl); err != nil {
			s.log.Warn().Err(err).Str("owner_id", ownerID).Int("level", lvl).Msg("failed to persist level")
			return
		}
		s.log.Info().Str("owner_id", ownerID).Int("level", lvl).Msg("user levelled up")
	}
}

func validDestination(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
