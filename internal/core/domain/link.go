package domain

import (
	"errors"
	"time"
)

var ErrLinkNotFound = errors.New("link not found")

// AffiliateLink pairs an external video with a destination URL on behalf of
// its owner. Links are minted by admins and immutable afterwards except for
// the click counter.
type AffiliateLink struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	VideoID        string    `json:"video_id"`
	DestinationURL string    `json:"destination_url"`
	Clicks         int       `json:"clicks"`
	CreatedAt      time.Time `json:"created_at"`
}
