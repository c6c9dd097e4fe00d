package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultClickTTL = time.Hour

// ClickDedup suppresses repeat counting of the same client on the same link.
// Key format: click:<link_id>:<client_addr>
type ClickDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClickDedup creates a ClickDedup wrapping the given Redis client.
// A non-positive ttl falls back to defaultClickTTL.
func NewClickDedup(client *redis.Client, ttl time.Duration) *ClickDedup {
	if ttl <= 0 {
		ttl = defaultClickTTL
	}
	return &ClickDedup{client: client, ttl: ttl}
}

// Seen marks the client/link pair and reports whether it had already been
// marked inside the TTL window. SETNX makes mark-and-check a single atomic
// round trip.
func (d *ClickDedup) Seen(ctx context.Context, linkID, clientAddr string) (bool, error) {
	set, err := d.client.SetNX(ctx, d.key(linkID, clientAddr), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("click dedup: %w", err)
	}
	return !set, nil
}

func (d *ClickDedup) key(linkID, clientAddr string) string {
	return fmt.Sprintf("click:%s:%s", linkID, clientAddr)
}
