package ports

import (
	"context"

	"github.com/cliplink/affiliate-system/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
//
// The mutating operations rely on the store's per-document atomicity
// (increment / array-append primitives). They are not transactional as a
// group: a link insert followed by AppendLink can leave an unreferenced
// link if the process dies in between. That window is documented behaviour,
// not something the repository guards against.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// AppendLink atomically appends linkID to the user's link list.
	AppendLink(ctx context.Context, userID, linkID string) error

	// IncrementEntries atomically adds amount to the user's entries counter
	// and returns the updated record.
	IncrementEntries(ctx context.Context, userID string, amount int) (*domain.User, error)

	// AddXP atomically adds xp to the user's XP counter and returns the
	// updated record. Level recomputation is the caller's concern.
	AddXP(ctx context.Context, userID string, xp int) (*domain.User, error)

	// SetLevel persists a recomputed level.
	SetLevel(ctx context.Context, userID string, level int) error
}
