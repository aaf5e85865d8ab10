package storage

import (
	"context"

	"github.com/memoryxin/battlechess/internal/model"
)

// UserStore defines the interface for durable account persistence. It is the
// only state that survives a server restart; sessions, the wait queue and the
// match registry live in memory.
type UserStore interface {
	// GetUser returns the account for a name, or model.ErrUserNotFound
	GetUser(ctx context.Context, name string) (*model.Account, error)

	// CreateUser inserts a new account, or model.ErrUserExists if the name
	// is taken
	CreateUser(ctx context.Context, account *model.Account) error

	// UpdateCredit persists a client-reported game result for an existing
	// account, or model.ErrUserNotFound
	UpdateCredit(ctx context.Context, name string, credit int, title string) error
}
