// Package auth implements account operations on top of the user store:
// signin checks, signup, and persisting client-reported game results.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/memoryxin/battlechess/internal/model"
	"github.com/memoryxin/battlechess/internal/storage"
)

// Service handles account authentication and updates
type Service struct {
	storage storage.UserStore
	logger  *slog.Logger
}

// New creates a new auth service
func New(storage storage.UserStore, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Authenticate checks a name/password pair against the store. The password
// comparison is plain equality; the protocol carries it in the clear and the
// store keeps it that way. Returns model.ErrUserNotFound or
// model.ErrWrongPassword on mismatch.
func (s *Service) Authenticate(ctx context.Context, name, passwd string) (*model.User, error) {
	account, err := s.storage.GetUser(ctx, name)
	if err != nil {
		return nil, err
	}
	if account.Passwd != passwd {
		return nil, model.ErrWrongPassword
	}
	user := account.User()
	return &user, nil
}

// Register creates a fresh account with zero credit and the lowest title.
// Returns model.ErrUserExists if the name is taken.
func (s *Service) Register(ctx context.Context, name, passwd string) (*model.User, error) {
	account := model.NewAccount(name, passwd)
	if err := s.storage.CreateUser(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("registered new user", slog.String("name", name))
	user := account.User()
	return &user, nil
}

// Lookup returns the public record for a name
func (s *Service) Lookup(ctx context.Context, name string) (*model.User, error) {
	account, err := s.storage.GetUser(ctx, name)
	if err != nil {
		return nil, err
	}
	user := account.User()
	return &user, nil
}

// SaveResult persists a client-computed end-of-game record. The credit and
// title are stored verbatim; the server does not validate the delta.
func (s *Service) SaveResult(ctx context.Context, user model.User) error {
	if err := s.storage.UpdateCredit(ctx, user.Name, user.Credit, user.Title); err != nil {
		return fmt.Errorf("save result for %s: %w", user.Name, err)
	}
	return nil
}
