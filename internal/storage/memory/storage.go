package memory

import (
	"context"
	"sync"

	"github.com/memoryxin/battlechess/internal/model"
	"github.com/memoryxin/battlechess/internal/storage"
)

// Storage is an in-memory implementation of the user store, used in tests
// and for throwaway servers
type Storage struct {
	mu       sync.RWMutex
	accounts map[string]*model.Account
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: make(map[string]*model.Account),
	}
}

// Ensure Storage implements the interface
var _ storage.UserStore = (*Storage)(nil)

func (s *Storage) GetUser(ctx context.Context, name string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[name]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *Storage) CreateUser(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.Name]; ok {
		return model.ErrUserExists
	}
	copied := *account
	s.accounts[account.Name] = &copied
	return nil
}

func (s *Storage) UpdateCredit(ctx context.Context, name string, credit int, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[name]
	if !ok {
		return model.ErrUserNotFound
	}
	account.Credit = credit
	account.Title = title
	return nil
}
