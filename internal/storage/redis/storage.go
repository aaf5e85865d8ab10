package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/memoryxin/battlechess/internal/model"
	"github.com/memoryxin/battlechess/internal/storage"
)

// Key prefix for all account data
const keyPrefix = "bchess"

// userKey returns the Redis key for an account
func userKey(name string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, name)
}

// Storage is a Redis-backed implementation of the user store, for deployments
// that already run Redis and do not want a database file on disk
type Storage struct {
	client *redis.Client
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.UserStore = (*Storage)(nil)

func (s *Storage) GetUser(ctx context.Context, name string) (*model.Account, error) {
	data, err := s.client.Get(ctx, userKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) CreateUser(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	// SETNX keeps the name a primary key
	created, err := s.client.SetNX(ctx, userKey(account.Name), data, 0).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrUserExists
	}
	return nil
}

func (s *Storage) UpdateCredit(ctx context.Context, name string, credit int, title string) error {
	account, err := s.GetUser(ctx, name)
	if err != nil {
		return err
	}

	account.Credit = credit
	account.Title = title

	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(name), data, 0).Err()
}
