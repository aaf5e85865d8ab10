package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoryxin/battlechess/internal/model"
)

func openTestStore(t *testing.T) (*Storage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpenSeedsDemoAccounts(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"xinxin", "memory"} {
		account, err := s.GetUser(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "2333", account.Passwd)
		assert.Equal(t, 1095, account.Credit)
		assert.Equal(t, "小城主", account.Title)
	}
}

func TestCreateAndGetUser(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, model.NewAccount("alice", "pw")))

	account, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "pw", account.Passwd)
	assert.Equal(t, 0, account.Credit)
	assert.Equal(t, model.DefaultTitle, account.Title)
}

func TestGetUserNotFound(t *testing.T) {
	s, _ := openTestStore(t)
	_, err := s.GetUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestCreateUserDuplicate(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, model.NewAccount("alice", "pw")))
	err := s.CreateUser(ctx, model.NewAccount("alice", "other"))
	assert.ErrorIs(t, err, model.ErrUserExists)
}

func TestUpdateCredit(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateCredit(ctx, "xinxin", 1200, "小城主"))

	account, err := s.GetUser(ctx, "xinxin")
	require.NoError(t, err)
	assert.Equal(t, 1200, account.Credit)
}

func TestUpdateCreditNotFound(t *testing.T) {
	s, _ := openTestStore(t)
	err := s.UpdateCredit(context.Background(), "nobody", 100, "平民")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.CreateUser(ctx, model.NewAccount("alice", "pw")))
	require.NoError(t, s.UpdateCredit(ctx, "alice", -40, "平民"))
	require.NoError(t, s.Close())

	// Second open must not reseed or lose data
	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	account, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, -40, account.Credit)
}
