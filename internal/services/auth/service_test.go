package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoryxin/battlechess/internal/model"
	"github.com/memoryxin/battlechess/internal/storage/memory"
	"github.com/memoryxin/battlechess/internal/testutil"
)

func newTestService() *Service {
	return New(memory.New(), testutil.NopLogger())
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	user, err := s.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, 0, user.Credit)
	assert.Equal(t, model.DefaultTitle, user.Title)

	user, err = s.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, "alice", "nope")
	assert.ErrorIs(t, err, model.ErrWrongPassword)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	s := newTestService()
	_, err := s.Authenticate(context.Background(), "nobody", "pw")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestRegisterDuplicate(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, model.ErrUserExists)
}

func TestSaveResult(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	err = s.SaveResult(ctx, model.User{Name: "alice", Credit: 1100, Title: "小城主"})
	require.NoError(t, err)

	user, err := s.Lookup(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1100, user.Credit)
	assert.Equal(t, "小城主", user.Title)

	// Password survives result updates
	user, err = s.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, 1100, user.Credit)
}

func TestSaveResultUnknownUser(t *testing.T) {
	s := newTestService()
	err := s.SaveResult(context.Background(), model.User{Name: "nobody", Credit: 10})
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
