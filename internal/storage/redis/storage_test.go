package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/memoryxin/battlechess/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestCreateAndGetUser() {
	err := s.storage.CreateUser(s.ctx, model.NewAccount("alice", "pw"))
	s.Require().NoError(err)

	account, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", account.Name)
	s.Equal("pw", account.Passwd)
	s.Equal(model.DefaultTitle, account.Title)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestCreateUserDuplicate() {
	err := s.storage.CreateUser(s.ctx, model.NewAccount("alice", "pw"))
	s.Require().NoError(err)

	err = s.storage.CreateUser(s.ctx, model.NewAccount("alice", "other"))
	s.ErrorIs(err, model.ErrUserExists)

	// Original password untouched
	account, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("pw", account.Passwd)
}

func (s *StorageSuite) TestUpdateCredit() {
	err := s.storage.CreateUser(s.ctx, model.NewAccount("alice", "pw"))
	s.Require().NoError(err)

	err = s.storage.UpdateCredit(s.ctx, "alice", 1100, "小城主")
	s.Require().NoError(err)

	account, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1100, account.Credit)
	s.Equal("小城主", account.Title)
	s.Equal("pw", account.Passwd)
}

func (s *StorageSuite) TestUpdateCreditNotFound() {
	err := s.storage.UpdateCredit(s.ctx, "nonexistent", 100, "平民")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestCreditMayGoNegative() {
	err := s.storage.CreateUser(s.ctx, model.NewAccount("alice", "pw"))
	s.Require().NoError(err)

	err = s.storage.UpdateCredit(s.ctx, "alice", -40, "平民")
	s.Require().NoError(err)

	account, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(-40, account.Credit)
}
