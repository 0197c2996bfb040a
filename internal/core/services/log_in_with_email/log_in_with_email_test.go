package loginwithemail

import (
	"context"
	"testing"
	"time"
	c "userapi/internal/core/domain/common"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	USERNAME      = "test-user"
	PASSWORD      = "test-password"
	SESSION_TOKEN = "test-session-token"
)

var NOW time.Time = time.Date(2022, 6, 15, 12, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	UserRepository    *user.FakeUserRepository
	SessionRepository *user.FakeSessionRepository
	Hasher            *user.FakePasswordHasher
	Service           services.Service[Input, Result]
}

func (s *testSuite) SetupTest() {
	s.Logger = logging.NewFakeLogger()
	s.UserRepository = user.NewFakeUserRepository()
	s.SessionRepository = user.NewFakeSessionRepository(s.UserRepository)
	s.Hasher = user.NewFakePasswordHasher()
	s.Service = New(
		s.Logger,
		s.UserRepository,
		s.SessionRepository,
		s.Hasher,
		user.NewFakeSessionTokenGenerator(SESSION_TOKEN),
		func() time.Time { return NOW },
	)
}

func TestLogInWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUser()

	result, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Password: user.RawPassword(PASSWORD)},
	)

	s.Nil(err)
	s.Equal(user.SessionToken(SESSION_TOKEN), result.Token)

	sessionUser, err := s.SessionRepository.GetUserByToken(context.Background(), result.Token)
	s.Nil(err)
	s.Equal(u.ID, sessionUser.ID)
	s.True(sessionUser.LastLoginAt.IsPresent)
	s.True(sessionUser.LastLoginAt.Value.Equal(NOW))
}

func (s *testSuite) TestInvalidPassword() {
	s.createUser()

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Password: user.RawPassword("invalid-password")},
	)

	s.ErrorIs(err, user.ErrInvalidCredentials)
}

func (s *testSuite) TestUnknownEmailLooksLikeInvalidCredentials() {
	s.createUser()

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail("unknown@test.test"), Password: user.RawPassword(PASSWORD)},
	)

	s.ErrorIs(err, user.ErrInvalidCredentials)
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	hash, err := s.Hasher.HashPassword(user.RawPassword(PASSWORD))
	if err != nil {
		s.FailNow(err.Error())
	}
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			Username:     user.Username(USERNAME),
			PasswordHash: hash,
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}
