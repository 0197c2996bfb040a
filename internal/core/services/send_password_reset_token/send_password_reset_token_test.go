package sendpasswordresettoken

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
	EMAIL     = "test@test.test"
	USERNAME  = "test-user"
	TOKEN_1   = "test-reset-token-1"
	TOKEN_2   = "test-reset-token-2"
	TOKEN_TTL = 30 * time.Minute
)

var NOW time.Time = time.Date(2022, 6, 15, 12, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	TokenRepo      *user.FakeResetTokenRepository
	Generator      *user.FakeResetTokenGenerator
	Sender         *user.FakePasswordResetTokenSender
	Service        services.Service[Input, Result]
}

func (s *testSuite) SetupTest() {
	s.Logger = logging.NewFakeLogger()
	s.UserRepository = user.NewFakeUserRepository()
	s.TokenRepo = user.NewFakeResetTokenRepository()
	s.Generator = user.NewFakeResetTokenGenerator(TOKEN_1, TOKEN_2)
	s.Sender = user.NewFakePasswordResetTokenSender()
	s.Service = NewWithResetTokenSending(
		s.Logger,
		s.Sender,
		New(
			s.Logger,
			s.UserRepository,
			s.TokenRepo,
			s.Generator,
			TOKEN_TTL,
			func() time.Time { return NOW },
		),
	)
}

func TestSendPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestTokenIssuedAndSent() {
	u := s.createUser()

	result, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	s.Nil(err)
	s.Equal(user.PasswordResetToken(TOKEN_1), result.Token.Token)
	s.Equal(u.ID, result.Token.UserID)
	s.True(result.Token.ExpiresAt.Equal(NOW.Add(TOKEN_TTL)))
	s.Equal(1, s.TokenRepo.TokenCount())
	s.Equal(1, s.Sender.SentCount())
	s.Equal(result.Token, s.Sender.Sent[0])
	s.Equal(u.ID, s.Sender.SentTo[0].ID)
}

func (s *testSuite) TestUserNotFoundIssuesNoToken() {
	s.createUser()

	_, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail("unknown@test.test")})

	s.ErrorIs(err, user.ErrUserDoesNotExist)
	s.Equal(0, s.TokenRepo.TokenCount())
	s.Equal(0, s.Sender.SentCount())
}

func (s *testSuite) TestRegeneratesTokenOnCollision() {
	u := s.createUser()
	_, err := s.TokenRepo.Create(context.Background(), user.CreateResetTokenInput{
		Token:     user.PasswordResetToken(TOKEN_1),
		UserID:    u.ID,
		ExpiresAt: NOW.Add(TOKEN_TTL),
		CreatedAt: NOW,
	})
	s.Nil(err)

	result, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	s.Nil(err)
	s.Equal(user.PasswordResetToken(TOKEN_2), result.Token.Token)
	s.Equal(2, s.TokenRepo.TokenCount())
}

func (s *testSuite) TestRepeatedRequestDoesNotInvalidatePriorTokens() {
	s.createUser()

	first, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	s.Nil(err)
	second, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	s.Nil(err)

	s.NotEqual(first.Token.Token, second.Token.Token)
	s.Equal(2, s.TokenRepo.TokenCount())

	_, err = s.TokenRepo.GetByToken(context.Background(), first.Token.Token)
	s.Nil(err)
}

func (s *testSuite) TestSendFailureDoesNotRollTokenBack() {
	s.createUser()
	s.Sender.ReturnError = true

	result, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	s.Nil(err)
	s.Equal(1, s.TokenRepo.TokenCount())
	_, err = s.TokenRepo.GetByToken(context.Background(), result.Token.Token)
	s.Nil(err)
	s.NotEmpty(s.Logger.LoggedWithLevel(logging.ERROR))
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			Username:     user.Username(USERNAME),
			PasswordHash: user.PasswordHash("test-password-hash"),
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}
