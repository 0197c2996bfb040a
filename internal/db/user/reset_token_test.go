package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	c "userapi/internal/core/domain/common"
	"userapi/internal/core/domain/user"
	"userapi/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const RESET_TOKEN = "test-reset-token"

type resetTokenTestSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	userRepo  *PgxUserRepository
	tokenRepo *PgxResetTokenRepository
}

func (suite *resetTokenTestSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.userRepo = NewPgxRepository(suite.pool)
	suite.tokenRepo = NewPgxResetTokenRepository(suite.pool)
}

func (suite *resetTokenTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *resetTokenTestSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxResetTokenRepository(t *testing.T) {
	suite.Run(t, new(resetTokenTestSuite))
}

func (s *resetTokenTestSuite) TestCreateAndGet() {
	u := s.createUser()

	expiresAt := NOW.Add(30 * time.Minute)
	created, err := s.tokenRepo.Create(context.Background(), user.CreateResetTokenInput{
		Token:     user.PasswordResetToken(RESET_TOKEN),
		UserID:    u.ID,
		ExpiresAt: expiresAt,
		CreatedAt: NOW,
	})
	s.Nil(err)
	s.Equal(user.PasswordResetToken(RESET_TOKEN), created.Token)
	s.Equal(u.ID, created.UserID)
	s.True(created.ExpiresAt.Equal(expiresAt))

	got, err := s.tokenRepo.GetByToken(context.Background(), user.PasswordResetToken(RESET_TOKEN))
	s.Nil(err)
	s.Equal(created.Token, got.Token)
	s.Equal(created.UserID, got.UserID)
	s.True(created.ExpiresAt.Equal(got.ExpiresAt))
}

func (s *resetTokenTestSuite) TestCreateDuplicateToken() {
	u := s.createUser()
	s.createToken(u.ID)

	_, err := s.tokenRepo.Create(context.Background(), user.CreateResetTokenInput{
		Token:     user.PasswordResetToken(RESET_TOKEN),
		UserID:    u.ID,
		ExpiresAt: NOW.Add(30 * time.Minute),
		CreatedAt: NOW,
	})
	s.True(errors.Is(err, user.ErrResetTokenAlreadyExists))
}

func (s *resetTokenTestSuite) TestGetUnknownToken() {
	_, err := s.tokenRepo.GetByToken(context.Background(), user.PasswordResetToken("unknown-token"))
	s.True(errors.Is(err, user.ErrResetTokenDoesNotExist))
}

func (s *resetTokenTestSuite) TestDeleteByTokenConsumesRow() {
	u := s.createUser()
	s.createToken(u.ID)

	deleted, err := s.tokenRepo.DeleteByToken(context.Background(), user.PasswordResetToken(RESET_TOKEN))
	s.Nil(err)
	s.Equal(u.ID, deleted.UserID)

	_, err = s.tokenRepo.GetByToken(context.Background(), user.PasswordResetToken(RESET_TOKEN))
	s.True(errors.Is(err, user.ErrResetTokenDoesNotExist))

	_, err = s.tokenRepo.DeleteByToken(context.Background(), user.PasswordResetToken(RESET_TOKEN))
	s.True(errors.Is(err, user.ErrResetTokenDoesNotExist))
}

func (s *resetTokenTestSuite) TestConcurrentDeleteSingleWinner() {
	u := s.createUser()
	s.createToken(u.ID)

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(ix int) {
			defer wg.Done()
			_, errs[ix] = s.tokenRepo.DeleteByToken(
				context.Background(),
				user.PasswordResetToken(RESET_TOKEN),
			)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.True(errors.Is(err, user.ErrResetTokenDoesNotExist))
		}
	}
	s.Equal(1, succeeded)
}

func (s *resetTokenTestSuite) createUser() user.User {
	s.T().Helper()
	u, err := s.userRepo.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			Username:     user.Username(USERNAME),
			PasswordHash: user.PasswordHash(PASSWORD_HASH),
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		s.FailNowf("could not create user", "err: %v", err)
	}
	return u
}

func (s *resetTokenTestSuite) createToken(userID user.ID) user.ResetToken {
	s.T().Helper()
	t, err := s.tokenRepo.Create(context.Background(), user.CreateResetTokenInput{
		Token:     user.PasswordResetToken(RESET_TOKEN),
		UserID:    userID,
		ExpiresAt: NOW.Add(30 * time.Minute),
		CreatedAt: NOW,
	})
	if err != nil {
		s.FailNowf("could not create reset token", "err: %v", err)
	}
	return t
}
