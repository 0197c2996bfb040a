package uow

import (
	"context"
	"errors"
	"testing"
	"time"
	c "userapi/internal/core/domain/common"
	"userapi/internal/core/domain/user"
	"userapi/internal/db"
	dbuser "userapi/internal/db/user"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	USERNAME      = "test-user"
	PASSWORD_HASH = "test-password-hash"
	RESET_TOKEN   = "test-reset-token"
)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.uow = NewPgxUnitOfWork(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCommittedChangesAreVisible() {
	userID := s.createUser()
	ctx := context.Background()

	uow, err := s.uow.Begin(ctx)
	s.Nil(err)
	defer uow.Rollback(ctx)

	_, err = uow.ResetTokens().Create(ctx, user.CreateResetTokenInput{
		Token:     user.PasswordResetToken(RESET_TOKEN),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	})
	s.Nil(err)
	s.Nil(uow.Commit(ctx))

	tokenRepo := dbuser.NewPgxResetTokenRepository(s.pool)
	t, err := tokenRepo.GetByToken(ctx, user.PasswordResetToken(RESET_TOKEN))
	s.Nil(err)
	s.Equal(userID, t.UserID)
}

func (s *testSuite) TestRolledBackChangesAreNotVisible() {
	userID := s.createUser()
	ctx := context.Background()

	uow, err := s.uow.Begin(ctx)
	s.Nil(err)

	newPassword := user.PasswordHash("new-password-hash")
	s.Nil(uow.Users().SetPassword(ctx, userID, newPassword))

	_, err = uow.ResetTokens().DeleteByToken(ctx, user.PasswordResetToken(RESET_TOKEN))
	s.True(errors.Is(err, user.ErrResetTokenDoesNotExist))

	s.Nil(uow.Rollback(ctx))

	userRepo := dbuser.NewPgxRepository(s.pool)
	u, err := userRepo.GetByID(ctx, userID)
	s.Nil(err)
	s.Equal(user.PasswordHash(PASSWORD_HASH), u.PasswordHash)
}

func (s *testSuite) createUser() user.ID {
	s.T().Helper()

	repo := dbuser.NewPgxRepository(s.pool)
	u, err := repo.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail(EMAIL),
		Username:     user.Username(USERNAME),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		s.FailNowf("could not create user", "err: %v", err)
	}
	return u.ID
}
