package changepassword

import (
	"context"
	"testing"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"

	"github.com/stretchr/testify/require"
)

const USER_ID = 123

type suite struct {
	log      *logging.FakeLogger
	userRepo *user.FakeUserRepository
	hasher   *user.FakePasswordHasher
}

func setupSuite() *suite {
	userRepo := user.NewFakeUserRepository()
	userRepo.Users = []user.User{{ID: USER_ID}}
	return &suite{
		log:      logging.NewFakeLogger(),
		userRepo: userRepo,
		hasher:   user.NewFakePasswordHasher(),
	}
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.userRepo, s.hasher)
}

func TestPasswordSuccessfullyChanged(t *testing.T) {
	cases := []struct {
		id                      string
		currentPassswordInDB    string
		currentPassswordInInput string
		newPasswordInInput      string
	}{
		{
			id:                      "1",
			currentPassswordInDB:    "test-1",
			currentPassswordInInput: "test-1",
			newPasswordInInput:      "test-2",
		},
		{
			id:                      "2",
			currentPassswordInDB:    "test-2",
			currentPassswordInInput: "test-2",
			newPasswordInInput:      "test-2",
		},
		{
			id:                      "3",
			currentPassswordInDB:    "aaa",
			currentPassswordInInput: "aaa",
			newPasswordInInput:      "bbb",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			suite := setupSuite()
			service := suite.createService()

			input := Input{
				CurrentPassword: user.RawPassword(testcase.currentPassswordInInput),
				NewPassword:     user.RawPassword(testcase.newPasswordInInput),
			}
			input.User.ID = USER_ID
			input.User.PasswordHash = hashPassword(testcase.currentPassswordInDB, suite.hasher)
			_, err := service.Run(context.Background(), input)

			require.NoError(t, err)
			assertPasswordValid(t, suite, testcase.newPasswordInInput)
		})
	}
}

func TestCurrentPasswordInvalid(t *testing.T) {
	suite := setupSuite()
	service := suite.createService()

	input := Input{
		CurrentPassword: user.RawPassword("invalid-password"),
		NewPassword:     user.RawPassword("bbb"),
	}
	input.User.ID = USER_ID
	input.User.PasswordHash = hashPassword("valid-password", suite.hasher)
	_, err := service.Run(context.Background(), input)

	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func hashPassword(raw string, hasher user.PasswordHasher) user.PasswordHash {
	hash, err := hasher.HashPassword(user.RawPassword(raw))
	if err != nil {
		panic(err)
	}
	return hash
}

func assertPasswordValid(t *testing.T, suite *suite, password string) {
	t.Helper()

	u, err := suite.userRepo.GetByID(context.Background(), USER_ID)
	require.NoError(t, err)

	isValid := suite.hasher.ValidatePassword(user.RawPassword(password), u.PasswordHash)
	require.True(t, isValid)
}
