package resetpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"userapi/internal/core/domain/user"
	resetpassword "userapi/internal/core/services/reset_password"
	"userapi/internal/implementations/localization"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *resetpassword.Input
}

func (s *stubService) Run(
	ctx context.Context,
	input resetpassword.Input,
) (result resetpassword.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	return result, nil
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceError   error
		expectedStatus int
		expectedInput  *resetpassword.Input
	}{
		{
			id:             "success",
			body:           `{"token": "test-token", "password": "new-password"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &resetpassword.Input{
				Token:       user.PasswordResetToken("test-token"),
				NewPassword: user.RawPassword("new-password"),
			},
		},
		{
			id:             "invalid json",
			body:           `{"token": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing token",
			body:           `{"password": "new-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			body:           `{"token": "test-token", "password": "short"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "unknown token",
			body:           `{"token": "test-token", "password": "new-password"}`,
			serviceError:   user.ErrResetTokenDoesNotExist,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "expired token",
			body:           `{"token": "test-token", "password": "new-password"}`,
			serviceError:   user.ErrResetTokenExpired,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "user does not exist",
			body:           `{"token": "test-token", "password": "new-password"}`,
			serviceError:   user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			service := &stubService{err: testcase.serviceError}
			handler := New(service, localization.NewEnglish())

			request := httptest.NewRequest(
				http.MethodPut,
				"/auth/password_reset",
				strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Result().StatusCode)
			assert.Equal(t, testcase.expectedInput, service.input)
		})
	}
}
