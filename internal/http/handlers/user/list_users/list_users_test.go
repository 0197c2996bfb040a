package listusers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	c "userapi/internal/core/domain/common"
	"userapi/internal/core/domain/user"
	service "userapi/internal/core/services/list_users"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	users []user.User
	err   error
	input *service.Input
}

func (s *stubService) Run(
	ctx context.Context,
	input service.Input,
) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	return service.Result{Users: s.users, TotalCount: uint(len(s.users))}, nil
}

func TestListUsersHandler(t *testing.T) {
	cases := []struct {
		url            string
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			url:            "/users",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{},
		},
		{
			url:            "/users?limit=5&offset=10",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Limit:  c.NewOptional(uint(5), true),
				Offset: 10,
			},
		},
		{
			url:            "/users?limit=500",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Limit: c.NewOptional(uint(MAX_LIMIT), true),
			},
		},
		{
			url:            "/users?username=bob",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				UsernameContains: c.NewOptional("bob", true),
			},
		},
		{
			url:            "/users?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			url:            "/users?limit=-1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			url:            "/users?offset=x",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.url, func(t *testing.T) {
			service := &stubService{}
			handler := New(service)

			request := httptest.NewRequest(http.MethodGet, testcase.url, nil)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Result().StatusCode)
			assert.Equal(t, testcase.expectedInput, service.input)
		})
	}
}
