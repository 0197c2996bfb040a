package listusers

import (
	"errors"
	"net/http"
	"strconv"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	service "userapi/internal/core/services/list_users"
	"userapi/internal/http/handlers/response"
)

const MAX_LIMIT = 100

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Users      []response.User `json:"users"`
	TotalCount uint            `json:"total_count"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawLimit := r.URL.Query().Get("limit")
	limit, err := parseLimit(rawLimit)
	if err != nil {
		response.RenderError(rw, "invalid limit query parameter", http.StatusBadRequest)
		return
	}

	rawOffset := r.URL.Query().Get("offset")
	offset, err := parseOffset(rawOffset)
	if err != nil {
		response.RenderError(rw, "invalid offset query parameter", http.StatusBadRequest)
		return
	}

	input := service.Input{
		Limit:  limit,
		Offset: offset,
	}
	if username := r.URL.Query().Get("username"); username != "" {
		input.UsernameContains = c.NewOptional(username, true)
	}

	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	users := make([]response.User, 0, len(result.Users))
	for _, domainUser := range result.Users {
		u := response.User{}
		u.FromDomainUser(domainUser)
		users = append(users, u)
	}
	response.Render(rw, Result{Users: users, TotalCount: result.TotalCount}, http.StatusOK)
}

func parseLimit(raw string) (limit c.Optional[uint], err error) {
	if raw == "" {
		return limit, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return limit, err
	}
	if parsed > MAX_LIMIT {
		parsed = MAX_LIMIT
	}
	return c.NewOptional(uint(parsed), true), nil
}

func parseOffset(raw string) (uint, error) {
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}
