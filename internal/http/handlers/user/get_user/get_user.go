package getuser

import (
	"errors"
	"net/http"
	"strconv"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/localization"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	service "userapi/internal/core/services/get_user"
	"userapi/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service   services.Service[service.Input, service.Result]
	localizer localization.Localizer
}

func New(
	service services.Service[service.Input, service.Result],
	localizer localization.Localizer,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if localizer == nil {
		panic(e.NewNilArgumentError("localizer"))
	}
	return &Handler{service: service, localizer: localizer}
}

type Result struct {
	User response.User `json:"user"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawUserID := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid user ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{UserID: user.ID(userID)})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderError(rw, h.localizer.Get(localization.KeyUserNotFound), http.StatusNotFound)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
