package createuser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/localization"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	service "userapi/internal/core/services/create_user"
	"userapi/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
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

type Input struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&i.Password, validation.Required, validation.Length(8, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Email:    c.NewEmail(input.Email),
			Username: user.Username(input.Username),
			Password: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		response.RenderError(
			rw,
			h.localizer.Get(localization.KeyEmailAlreadyExists),
			http.StatusUnprocessableEntity,
		)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	createdUser := response.User{}
	createdUser.FromDomainUser(result.User)
	response.Render(rw, Result{User: createdUser}, http.StatusCreated)
}
