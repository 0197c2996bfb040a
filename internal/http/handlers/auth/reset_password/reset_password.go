package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/localization"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	resetpassword "userapi/internal/core/services/reset_password"
	"userapi/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service   services.Service[resetpassword.Input, resetpassword.Result]
	localizer localization.Localizer
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
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
	Token    string `json:"token"`
	Password string `json:"password"`
}

type Result struct {
	Message string `json:"message"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
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

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:       user.PasswordResetToken(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, user.ErrResetTokenDoesNotExist) {
		response.RenderError(
			rw,
			h.localizer.Get(localization.KeyResetTokenNotFound),
			http.StatusUnprocessableEntity,
		)
		return
	}
	if errors.Is(err, user.ErrResetTokenExpired) {
		response.RenderError(
			rw,
			h.localizer.Get(localization.KeyResetTokenExpired),
			http.StatusUnprocessableEntity,
		)
		return
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderError(
			rw,
			h.localizer.Get(localization.KeyUserNotFound),
			http.StatusUnprocessableEntity,
		)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(
		rw,
		Result{Message: h.localizer.Get(localization.KeyPasswordChanged)},
		http.StatusOK,
	)
}
