package sendpasswordresettoken

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/localization"
	ratelimiter "userapi/internal/core/domain/rate_limiter"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	service "userapi/internal/core/services/send_password_reset_token"
	"userapi/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service    services.Service[service.Input, service.Result]
	localizer  localization.Localizer
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	localizer localization.Localizer,
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if localizer == nil {
		panic(e.NewNilArgumentError("localizer"))
	}
	return &Handler{service: service, localizer: localizer, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
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
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
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
		service.Input{Email: c.NewEmail(input.Email)},
	)
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderError(
				rw,
				h.localizer.Get(localization.KeyUserNotFound),
				http.StatusUnprocessableEntity,
			)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	if h.isTestMode {
		rw.Header().Set("x-test-password-reset-token", string(result.Token.Token))
	}
	response.Render(
		rw,
		Result{Message: h.localizer.Get(localization.KeyPasswordResetEmailSent)},
		http.StatusOK,
	)
}
