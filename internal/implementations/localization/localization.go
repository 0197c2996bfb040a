package localization

import (
	"userapi/internal/core/domain/localization"
)

// StaticLocalizer resolves message keys from an in-memory catalog.
type StaticLocalizer struct {
	messages map[string]string
}

func NewEnglish() *StaticLocalizer {
	return &StaticLocalizer{
		messages: map[string]string{
			localization.KeyUserNotFound:           "User could not be found.",
			localization.KeyEmailAlreadyExists:     "A user with this email already exists.",
			localization.KeyInvalidCredentials:     "Email or password is invalid.",
			localization.KeyResetTokenNotFound:     "Password reset link is invalid.",
			localization.KeyResetTokenExpired:      "Password reset link has expired, request a new one.",
			localization.KeyPasswordResetEmailSent: "Password reset link has been sent.",
			localization.KeyPasswordChanged:        "Password has been changed.",
			localization.KeyPasswordResetSubject:   "Reset your password",
			localization.KeyUserCreated:            "User has been created.",
			localization.KeyUserUpdated:            "User has been updated.",
			localization.KeyUserDeleted:            "User has been deleted.",
		},
	}
}

func (l *StaticLocalizer) Get(key string) string {
	msg, ok := l.messages[key]
	if !ok {
		return key
	}
	return msg
}
