package localization

// Localizer resolves stable message keys to human-readable status text.
// It never affects control flow; unknown keys fall back to the key itself.
type Localizer interface {
	Get(key string) string
}

const (
	KeyUserNotFound           = "user-not-found"
	KeyEmailAlreadyExists     = "user-email-already-exists"
	KeyInvalidCredentials     = "invalid-credentials"
	KeyResetTokenNotFound     = "reset-token-not-found"
	KeyResetTokenExpired      = "reset-token-expired"
	KeyPasswordResetEmailSent = "password-reset-email-sent"
	KeyPasswordChanged        = "password-changed"
	KeyPasswordResetSubject   = "password-reset-subject"
	KeyUserCreated            = "user-created"
	KeyUserUpdated            = "user-updated"
	KeyUserDeleted            = "user-deleted"
)
