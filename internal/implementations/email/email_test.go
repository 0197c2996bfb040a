package email

import (
	"net/url"
	"strings"
	"testing"
	"time"
	c "userapi/internal/core/domain/common"
	"userapi/internal/core/domain/user"
	"userapi/internal/implementations/localization"
)

func newTestSender(t *testing.T, rawBaseURL string) *PasswordResetSender {
	t.Helper()
	baseURL, err := url.Parse(rawBaseURL)
	if err != nil {
		t.Fatalf("could not parse base url: %v", err)
	}
	return &PasswordResetSender{
		sender:               "no-reply@test.test",
		passwordResetBaseUrl: *baseURL,
		localizer:            localization.NewEnglish(),
	}
}

func TestMessageBody(t *testing.T) {
	sender := newTestSender(t, "https://app.test.test/reset_password")
	body := sender.messageBody(
		user.User{ID: 1, Email: c.Email("test@test.test"), Username: user.Username("test-user")},
		user.ResetToken{
			Token:     user.PasswordResetToken("test-token"),
			UserID:    1,
			ExpiresAt: time.Now().Add(2 * time.Hour),
		},
	)

	if !strings.Contains(body, "Hello test-user,") {
		t.Fatalf("body does not address the user: %v", body)
	}
	if !strings.Contains(body, "https://app.test.test/reset_password?token=test-token") {
		t.Fatalf("body does not contain the reset link: %v", body)
	}
	if !strings.Contains(body, "from now") {
		t.Fatalf("body does not mention when the link expires: %v", body)
	}
}

func TestResetURLEscapesToken(t *testing.T) {
	sender := newTestSender(t, "https://app.test.test/reset_password?lang=en")
	resetURL := sender.resetURL(user.PasswordResetToken("a+b/c"))

	parsed, err := url.Parse(resetURL)
	if err != nil {
		t.Fatalf("could not parse reset url: %v", err)
	}
	if parsed.Query().Get("token") != "a+b/c" {
		t.Fatalf("token does not survive the url round trip: %v", resetURL)
	}
	if parsed.Query().Get("lang") != "en" {
		t.Fatalf("base url query parameters are lost: %v", resetURL)
	}
}
