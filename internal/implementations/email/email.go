package email

import (
	"context"
	"fmt"
	"net/url"

	"userapi/internal/core/domain/localization"
	"userapi/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/golang-module/carbon/v2"
)

type PasswordResetSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender               string
	passwordResetBaseUrl url.URL
	localizer            localization.Localizer
}

func NewPasswordResetSender(
	awsConfig aws.Config,
	sender string,
	passwordResetBaseUrl url.URL,
	localizer localization.Localizer,
) *PasswordResetSender {
	return &PasswordResetSender{
		ses:                  ses.NewFromConfig(awsConfig),
		sender:               sender,
		passwordResetBaseUrl: passwordResetBaseUrl,
		localizer:            localizer,
	}
}

func (s *PasswordResetSender) SendResetToken(ctx context.Context, u user.User, token user.ResetToken) error {
	subject := s.localizer.Get(localization.KeyPasswordResetSubject)
	body := s.messageBody(u, token)

	email := string(u.Email)
	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	)
	return err
}

func (s *PasswordResetSender) messageBody(u user.User, token user.ResetToken) string {
	return fmt.Sprintf(
		"Hello %s,\n\nFollow the link to set a new password:\n%s\n\nThe link expires %s.\n",
		u.Username,
		s.resetURL(token.Token),
		carbon.Time2Carbon(token.ExpiresAt).DiffForHumans(),
	)
}

func (s *PasswordResetSender) resetURL(token user.PasswordResetToken) string {
	u := s.passwordResetBaseUrl
	q := u.Query()
	q.Set("token", string(token))
	u.RawQuery = q.Encode()
	return u.String()
}
