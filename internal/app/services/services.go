package services

import (
	"time"
	"userapi/internal/app/deps"
	drl "userapi/internal/core/domain/rate_limiter"
	"userapi/internal/core/services"
	"userapi/internal/core/services/auth"
	changepassword "userapi/internal/core/services/change_password"
	createuser "userapi/internal/core/services/create_user"
	deleteuser "userapi/internal/core/services/delete_user"
	getuser "userapi/internal/core/services/get_user"
	getuserbysessiontoken "userapi/internal/core/services/get_user_by_session_token"
	listusers "userapi/internal/core/services/list_users"
	loginwithemail "userapi/internal/core/services/log_in_with_email"
	logout "userapi/internal/core/services/log_out"
	ratelimiting "userapi/internal/core/services/rate_limiting"
	resetpassword "userapi/internal/core/services/reset_password"
	sendpasswordresettoken "userapi/internal/core/services/send_password_reset_token"
	updateuser "userapi/internal/core/services/update_user"
)

type Services struct {
	CreateUser services.Service[createuser.Input, createuser.Result]
	GetUser    services.Service[getuser.Input, getuser.Result]
	ListUsers  services.Service[listusers.Input, listusers.Result]
	UpdateUser services.Service[updateuser.Input, updateuser.Result]
	DeleteUser services.Service[deleteuser.Input, deleteuser.Result]

	LogInWithEmail        services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                services.Service[logout.Input, logout.Result]
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	ChangePassword        services.Service[changepassword.Input, changepassword.Result]

	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.CreateUser = createuser.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.GetUser = getuser.New(deps.Logger, deps.UserRepository)
	s.ListUsers = listusers.New(deps.Logger, deps.UserRepository)
	s.UpdateUser = updateuser.New(deps.Logger, deps.UserRepository)
	s.DeleteUser = deleteuser.New(deps.Logger, deps.UserRepository)

	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(deps.Logger, deps.SessionRepository)
	s.GetUserBySessionToken = getuserbysessiontoken.New(deps.Logger, deps.SessionRepository)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
		),
	)

	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		sendpasswordresettoken.NewWithResetTokenSending(
			deps.Logger,
			deps.PasswordResetTokenSender,
			sendpasswordresettoken.New(
				deps.Logger,
				deps.UserRepository,
				deps.ResetTokenRepository,
				deps.ResetTokenGenerator,
				time.Duration(deps.Config.PasswordResetTokenTTLMinutes)*time.Minute,
				deps.Now,
			),
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)

	return s
}
