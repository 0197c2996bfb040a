package app

import (
	"net/http"
	"userapi/internal/app/deps"
	"userapi/internal/app/services"
	"userapi/internal/http/handlers/auth"
	changepassword "userapi/internal/http/handlers/auth/change_password"
	loginwithemail "userapi/internal/http/handlers/auth/log_in_with_email"
	logout "userapi/internal/http/handlers/auth/log_out"
	me "userapi/internal/http/handlers/auth/me"
	resetpassword "userapi/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "userapi/internal/http/handlers/auth/send_password_reset_token"
	createuser "userapi/internal/http/handlers/user/create_user"
	deleteuser "userapi/internal/http/handlers/user/delete_user"
	getuser "userapi/internal/http/handlers/user/get_user"
	listusers "userapi/internal/http/handlers/user/list_users"
	updateuser "userapi/internal/http/handlers/user/update_user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token",
		sendpasswordresettoken.New(s.SendPasswordResetToken, deps.Localizer, isTestMode),
	)
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword, deps.Localizer))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodPut, "/password", changepassword.New(s.ChangePassword))

	usersRouter := chi.NewRouter()
	usersRouter.Method(http.MethodPost, "/", createuser.New(s.CreateUser, deps.Localizer))
	usersRouter.Method(http.MethodGet, "/", listusers.New(s.ListUsers))
	usersRouter.Method(http.MethodGet, "/{userID:[0-9]+}", getuser.New(s.GetUser, deps.Localizer))
	usersRouter.Method(http.MethodPatch, "/{userID:[0-9]+}", updateuser.New(s.UpdateUser, deps.Localizer))
	usersRouter.Method(http.MethodDelete, "/{userID:[0-9]+}", deleteuser.New(s.DeleteUser, deps.Localizer))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	router.Mount("/users", usersRouter)

	return &http.Server{
		Handler: router,
		Addr:    deps.Config.Address,
	}
}
