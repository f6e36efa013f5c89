// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tributestream/internal/audit"
	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/constants"
	"github.com/taibuivan/tributestream/internal/platform/middleware"
	requestutil "github.com/taibuivan/tributestream/internal/platform/request"
	"github.com/taibuivan/tributestream/internal/platform/respond"
	"github.com/taibuivan/tributestream/internal/platform/session"
)

// # Definitions & Constructors

// CookieLifetimes selects the session cookie max-age per login flavour.
type CookieLifetimes struct {
	Standard time.Duration
	Remember time.Duration
	Short    time.Duration
}

// Handler implements the /api/auth endpoints.
//
// # Scope
//
// The handler is the only place the upstream token is seen outside the
// gateway client: it goes straight from the upstream reply into the cookie.
type Handler struct {
	authService *Service
	sessions    session.Store
	lifetimes   CookieLifetimes
	recorder    audit.Recorder
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, sessions session.Store, lifetimes CookieLifetimes, recorder audit.Recorder) *Handler {
	return &Handler{
		authService: service,
		sessions:    sessions,
		lifetimes:   lifetimes,
		recorder:    recorder,
	}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST     /                : Login (alias /login)
//   - POST     /register        : Creates an account
//   - GET|POST /check           : Reports the session state, never fails
//   - GET|POST /logout          : Clears the session cookie
//   - POST     /forgot-password : Requests a reset code
//   - POST     /reset-password  : Sets a new password and signs in
//   - GET      /me              : Current user (protected)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(noStore)

	router.With(handler.track(audit.ActionLogin)).Post("/", handler.login)
	router.With(handler.track(audit.ActionLogin)).Post("/login", handler.login)
	router.With(handler.track(audit.ActionRegister)).Post("/register", handler.register)
	router.With(handler.track(audit.ActionResetPassword)).Post("/reset-password", handler.resetPassword)
	router.Post("/forgot-password", handler.forgotPassword)

	router.Get("/check", handler.check)
	router.Post("/check", handler.check)

	router.With(handler.track(audit.ActionLogout)).Get("/logout", handler.logout)
	router.With(handler.track(audit.ActionLogout)).Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	RememberMe *bool  `json:"rememberMe"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Code                 string `json:"code"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// # Response Payloads

type sessionResponse struct {
	User    User `json:"user"`
	Success bool `json:"success"`
}

type checkResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

/*
Login authenticates against the upstream and opens a session.

POST /api/auth

Request:
  - Body: loginRequest (identifier, password, rememberMe)

Response:
  - 200: {user, success:true} with the session cookie set
  - 400: VALIDATION_ERROR, no upstream call
  - 429: Too many attempts from this client
  - 4xx/5xx: Upstream failure
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateLogin(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	opened, err := handler.authService.Login(request.Context(), LoginInput{
		Identifier: input.Identifier,
		Password:   input.Password,
		ClientIP:   middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ttl := SessionTTL(input.RememberMe, handler.lifetimes.Standard, handler.lifetimes.Remember, handler.lifetimes.Short)
	handler.sessions.Set(writer, opened.Token, ttl)

	respond.Plain(writer, sessionResponse{User: opened.User, Success: true})
}

/*
Register creates an upstream account and opens a session.

POST /api/auth/register

Request:
  - Body: registerRequest (username, email, password)

Response:
  - 200: {user, success:true} with the session cookie set
  - 400: VALIDATION_ERROR, no upstream call
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateRegister(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	opened, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		ClientIP: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.sessions.Set(writer, opened.Token, handler.lifetimes.Standard)
	respond.Plain(writer, sessionResponse{User: opened.User, Success: true})
}

/*
Check reports whether the caller holds a session the upstream accepts.

GET|POST /api/auth/check

Description: Never fails. Any upstream error is reported as "not
authenticated"; an upstream 401 also clears the stale cookie.

Response:
  - 200: {authenticated, user}
*/
func (handler *Handler) check(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.Token(request)
	if token == "" {
		respond.Plain(writer, checkResponse{})
		return
	}

	user, err := handler.authService.CurrentUser(request.Context(), token)
	if err != nil {
		if apperr.IsUnauthorized(err) {
			handler.sessions.Clear(writer)
		}
		respond.Plain(writer, checkResponse{})
		return
	}

	respond.Plain(writer, checkResponse{Authenticated: true, User: user})
}

/*
Logout ends the session.

GET|POST /api/auth/logout

Response:
  - 200: {success:true}, regardless of prior state
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.sessions.Clear(writer)
	respond.Plain(writer, map[string]bool{constants.FieldSuccess: true})
}

/*
Me returns the current user.

GET /api/auth/me

Response:
  - 200: User
  - 401: No session (no upstream call), or the upstream rejected the token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	token, err := requestutil.RequiredToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// An upstream 401 expires the cookie in middleware.Authenticate.
	user, err := handler.authService.CurrentUser(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Plain(writer, user)
}

/*
ForgotPassword asks the upstream to send a reset code.

POST /api/auth/forgot-password

Response:
  - 200: {ok:true}
  - 400: VALIDATION_ERROR, no upstream call
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateForgotPassword(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ForgotPassword(request.Context(), input.Email, middleware.RealIP(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Plain(writer, map[string]bool{constants.FieldOK: true})
}

/*
ResetPassword sets a new password using an emailed code and signs the user in.

POST /api/auth/reset-password

Response:
  - 200: {user, success:true} with the session cookie set
  - 400: VALIDATION_ERROR, no upstream call
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateResetPassword(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	opened, err := handler.authService.ResetPassword(request.Context(), ResetPasswordInput{
		Code:                 input.Code,
		Password:             input.Password,
		PasswordConfirmation: input.PasswordConfirmation,
		ClientIP:             middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.sessions.Set(writer, opened.Token, handler.lifetimes.Standard)
	respond.Plain(writer, sessionResponse{User: opened.User, Success: true})
}

// # Helpers

func (handler *Handler) track(action string) func(http.Handler) http.Handler {
	return audit.Track(handler.recorder, action, "session")
}

// noStore marks every auth response as uncacheable.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		respond.NoStore(writer)
		next.ServeHTTP(writer, request)
	})
}
