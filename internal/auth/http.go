// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/trackline/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/trackline/internal/platform/request"
	"github.com/taibuivan/trackline/internal/platform/respond"
	"github.com/taibuivan/trackline/internal/platform/validate"
)

// # Definitions & Constructors

// Field names used in validation messages.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldToken    = "token"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This layer is strictly responsible for transport concerns (status codes,
// headers, JSON); every decision lives in [Service].
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login           : Authenticates and returns a bearer token.
//   - POST /verify-email    : Redeems an invitation token and sets the first password.
//   - POST /forgot-password : Starts the password-recovery loop.
//   - POST /reset-password  : Completes the password-recovery loop.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)
	router.Post("/verify-email", handler.verifyEmail)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyEmailRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

/*
Login authenticates an employee with email and password.

POST /api/v1/auth/login

Response:
  - 200: LoginResult: {access_token, token_type: "bearer"}
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: Unauthorized: Wrong credentials, unverified, or deactivated
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
VerifyEmail redeems an invitation token.

POST /api/v1/auth/verify-email

Response:
  - 200: messageResponse
  - 404: NotFound: Token invalid or expired
*/
func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	var input verifyEmailRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.VerifyEmail(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messageResponse{Message: "Email verified"})
}

/*
ForgotPassword starts the password-recovery loop.

POST /api/v1/auth/forgot-password

Description: Always answers 200 with the same message regardless of whether
the email exists, to prevent account enumeration.
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.RequestPasswordReset(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// TODO: hand the token to the mailer once the notification service lands.
	// Until then an operator reads it out of the logs.
	if token != "" {
		ctxutil.GetLogger(request.Context()).Info("password_reset_token_issued",
			slog.String("token", token))
	}

	respond.OK(writer, messageResponse{Message: "If the account exists, a reset link has been sent"})
}

/*
ResetPassword completes the password-recovery loop.

POST /api/v1/auth/reset-password

Response:
  - 200: messageResponse
  - 404: NotFound: Token invalid or expired
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messageResponse{Message: "Password has been reset"})
}
