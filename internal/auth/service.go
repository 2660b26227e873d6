// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the identity entry points of the Trackline API.

It covers credential login, invitation redemption (email verification), and
the forgot/reset password recovery loop. Trackline issues a single
short-lived bearer token per login; there are no refresh tokens and no
server-side session table.

Architecture:

  - Service: Orchestrates business logic (Login, VerifyEmail, ResetPassword).
  - Repository: Abstracted interfaces for Postgres (Employees) and Redis (one-shot tokens).
  - Security: Bcrypt password hashes and HMAC-signed JWTs.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/trackline/internal/platform/apperr"
	"github.com/taibuivan/trackline/internal/platform/constants"
	"github.com/taibuivan/trackline/internal/platform/sec"
	"github.com/taibuivan/trackline/internal/tracking"
)

// # Contracts & Types

const (
	// VerifyTokenLength is the entropy (bytes) of an invitation token.
	VerifyTokenLength = 32

	// ResetTokenLength is the entropy (bytes) of a password-reset token.
	ResetTokenLength = 32
)

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given employee.
	//
	// # Parameters
	//   - employeeID: The ID of the account.
	//   - email: The email of the account.
	//   - isAdmin: Whether the account holds the admin role.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(employeeID, email string, isAdmin bool, timeToLive time.Duration) (string, error)
}

// OneShotTokenRepository stores single-use tokens (verification, reset) with
// a TTL. Callers pass the raw token; how it is keyed at rest is the
// implementation's concern.
type OneShotTokenRepository interface {
	// Set stores a token mapped to an employee ID for the given TTL.
	Set(ctx context.Context, token, employeeID string, ttl time.Duration) error

	// Get resolves a token to its employee ID, or apperr.NotFound when the
	// token is absent or expired.
	Get(ctx context.Context, token string) (string, error)

	// Delete removes a redeemed token.
	Delete(ctx context.Context, token string) error
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing or login
// logic must be reviewed by the security team.
type Service struct {
	employees     tracking.EmployeeRepository
	verifyTokens  OneShotTokenRepository
	resetTokens   OneShotTokenRepository
	tokenProvider TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	employees tracking.EmployeeRepository,
	verifyTokens OneShotTokenRepository,
	resetTokens OneShotTokenRepository,
	tokenProvider TokenProvider,
) *Service {
	return &Service{
		employees:     employees,
		verifyTokens:  verifyTokens,
		resetTokens:   resetTokens,
		tokenProvider: tokenProvider,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the issued bearer credential.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

/*
Login validates employee credentials and issues an access token.

Description: Verifies identity with a constant-time password comparison and
returns a signed bearer token. Every failure mode maps to the same generic
Unauthorized to prevent account enumeration, except the verified/deactivated
gates which fire only after the password already matched.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Transport-ready bearer credential
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// Look up by email. Generic message to prevent enumeration.
	employee, err := service.employees.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// An invited employee has no hash until they redeem their token.
	if employee.PasswordHash == "" {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, employee.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Account gates fire only after the password matched, so the messages
	// leak nothing to a guesser.
	if !employee.EmailVerified {
		return nil, apperr.Unauthorized("Email is not verified")
	}
	if employee.Deactivated {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(
		employee.ID, employee.Email, employee.IsAdmin, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// # Invitation Redemption

/*
VerifyEmail redeems an invitation token, setting the employee's first
password and marking the email verified in one write.

Parameters:
  - context: context.Context
  - token: string
  - password: string

Returns:
  - err: NotFound (invalid/expired token) or update failures
*/
func (service *Service) VerifyEmail(context context.Context, token, password string) error {

	// Resolve the token to its employee
	employeeID, err := service.verifyTokens.Get(context, token)
	if err != nil {
		return err
	}

	// Hash the chosen password
	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth_service_verify_hash_failed: %w", err)
	}

	// Set password and verified flag atomically
	if err := service.employees.SetPassword(context, employeeID, hashedPassword, true); err != nil {
		return fmt.Errorf("auth_service_verify_update_failed: %w", err)
	}

	// Cleanup the redeemed token from Redis
	_ = service.verifyTokens.Delete(context, token)

	return nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and saves it to Redis.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Reset token (handed to the mailer)
  - err: Generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	// Look up employee.
	// NOTE: We don't return NOT_FOUND if the email doesn't exist to prevent user enumeration.
	employee, err := service.employees.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	// Generate reset token
	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	// Save to Redis
	if err := service.resetTokens.Set(context, token, employee.ID, constants.ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, and updates the DB.
Outstanding bearer tokens stay valid until natural expiry; they are
short-lived and Trackline keeps no session table to revoke against.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	// Retrieve the employee ID associated with the reset token from Redis
	employeeID, err := service.resetTokens.Get(context, token)
	if err != nil {
		return err
	}

	// Hash the new password securely
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	// Update the employee's password in persistent storage
	if err := service.employees.SetPassword(context, employeeID, hashedPassword, false); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Delete the used token from Redis
	_ = service.resetTokens.Delete(context, token)

	return nil
}
