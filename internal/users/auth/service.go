// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider signs and parses access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID int64, username string, role sec.UserRole, timeToLive time.Duration) (string, error)
	ParseToken(token string) (*sec.AuthClaims, error)
}

// Options tunes token lifetime and the brute-force throttle.
type Options struct {
	AccessTokenTTL       time.Duration
	ConfirmMaxAttempts   int
	ConfirmAttemptWindow time.Duration
}

// Confirmation email content.
const (
	MailSubject    = "Yamdb registration"
	mailBodyFormat = "Hello %s! Thank you for registering. Confirmation code: %s"
)

// Service implements the signup handshake and token use cases.
type Service struct {
	userRepository UserRepository
	attemptStore   AttemptStore
	tokenProvider  TokenProvider
	mailer         mail.Sender
	options        Options
	newCode        func() (string, error)
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	attempts AttemptStore,
	tokens TokenProvider,
	mailer mail.Sender,
	options Options,
) *Service {
	return &Service{
		userRepository: userRepo,
		attemptStore:   attempts,
		tokenProvider:  tokens,
		mailer:         mailer,
		options:        options,
		newCode:        NewConfirmationCode,
	}
}

// # Signup Flow

// SignupInput is the visitor-supplied identity.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ValidateUsername applies the username rules shared by signup and the user directory.
func ValidateUsername(validator *validate.Validator, username string) *validate.Validator {
	return validator.
		Required(FieldUsername, username).
		MaxLen(FieldUsername, username, UsernameMaxLen).
		Username(FieldUsername, username).
		Custom(FieldUsername, username == ReservedUsername, "The username 'me' is reserved")
}

// ValidateEmail applies the email rules shared by signup and the user directory.
func ValidateEmail(validator *validate.Validator, email string) *validate.Validator {
	return validator.
		Email(FieldEmail, email).
		MaxLen(FieldEmail, email, EmailMaxLen)
}

/*
Signup registers a username/email pair (or recognises a returning one) and
mails the confirmation code.

Description: An email is bound to exactly one username. A returning visitor
with the same pair gets the stored code again. A new pair creates a user with
a fresh code. Any other combination is rejected.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupInput: The accepted pair, echoed to the client
  - error: Validation, Conflict or MailUnavailable
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupInput, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	// 1. Reserved name first, so the client sees the precise reason
	if input.Username == ReservedUsername {
		return nil, apperr.Conflict("The username 'me' is not allowed")
	}

	validator := &validate.Validator{}
	ValidateUsername(validator, input.Username)
	ValidateEmail(validator, input.Email)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 2. Resolve the code to send
	code, err := service.resolveCode(context, input)
	if err != nil {
		return nil, err
	}

	// 3. Dispatch. Failure aborts the request.
	message := mail.Message{
		To:      input.Email,
		Subject: MailSubject,
		Body:    fmt.Sprintf(mailBodyFormat, input.Username, code),
	}
	if err := service.mailer.Send(context, message); err != nil {
		return nil, apperr.MailUnavailable(err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "signup_code_sent", slog.String("username", input.Username))
	return &input, nil
}

// resolveCode returns the stored code of a returning pair or creates the user.
func (service *Service) resolveCode(context context.Context, input SignupInput) (string, error) {
	existing, err := service.userRepository.FindByEmail(context, input.Email)
	switch {
	case err == nil:
		if existing.Username != input.Username {
			return "", apperr.Conflict("This email is already registered with a different username")
		}
		return existing.ConfirmationCode, nil
	case !apperr.HasCode(err, apperr.CodeNotFound):
		return "", err
	}

	holder, err := service.userRepository.FindByUsername(context, input.Username)
	switch {
	case err == nil:
		if holder.Email != input.Email {
			return "", apperr.Conflict("This username is already taken")
		}
	case !apperr.HasCode(err, apperr.CodeNotFound):
		return "", err
	}

	code, err := service.newCode()
	if err != nil {
		return "", apperr.Internal(err)
	}

	user := &User{
		Username:         input.Username,
		Email:            input.Email,
		Role:             sec.RoleUser,
		ConfirmationCode: code,
	}

	// A concurrent signup may win the unique constraint between the lookups and here.
	if err := service.userRepository.Create(context, user); err != nil {
		return "", dberr.Wrap(err, "signup_create_user")
	}

	return code, nil
}

// # Token Flow

// TokenInput is the code exchange payload.
type TokenInput struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// TokenPair is returned by a successful exchange. Only an access token is issued.
type TokenPair struct {
	Access string `json:"access"`
}

/*
ExchangeToken trades a confirmation code for an access token.

Description: Failed attempts are counted per username and the exchange is
refused with 429 once the configured limit is reached inside the window.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - *TokenPair: Signed access token
  - error: Validation, RateLimited, NotFound or InvalidConfirmationCode
*/
func (service *Service) ExchangeToken(context context.Context, input TokenInput) (*TokenPair, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)

	// 1. Throttle before touching the code
	failures, err := service.attemptStore.Count(context, input.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if failures >= service.options.ConfirmMaxAttempts {
		logger.WarnContext(context, "token_exchange_rejected",
			slog.String("username", input.Username), slog.String("reason", "throttled"))
		return nil, apperr.RateLimited(int(service.options.ConfirmAttemptWindow.Seconds()))
	}

	// 2. Resolve and compare
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		return nil, err
	}

	if !codesMatch(user.ConfirmationCode, input.ConfirmationCode) {
		if _, err := service.attemptStore.Increment(context, input.Username, service.options.ConfirmAttemptWindow); err != nil {
			return nil, apperr.Internal(err)
		}
		logger.WarnContext(context, "token_exchange_rejected",
			slog.String("username", input.Username), slog.String("reason", "code_mismatch"))
		return nil, apperr.InvalidConfirmationCode()
	}

	// 3. Issue
	access, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, user.Role, service.options.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := service.attemptStore.Reset(context, input.Username); err != nil {
		logger.WarnContext(context, "attempt_reset_failed", slog.Any("error", err))
	}

	logger.InfoContext(context, "token_issued", slog.Int64("user_id", user.ID))
	return &TokenPair{Access: access}, nil
}

// # Request Authentication

/*
VerifyToken validates a bearer token and reloads its subject.

Description: The returned claims carry the username and role currently in
storage, so a token minted before a role change cannot act with the old role.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.AuthClaims: Current identity
  - error: Unauthorized for bad tokens or deleted users
*/
func (service *Service) VerifyToken(context context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokenProvider.ParseToken(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("User no longer exists")
		}
		return nil, err
	}

	claims.Username = user.Username
	claims.Role = string(user.Role)
	return claims, nil
}
