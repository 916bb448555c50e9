package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	MinUsernameLength = 5
	MaxUsernameLength = 150
	MinPasswordLength = 4
	MaxPasswordBytes  = 72
	ForbiddenUsername = "me"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessLogout         = "logout successful"
	MessageSuccessGetUser        = "success get user"
	MessageSuccessGetUsers       = "success get users"
	MessageSuccessSetPassword    = "password changed successfully"
	MessageSuccessForgotPassword = "if the email is registered, a reset link has been sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedLogout         = "failed to logout"
	MessageFailedGetUser        = "failed to get user"
	MessageFailedGetUsers       = "failed to get users"
	MessageFailedSetPassword    = "failed to change password"
	MessageFailedForgotPassword = "failed to send reset link"
	MessageFailedResetPassword  = "failed to reset password"

	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailAlreadyExists  = fmt.Errorf("a user with this email %w", ErrConflict)
	ErrUserAlreadyExists   = fmt.Errorf("a user with this email or username %w", ErrConflict)
	ErrInvalidCredentials  = NewFieldError("", "unable to log in with provided credentials")
	ErrWrongPassword       = NewFieldError("current_password", "current password is incorrect")
	ErrForbiddenUsername   = NewFieldError("username", fmt.Sprintf("username %q is not allowed", ForbiddenUsername))
	ErrResetTokenInvalid   = NewFieldError("token", "reset token is invalid or expired")
	ErrHashPasswordFailure = errors.New("failed to hash password")
)

func ErrPasswordTooLong(field string) error {
	return NewFieldError(field, fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
}

type (
	UserRegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,min=5,max=150,username"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=4,max=72"`
	}

	UserLoginRequest struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=72"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required,max=72"`
		NewPassword     string `json:"new_password" validate:"required,min=4,max=72"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=4,max=72"`
	}

	UserResponse struct {
		ID           uuid.UUID `json:"id"`
		Email        string    `json:"email"`
		Username     string    `json:"username"`
		FirstName    string    `json:"first_name"`
		LastName     string    `json:"last_name"`
		IsSubscribed bool      `json:"is_subscribed"`
	}

	TokenResponse struct {
		AuthToken string `json:"auth_token"`
	}
)
