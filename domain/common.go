package domain

import (
	"errors"
	"fmt"
)

const (
	DefaultPage  = 1
	DefaultLimit = 6
	MaxLimit     = 100
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageSuccessPing          = "pong"

	ErrParseUUID      = fmt.Errorf("%w: malformed id", ErrNotFound)
	ErrUserNotAllowed = fmt.Errorf("%w: user not allowed", ErrForbidden)
	ErrTokenNotFound  = fmt.Errorf("%w: authentication credentials were not provided", ErrUnauthorized)
	ErrTokenInvalid   = fmt.Errorf("%w: token is invalid", ErrUnauthorized)
	ErrTokenExpired   = fmt.Errorf("%w: token is expired", ErrUnauthorized)
	ErrTokenRevoked   = fmt.Errorf("%w: token has been revoked", ErrUnauthorized)
	ErrAnonymous      = fmt.Errorf("%w: login required", ErrUnauthorized)
)

// Error kinds. Every error returned by a service wraps exactly one of them.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("already exists")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldError is a validation failure tied to one request field.
type FieldError struct {
	Field   string
	Message string
}

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
