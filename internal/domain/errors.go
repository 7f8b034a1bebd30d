package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
)

// Authentication failures carry which credential was wrong so the login
// view can report it. Both match ErrUnauthorized under errors.Is.
var (
	ErrEmailNotRegistered = fmt.Errorf("%w: email address is not registered", ErrUnauthorized)
	ErrPasswordMismatch   = fmt.Errorf("%w: password mismatch", ErrUnauthorized)
)
