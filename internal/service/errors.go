package service

import "errors"

// Domain error taxonomy. Handlers map these onto HTTP status codes;
// nothing below is retried and each one is scoped to a single request.
var (
	ErrValidation         = errors.New("invalid input")
	ErrConflict           = errors.New("already exists")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrNotFound           = errors.New("not found")
)
