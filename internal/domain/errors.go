package domain

import "errors"

var (
	ErrValidation   = errors.New("invalid or missing input")
	ErrSignature    = errors.New("invalid webhook signature")
	ErrUnknownEvent = errors.New("invalid event type")

	ErrNoSession        = errors.New("no session")
	ErrIdentityMismatch = errors.New("identity mismatch")
	ErrRoleDenied       = errors.New("not authorized")

	ErrNotFound    = errors.New("not found")
	ErrGateway     = errors.New("payment gateway error")
	ErrPersistence = errors.New("persistence error")
)
