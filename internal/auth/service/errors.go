package service

import "errors"

var (
	// ErrForbidden covers every rejected authorize or token request. The
	// caller never learns which check failed.
	ErrForbidden = errors.New("service: project not allowed to request")

	// ErrAlreadyConsumed is returned when a code lost the race to be
	// exchanged, or was exchanged before.
	ErrAlreadyConsumed = errors.New("service: authorization code already exchanged")

	// ErrUnknownSubject is returned when a verified session names a user
	// that has since been deleted.
	ErrUnknownSubject = errors.New("service: session user no longer exists")

	ErrInvalidCredentials = errors.New("service: invalid credentials")
	ErrNotPermitted       = errors.New("service: not permitted")
)
