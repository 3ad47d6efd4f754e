package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrAlreadyExists       = errors.New("entity already exists")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnsupportedCountry  = errors.New("country is not supported")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbiddenRole       = errors.New("user has no permitted role")
	ErrInactiveUser        = errors.New("user account is inactive")
	ErrTokenExpired        = errors.New("token has expired")
	ErrMalformedToken      = errors.New("token is malformed")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUpstreamUnavailable = errors.New("upstream backend unavailable")
	ErrRateLimited         = errors.New("too many attempts")
	ErrInvalidExecContext  = errors.New("invalid executor context for database operation")
)
