package service

import "github.com/pkg/errors"

// --- Error Definitions ---
var (
	ErrPremiumRequired = errors.New("premium subscription required")
	ErrUnauthenticated = errors.New("no authenticated user")
)
