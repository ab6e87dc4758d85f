package authority

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Debug is an in-process credential authority that mints UUID debug
// tokens and grants whatever validity the caller requests. It stands in
// for the real backend during client development.
type Debug struct{}

// NewDebug creates a debug authority.
func NewDebug() *Debug {
	return &Debug{}
}

// CreateToken mints a fresh debug token. Every call returns a new,
// independently generated token.
func (d *Debug) CreateToken(_ context.Context, appID string, ttlMillis int64) (Result, error) {
	if appID == "" {
		return Result{}, errors.New("authority rejected empty app id")
	}
	if ttlMillis <= 0 {
		return Result{}, errors.New("requested ttl must be positive")
	}
	return Result{Token: uuid.NewString(), TTLMillis: ttlMillis}, nil
}
