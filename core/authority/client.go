package authority

import (
	"context"
	"fmt"
)

// Result is a freshly minted token and the validity the authority granted.
type Result struct {
	// Token is the opaque credential string.
	Token string
	// TTLMillis is the granted validity in milliseconds. Always positive.
	TTLMillis int64
}

// Client defines the interface to a credential authority.
type Client interface {
	// CreateToken mints a token for the given application id, requesting
	// the given validity in milliseconds. Any failure (unknown app id,
	// network, quota) is returned as an opaque error.
	CreateToken(ctx context.Context, appID string, ttlMillis int64) (Result, error)
}

// NewClient creates a credential authority client based on the configuration.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Mode {
	case ModeDebug:
		return NewDebug(), nil
	case ModeRemote:
		return NewRemote(cfg)
	default:
		return nil, fmt.Errorf("unknown authority mode %q", cfg.Mode)
	}
}
