package authority

// Config holds configuration for the credential authority.
type Config struct {
	// Mode selects the authority implementation (debug, remote).
	Mode string `mapstructure:"mode" default:"debug"`
	// ProjectID is the project the server issues tokens for. When set,
	// incoming requests must carry the same project id; when empty, the
	// cross-check is skipped.
	ProjectID string `mapstructure:"project_id" default:""`
	// Endpoint is the base URL of the remote authority (remote mode only).
	Endpoint string `mapstructure:"endpoint" default:""`
	// APIKey authenticates this server against the remote authority.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds is the per-call timeout for the remote authority.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries bounds transport-level retries of the remote client.
	// Failed exchanges are never retried beyond the transport layer.
	MaxRetries int `mapstructure:"max_retries" default:"2"`
}

const (
	ModeDebug  = "debug"
	ModeRemote = "remote"
)

// IsValidMode checks if the configured authority mode is valid.
func (c Config) IsValidMode() bool {
	switch c.Mode {
	case ModeDebug, ModeRemote:
		return true
	default:
		return false
	}
}
