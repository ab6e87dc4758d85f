package server

import (
	"fmt"
	"net"
	"strconv"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the address the server binds to.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the server will listen. "0" picks any free port.
	Port string `mapstructure:"port" default:"8080"`
	// BodyLimitBytes is the maximum accepted request body size.
	BodyLimitBytes int `mapstructure:"body_limit_bytes" default:"1048576"`
}

// Validate checks that the listen configuration is usable. It must pass
// before any socket is opened; a failure here aborts startup.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("port %q is not a number: %w", c.Port, err)
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("port %d is out of range 0-65535", port)
	}
	if c.BodyLimitBytes <= 0 {
		return fmt.Errorf("body limit must be positive, got %d", c.BodyLimitBytes)
	}
	return nil
}

// Addr returns the host:port address to listen on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
