package server_test

import (
	"testing"

	"appcheck-stub/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     server.Config
		wantErr bool
	}{
		{"Default", server.Config{Host: "127.0.0.1", Port: "8080", BodyLimitBytes: 1048576}, false},
		{"AnyPort", server.Config{Port: "0", BodyLimitBytes: 1}, false},
		{"MaxPort", server.Config{Port: "65535", BodyLimitBytes: 1}, false},
		{"PortTooBig", server.Config{Port: "65536", BodyLimitBytes: 1}, true},
		{"NegativePort", server.Config{Port: "-1", BodyLimitBytes: 1}, true},
		{"NotANumber", server.Config{Port: "http", BodyLimitBytes: 1}, true},
		{"ZeroBodyLimit", server.Config{Port: "8080", BodyLimitBytes: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	c := server.Config{Host: "0.0.0.0", Port: "9090"}
	assert.Equal(t, "0.0.0.0:9090", c.Addr())
}
