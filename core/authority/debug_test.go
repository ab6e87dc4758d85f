package authority_test

import (
	"context"
	"testing"

	"appcheck-stub/core/authority"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebug_CreateToken(t *testing.T) {
	d := authority.NewDebug()

	res, err := d.CreateToken(context.Background(), "app-1", 1800000)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(1800000), res.TTLMillis)
}

func TestDebug_CreateToken_Independent(t *testing.T) {
	d := authority.NewDebug()

	first, err := d.CreateToken(context.Background(), "app-1", 1000)
	require.NoError(t, err)
	second, err := d.CreateToken(context.Background(), "app-1", 1000)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestDebug_CreateToken_Rejections(t *testing.T) {
	d := authority.NewDebug()

	_, err := d.CreateToken(context.Background(), "", 1000)
	assert.Error(t, err)

	_, err = d.CreateToken(context.Background(), "app-1", 0)
	assert.Error(t, err)
}

func TestNewClient_Modes(t *testing.T) {
	client, err := authority.NewClient(authority.Config{Mode: authority.ModeDebug})
	require.NoError(t, err)
	assert.IsType(t, &authority.Debug{}, client)

	_, err = authority.NewClient(authority.Config{Mode: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestConfig_IsValidMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{"Debug", authority.ModeDebug, true},
		{"Remote", authority.ModeRemote, true},
		{"Invalid", "invalid", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := authority.Config{Mode: tt.mode}
			assert.Equal(t, tt.want, c.IsValidMode())
		})
	}
}
