package mocks

import (
	"context"

	"appcheck-stub/core/authority"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of authority.Client
type Client struct {
	mock.Mock
}

func (m *Client) CreateToken(ctx context.Context, appID string, ttlMillis int64) (authority.Result, error) {
	args := m.Called(ctx, appID, ttlMillis)
	return args.Get(0).(authority.Result), args.Error(1)
}
