package token_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"appcheck-stub/core/authority"
	"appcheck-stub/core/authority/mocks"
	"appcheck-stub/core/metrics"
	"appcheck-stub/feature/token"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, overrides token.Overrides, projectID string) (*fiber.App, *mocks.Client, *metrics.Metrics) {
	t.Helper()
	app := fiber.New()
	client := new(mocks.Client)
	m := metrics.New()
	feat := token.NewFeature(overrides, projectID, client, m, zap.NewNop())
	require.NoError(t, feat.Load(app))
	return app, client, m
}

func TestHandleExchange_Success(t *testing.T) {
	app, client, m := setupTestApp(t, token.Overrides{}, "p1")
	client.On("CreateToken", mock.Anything, "a1", mock.Anything).
		Return(authority.Result{Token: "tok123", TTLMillis: 1800000}, nil)

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"appId":"a1","projectId":"p1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "tok123", body["token"])
	assert.Equal(t, float64(1800000), body["ttlMillis"])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokensIssued))
}

func TestHandleExchange_PathIgnored(t *testing.T) {
	app, client, _ := setupTestApp(t, token.Overrides{}, "p1")
	client.On("CreateToken", mock.Anything, "a1", mock.Anything).
		Return(authority.Result{Token: "tok123", TTLMillis: 1800000}, nil)

	req := httptest.NewRequest("POST", "/some/ignored/path", strings.NewReader(`{"appId":"a1","projectId":"p1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandleExchange_ForcedResponse(t *testing.T) {
	overrides := token.Overrides{Response: &token.ForcedResponse{Code: 418, Reason: "I'm a teapot"}}
	app, client, _ := setupTestApp(t, overrides, "p1")

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	assert.Equal(t, 418, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
	client.AssertNotCalled(t, "CreateToken")
}

func TestHandleExchange_MethodNotAllowed(t *testing.T) {
	app, _, _ := setupTestApp(t, token.Overrides{}, "p1")

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 405, resp.StatusCode)
}

func TestHandleExchange_UnsupportedMediaType(t *testing.T) {
	app, _, _ := setupTestApp(t, token.Overrides{}, "p1")

	req := httptest.NewRequest("POST", "/", strings.NewReader("hello"))
	req.Header.Set("Content-Type", "text/plain")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 415, resp.StatusCode)
}

func TestHandleExchange_ProjectMismatchBody(t *testing.T) {
	app, _, _ := setupTestApp(t, token.Overrides{}, "other")

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"appId":"a1","projectId":"p1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "other")
	assert.Contains(t, string(body), "p1")
}

func TestHandleExchange_FormEncoded(t *testing.T) {
	app, client, _ := setupTestApp(t, token.Overrides{}, "p1")
	client.On("CreateToken", mock.Anything, "a1", mock.Anything).
		Return(authority.Result{Token: "tok123", TTLMillis: 1800000}, nil)

	req := httptest.NewRequest("POST", "/", strings.NewReader("appId=a1&projectId=p1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandleExchange_ForcedToken(t *testing.T) {
	ttl := int64(5000)
	app, client, _ := setupTestApp(t, token.Overrides{Token: "ftok", TTLMillis: &ttl}, "p1")

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"appId":"a1","projectId":"p1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"ftok","ttlMillis":5000}`, string(body))
	client.AssertNotCalled(t, "CreateToken")
}

func TestHandleExchange_AuthorityError(t *testing.T) {
	app, client, _ := setupTestApp(t, token.Overrides{}, "p1")
	client.On("CreateToken", mock.Anything, "a1", mock.Anything).
		Return(authority.Result{}, assert.AnError)

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"appId":"a1","projectId":"p1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), assert.AnError.Error())
}
