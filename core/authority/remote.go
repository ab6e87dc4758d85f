package authority

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Remote exchanges tokens against a real credential authority over HTTP.
type Remote struct {
	client    *retryablehttp.Client
	endpoint  string
	projectID string
	apiKey    string
}

// NewRemote creates a remote authority client based on the configuration.
func NewRemote(cfg Config) (*Remote, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("remote authority requires an endpoint")
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("invalid authority endpoint %q: %w", cfg.Endpoint, err)
	}

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Custom transport with strict timeouts so a dead authority fails the
	// request instead of holding the caller's connection forever.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Transport: transport, Timeout: timeoutDuration}
	client.RetryMax = cfg.MaxRetries
	client.Logger = nil

	return &Remote{
		client:    client,
		endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
		projectID: cfg.ProjectID,
		apiKey:    cfg.APIKey,
	}, nil
}

// mintRequest is the wire format of the exchange call.
type mintRequest struct {
	AppID     string `json:"appId"`
	TTLMillis int64  `json:"ttlMillis"`
}

// mintResponse is the wire format of the authority's answer. Some authority
// builds return the validity as a seconds string ("3600s") instead of
// milliseconds, so both fields are accepted.
type mintResponse struct {
	Token     string `json:"token"`
	TTLMillis int64  `json:"ttlMillis"`
	TTL       string `json:"ttl"`
}

// CreateToken exchanges an app id for a freshly minted token.
func (r *Remote) CreateToken(ctx context.Context, appID string, ttlMillis int64) (Result, error) {
	body, err := json.Marshal(mintRequest{AppID: appID, TTLMillis: ttlMillis})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode mint request: %w", err)
	}

	u := fmt.Sprintf("%s/v1/projects/%s/apps/%s:mintDebugToken?key=%s",
		r.endpoint, url.PathEscape(r.projectID), url.PathEscape(appID), url.QueryEscape(r.apiKey))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build mint request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("authority unreachable: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read authority response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("authority returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var minted mintResponse
	if err := json.Unmarshal(payload, &minted); err != nil {
		return Result{}, fmt.Errorf("malformed authority response: %w", err)
	}
	if minted.Token == "" {
		return Result{}, fmt.Errorf("authority response carried no token")
	}

	granted := minted.TTLMillis
	if granted == 0 && minted.TTL != "" {
		seconds, err := strconv.ParseInt(strings.TrimSuffix(minted.TTL, "s"), 10, 64)
		if err != nil {
			return Result{}, fmt.Errorf("malformed ttl %q in authority response: %w", minted.TTL, err)
		}
		granted = seconds * 1000
	}
	if granted <= 0 {
		return Result{}, fmt.Errorf("authority granted non-positive ttl %d", granted)
	}

	return Result{Token: minted.Token, TTLMillis: granted}, nil
}
