package token

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Config holds the raw operator overrides for the token endpoint.
// The strings come straight from the environment; Resolve validates them
// once at startup, before the server accepts connections.
type Config struct {
	// ForcedStatus makes the server answer every request with this status,
	// given as a numeric code ("418") or a reason phrase ("I'm a teapot").
	ForcedStatus string `mapstructure:"forced_status" default:""`
	// ForcedToken makes the server issue this exact token without calling
	// the credential authority.
	ForcedToken string `mapstructure:"forced_token" default:""`
	// ForcedTTL overrides the validity reported to callers, given as a Go
	// duration ("30m", "5s") or a bare millisecond count ("5000").
	ForcedTTL string `mapstructure:"forced_ttl" default:""`
}

// ForcedResponse is a resolved status override. When active it takes
// precedence over every other check for every request.
type ForcedResponse struct {
	Code   int
	Reason string
}

// Overrides are the validated operator overrides.
type Overrides struct {
	// Response, when set, short-circuits all request handling.
	Response *ForcedResponse
	// Token, when non-empty, is issued instead of minting one.
	Token string
	// TTLMillis, when set, replaces the granted validity in responses.
	TTLMillis *int64
}

// Resolve validates the raw override strings. A malformed override is a
// configuration error and must abort startup.
func (c Config) Resolve() (Overrides, error) {
	var ov Overrides

	response, err := resolveStatus(c.ForcedStatus)
	if err != nil {
		return Overrides{}, err
	}
	ov.Response = response

	ttl, err := resolveTTL(c.ForcedTTL)
	if err != nil {
		return Overrides{}, err
	}
	ov.TTLMillis = ttl

	ov.Token = c.ForcedToken
	return ov, nil
}

// resolveStatus accepts either a numeric status code or a reason phrase and
// computes the other half from the known HTTP status table.
func resolveStatus(raw string) (*ForcedResponse, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if code, err := strconv.Atoi(raw); err == nil {
		reason := http.StatusText(code)
		if reason == "" {
			return nil, fmt.Errorf("forced status %d is not a known HTTP status code", code)
		}
		return &ForcedResponse{Code: code, Reason: reason}, nil
	}

	for code := 100; code < 600; code++ {
		if reason := http.StatusText(code); reason != "" && strings.EqualFold(reason, raw) {
			return &ForcedResponse{Code: code, Reason: reason}, nil
		}
	}
	return nil, fmt.Errorf("forced status %q matches no known HTTP reason phrase", raw)
}

// resolveTTL parses the forced TTL as a duration or a millisecond count.
func resolveTTL(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var millis int64
	if d, err := time.ParseDuration(raw); err == nil {
		millis = d.Milliseconds()
	} else if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		millis = n
	} else {
		return nil, fmt.Errorf("forced ttl %q is neither a duration nor a millisecond count", raw)
	}

	if millis < 0 {
		return nil, fmt.Errorf("forced ttl must not be negative, got %dms", millis)
	}
	return &millis, nil
}
