package token

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"appcheck-stub/core/authority"

	"go.uber.org/zap"
)

// DefaultTTL is the validity requested from the authority and reported for
// forced tokens when no TTL override is configured.
const DefaultTTL = 30 * time.Minute

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeText = "text/plain"
)

// Request is one buffered HTTP request as seen by the dispatcher.
type Request struct {
	Method      string
	ContentType string
	Body        []byte
}

// Response is the single response produced for a request. Header always
// carries the permissive CORS allow-origin header.
type Response struct {
	Status      int
	Reason      string
	ContentType string
	Body        []byte
	Header      map[string]string
}

// Service maps requests to responses. It holds no per-request state; the
// whole pipeline is synchronous except for the single authority call on the
// success path.
type Service struct {
	overrides Overrides
	projectID string
	authority authority.Client
	logger    *zap.Logger
}

// NewService creates the token dispatch service. projectID is the server's
// resolved project id; when empty, the request cross-check is skipped.
func NewService(overrides Overrides, projectID string, client authority.Client, logger *zap.Logger) *Service {
	return &Service{
		overrides: overrides,
		projectID: projectID,
		authority: client,
		logger:    logger,
	}
}

// Dispatch runs the validation pipeline and produces exactly one response.
// The credential authority is called at most once, only when every check
// passed and no forced token is configured.
func (s *Service) Dispatch(ctx context.Context, req Request) Response {
	s.logger.Info("request received",
		zap.String("method", req.Method),
		zap.String("content_type", req.ContentType),
		zap.Int("body_bytes", len(req.Body)),
	)

	res := s.handle(ctx, req)

	if res.Status >= http.StatusBadRequest {
		s.logger.Warn("request rejected",
			zap.Int("status", res.Status),
			zap.String("cause", strings.TrimSpace(string(res.Body))),
		)
	} else {
		s.logger.Info("request completed", zap.Int("status", res.Status))
	}
	return res
}

func (s *Service) handle(ctx context.Context, req Request) Response {
	// The forced response wins over everything, before even the method
	// check, and is the only branch that needs no body.
	if fr := s.overrides.Response; fr != nil {
		return forced(fr.Code, fr.Reason,
			fmt.Sprintf("Forced response override is active: %d %s.", fr.Code, fr.Reason))
	}

	if req.Method != http.MethodPost {
		return plain(http.StatusMethodNotAllowed,
			fmt.Sprintf("Method %s is not allowed; only POST is accepted.", req.Method))
	}

	mediaType := req.ContentType
	if parsed, _, err := mime.ParseMediaType(req.ContentType); err == nil {
		mediaType = parsed
	}
	if mediaType != contentTypeJSON && mediaType != contentTypeForm {
		return plain(http.StatusUnsupportedMediaType,
			fmt.Sprintf("Unsupported content type %q; expected %s or %s.",
				req.ContentType, contentTypeJSON, contentTypeForm))
	}

	if !utf8.Valid(req.Body) {
		return plain(http.StatusBadRequest, "Request body is not valid UTF-8 text.")
	}

	fields, errRes, ok := parseBody(mediaType, req.Body)
	if !ok {
		return errRes
	}

	appID, errRes, ok := requireString(fields, "appId")
	if !ok {
		return errRes
	}
	projectID, errRes, ok := requireString(fields, "projectId")
	if !ok {
		return errRes
	}

	if s.projectID != "" && projectID != s.projectID {
		return plain(http.StatusBadRequest,
			fmt.Sprintf("Project id mismatch: expected %q, got %q.", s.projectID, projectID))
	}

	requested := DefaultTTL.Milliseconds()

	if s.overrides.Token != "" {
		ttl := requested
		if s.overrides.TTLMillis != nil {
			ttl = *s.overrides.TTLMillis
		}
		return success(s.overrides.Token, ttl)
	}

	minted, err := s.authority.CreateToken(ctx, appID, requested)
	if err != nil {
		return plain(http.StatusInternalServerError, err.Error())
	}

	ttl := minted.TTLMillis
	if s.overrides.TTLMillis != nil {
		ttl = *s.overrides.TTLMillis
	}
	return success(minted.Token, ttl)
}

// parseBody decodes the buffered body into the flat field map the checks
// run against. JSON and form bodies end up in the same shape so the choice
// of encoding cannot change the validation outcome.
func parseBody(mediaType string, body []byte) (map[string]any, Response, bool) {
	if mediaType == contentTypeJSON {
		var parsed any
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, plain(http.StatusBadRequest,
				fmt.Sprintf("Request body is not valid JSON: %v.", err)), false
		}
		obj, isObject := parsed.(map[string]any)
		if !isObject {
			return nil, plain(http.StatusBadRequest,
				fmt.Sprintf("Request body must be a JSON object, got %s.", jsonTypeName(parsed))), false
		}
		return obj, Response{}, true
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, plain(http.StatusBadRequest,
			fmt.Sprintf("Request body is not a valid form encoding: %v.", err)), false
	}

	// Only the two known keys are projected; absent keys stay absent
	// rather than becoming empty strings.
	fields := make(map[string]any)
	for _, key := range []string{"appId", "projectId"} {
		if vs, present := values[key]; present && len(vs) > 0 {
			fields[key] = vs[0]
		}
	}
	return fields, Response{}, true
}

// requireString checks presence and type of one field.
func requireString(fields map[string]any, name string) (string, Response, bool) {
	value, present := fields[name]
	if !present {
		return "", plain(http.StatusBadRequest,
			fmt.Sprintf("Missing required field %q; present fields: %s.", name, presentFields(fields))), false
	}
	str, isString := value.(string)
	if !isString {
		return "", plain(http.StatusBadRequest,
			fmt.Sprintf("Field %q must be a string, got %s.", name, jsonTypeName(value))), false
	}
	return str, Response{}, true
}

// presentFields renders the sorted list of fields a body actually carried.
func presentFields(fields map[string]any) string {
	if len(fields) == 0 {
		return "none"
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// jsonTypeName names the JSON type of a decoded value for error messages.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func corsHeader() map[string]string {
	return map[string]string{"Access-Control-Allow-Origin": "*"}
}

func plain(status int, sentence string) Response {
	return forced(status, http.StatusText(status), sentence)
}

func forced(status int, reason, sentence string) Response {
	return Response{
		Status:      status,
		Reason:      reason,
		ContentType: contentTypeText,
		Body:        []byte(sentence),
		Header:      corsHeader(),
	}
}

// mintedToken is the success payload.
type mintedToken struct {
	Token     string `json:"token"`
	TTLMillis int64  `json:"ttlMillis"`
}

func success(tok string, ttlMillis int64) Response {
	body, _ := json.Marshal(mintedToken{Token: tok, TTLMillis: ttlMillis})
	return Response{
		Status:      http.StatusOK,
		Reason:      http.StatusText(http.StatusOK),
		ContentType: contentTypeJSON,
		Body:        body,
		Header:      corsHeader(),
	}
}
