package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/notifyschema/internal/metrics"
	"github.com/sumire/notifyschema/internal/schema"
	"github.com/sumire/notifyschema/internal/service"
	"github.com/sumire/notifyschema/internal/validation"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *APIError       `json:"error"`
}

func newTestRouter(t *testing.T, tokens *service.TokenService) *echo.Echo {
	t.Helper()

	reg := prometheus.NewRegistry()
	m, err := metrics.NewValidationMetrics(reg)
	require.NoError(t, err)

	tracker := validation.NewChannelTracker(validation.NewMemoryChannelStore(), nil)
	return NewRouter(RouterConfig{
		Validator: validation.New(schema.Default(),
			validation.WithChannelTracker(tracker),
			validation.WithRecorder(m),
		),
		Registry: schema.Default(),
		Tracker:  tracker,
		Tokens:   tokens,
		Gatherer: reg,
	})
}

func do(t *testing.T, e *echo.Echo, method, path, body string, header http.Header) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec, _ := do(t, newTestRouter(t, nil), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestValidateNotification_OK(t *testing.T) {
	t.Parallel()

	rec, env := do(t, newTestRouter(t, nil), http.MethodPost, "/api/v1/notifications/android/validate",
		`{"channelId": "chat", "smallIcon": "ic", "progress": {"max": 10, "current": 1}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	var opts map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	assert.Equal(t, "chat", opts["channelId"])
	assert.Equal(t, true, opts["autoCancel"])
	assert.Equal(t, float64(0), opts["priority"])
	assert.Equal(t, "ic", opts["smallIcon"])
}

func TestValidateNotification_ReportsEveryViolation(t *testing.T) {
	t.Parallel()

	rec, env := do(t, newTestRouter(t, nil), http.MethodPost, "/api/v1/notifications/android/validate",
		`{"autoCancel": 1, "lights": ["red", 1], "progress": {"max": 1, "current": 2}, "style": {"type": 4}}`, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)

	byField := make(map[string]FieldError)
	for _, d := range env.Error.Details {
		byField[d.Field] = d
	}
	require.Len(t, byField, 4)
	assert.Equal(t, "type_mismatch", byField["autoCancel"].Code)
	assert.Equal(t, "unknown_style_variant", byField["style.type"].Code)
	assert.Equal(t, "lights-arity", byField["lights"].Rule)
	assert.Equal(t, "progress-ordering", byField["progress.max"].Rule)
}

func TestValidateByKind(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, nil)

	rec, env := do(t, e, http.MethodPost, "/api/v1/validate/channel-group", `{"channelGroupId": "g", "name": "G"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"channelGroupId": "g", "name": "G"}`, string(env.Data))

	rec, env = do(t, e, http.MethodPost, "/api/v1/validate/ios-options", `{}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "unknown_kind", env.Error.Code)
}

func TestValidateEnvelope(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, nil)

	rec, env := do(t, e, http.MethodPost, "/api/v1/validate",
		`{"kind": "style", "payload": {"type": 1, "text": "hello"}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"type": 1, "text": "hello"}`, string(env.Data))

	rec, env = do(t, e, http.MethodPost, "/api/v1/validate", `{"payload": {}}`, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	require.Len(t, env.Error.Details, 1)
	assert.Equal(t, "kind", env.Error.Details[0].Field)
	assert.Equal(t, "missing_field", env.Error.Details[0].Code)
}

func TestValidate_BadBody(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, nil)

	rec, _ := do(t, e, http.MethodPost, "/api/v1/channels/validate", `{"channelId":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := do(t, e, http.MethodPost, "/api/v1/channels/validate", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_input", env.Error.Code)
}

func TestChannelTracking(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, nil)

	rec, _ := do(t, e, http.MethodGet, "/api/v1/channels/alerts", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, e, http.MethodPost, "/api/v1/channels/validate",
		`{"channelId": "alerts", "name": "Alerts", "importance": 4}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env := do(t, e, http.MethodPost, "/api/v1/channels/validate",
		`{"channelId": "alerts", "name": "Alerts", "importance": 1}`, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	require.Len(t, env.Error.Details, 1)
	assert.Equal(t, FieldError{
		Field:    "importance",
		Code:     "immutable_field_conflict",
		Expected: "4",
		Actual:   "1",
		Message:  env.Error.Details[0].Message,
	}, env.Error.Details[0])

	rec, env = do(t, e, http.MethodGet, "/api/v1/channels/alerts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var record struct {
		ChannelID  string `json:"channel_id"`
		Importance int    `json:"importance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &record))
	assert.Equal(t, "alerts", record.ChannelID)
	assert.Equal(t, 4, record.Importance)
}

func TestSchemaRoutes(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, nil)

	rec, env := do(t, e, http.MethodGet, "/api/v1/kinds", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var kinds []string
	require.NoError(t, json.Unmarshal(env.Data, &kinds))
	assert.Contains(t, kinds, "notification-android-options")
	assert.Contains(t, kinds, "channel")

	rec, env = do(t, e, http.MethodGet, "/api/v1/schema/channel", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"immutable":true`)

	rec, env = do(t, e, http.MethodGet, "/api/v1/schema/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_kind", env.Error.Code)
}

func TestJWTAuth(t *testing.T) {
	t.Parallel()

	tokens := service.NewTokenService(testSecret, time.Hour)
	e := newTestRouter(t, tokens)

	rec, env := do(t, e, http.MethodGet, "/api/v1/kinds", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", env.Error.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/v1/kinds", "", http.Header{"Authorization": {"Bearer not-a-token"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/v1/kinds", "", http.Header{"Authorization": {"Basic abc"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := tokens.IssueToken("ci-pipeline")
	require.NoError(t, err)
	rec, _ = do(t, e, http.MethodGet, "/api/v1/kinds", "", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "health stays public")
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, nil)
	do(t, e, http.MethodPost, "/api/v1/channel-groups/validate", `{"name": "G"}`, nil)

	rec, _ := do(t, e, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `notifyschema_validations_total{kind="channel-group",result="invalid"} 1`)
	assert.Contains(t, body, `notifyschema_violations_total{code="missing_field",kind="channel-group"} 1`)
}
