package obs_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/obs"
)

func TestRequestLoggerLevels(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		logger := obs.RequestLogger{Logger: zerolog.New(&buf)}
		handler := logger.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		req := httptest.NewRequest(http.MethodGet, "/word/concat", nil)
		req = withRoute(req, "/word/concat")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, tc.level, entry["level"])
		require.Equal(t, "/word/concat", entry["route"])
		require.EqualValues(t, tc.status, entry["status"])
		require.Equal(t, "http_request", entry["message"])
	}
}

func TestLogRequestErrorSkipsClientErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	req := httptest.NewRequest(http.MethodPost, "/dictionary/add", nil)

	obs.LogRequestError(logger, req, common.ValidationError("bad input", nil))
	require.Zero(t, buf.Len())

	obs.LogRequestError(logger, req, errors.New("database exploded"))
	require.Contains(t, buf.String(), "database exploded")
	require.Contains(t, buf.String(), `"level":"error"`)
}

func TestOutcome(t *testing.T) {
	require.Equal(t, "ok", obs.Outcome(nil))
	require.Equal(t, "not_found", obs.Outcome(common.NotFoundError("missing", nil)))
	require.Equal(t, "error", obs.Outcome(errors.New("boom")))
}
