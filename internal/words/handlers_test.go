package words_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/obs"
	"github.com/noah-isme/devtools-playground/internal/words"
)

func TestConcatHandler(t *testing.T) {
	metrics := obs.NewDomainMetrics("test", prometheus.NewRegistry())
	handler := words.NewHandler(metrics, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/word/concat", strings.NewReader(`{"words":["hello","world","test"]}`))
	rec := httptest.NewRecorder()
	handler.Concat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"result":"hos","words":["hello","world","test"],"characters_extracted":3,"characters_skipped":0}`, rec.Body.String())
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.WordConcat.WithLabelValues("ok")))
}

func TestConcatHandlerErrors(t *testing.T) {
	handler := words.NewHandler(nil, zerolog.Nop())

	cases := map[string]string{
		"missing words": `{}`,
		"empty list":    `{"words":[]}`,
		"blank word":    `{"words":["a",""]}`,
		"wrong type":    `{"words":"abc"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/word/concat", strings.NewReader(body))
			rec := httptest.NewRecorder()
			handler.Concat(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error common.ErrorBody `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, common.CodeValidation, resp.Error.Code)
		})
	}
}
