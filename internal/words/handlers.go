package words

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/obs"
)

// ConcatRequest is the body of POST /word/concat.
type ConcatRequest struct {
	Words []string `json:"words" validate:"required,min=1"`
}

// Handler exposes the word utilities over HTTP.
type Handler struct {
	metrics *obs.DomainMetrics
	logger  zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(metrics *obs.DomainMetrics, logger zerolog.Logger) *Handler {
	return &Handler{metrics: metrics, logger: logger.With().Str("component", "words").Logger()}
}

// Concat handles POST /word/concat.
func (h *Handler) Concat(w http.ResponseWriter, r *http.Request) {
	var req ConcatRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.Validate(req, concatHint); err != nil {
		h.metrics.ObserveConcat(obs.Outcome(err))
		common.WriteError(w, err)
		return
	}
	res, err := Concat(req.Words)
	h.metrics.ObserveConcat(obs.Outcome(err))
	if err != nil {
		obs.LogRequestError(h.logger, r, err)
		common.WriteError(w, err)
		return
	}
	if res.CharactersSkipped > 0 {
		h.logger.Warn().
			Int("characters_skipped", res.CharactersSkipped).
			Int("words", len(res.Words)).
			Msg("some words were too short for their position")
	}
	common.JSON(w, http.StatusOK, res)
}
