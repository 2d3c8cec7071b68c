package shopping

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/obs"
)

// Handler exposes the shopping calculator endpoints.
type Handler struct {
	calc    *Calculator
	metrics *obs.DomainMetrics
	logger  zerolog.Logger
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Calculator *Calculator
	Metrics    *obs.DomainMetrics
	Logger     zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{calc: cfg.Calculator, metrics: cfg.Metrics, logger: cfg.Logger}
}

// Total handles POST /shopping/total, accepting either payload format.
func (h *Handler) Total(w http.ResponseWriter, r *http.Request) {
	if h.calc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "shopping calculator not configured", nil)
		return
	}
	body, err := readBody(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	format, err := DetectFormat(body)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var req Request
	if format == FormatText {
		req, err = decodeText(body)
	} else {
		req, err = decodeStructured(body)
	}
	h.respond(w, r, format, req, err)
}

// TotalSimple handles POST /shopping/total-simple, which only accepts the
// freeform text format.
func (h *Handler) TotalSimple(w http.ResponseWriter, r *http.Request) {
	if h.calc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "shopping calculator not configured", nil)
		return
	}
	body, err := readBody(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	req, err := decodeText(body)
	h.respond(w, r, FormatText, req, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, format string, req Request, err error) {
	if err != nil {
		h.metrics.ObserveShopping(format, obs.Outcome(err), 0)
		obs.LogRequestError(h.logger, r, err)
		common.WriteError(w, err)
		return
	}
	result, err := h.calc.Calculate(req.Costs, req.Items, *req.Tax)
	h.metrics.ObserveShopping(format, obs.Outcome(err), len(result.ItemsNotFound))
	if err != nil {
		obs.LogRequestError(h.logger, r, err)
		common.WriteError(w, err)
		return
	}
	if len(result.ItemsNotFound) > 0 {
		h.logger.Warn().Strs("items_not_found", result.ItemsNotFound).Msg("some items were not found in costs")
	}
	common.JSON(w, http.StatusOK, result)
}

func decodeStructured(body []byte) (Request, error) {
	var req Request
	if err := common.DecodeBytes(body, &req); err != nil {
		return Request{}, err
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func decodeText(body []byte) (Request, error) {
	var req TextRequest
	if err := common.DecodeBytes(body, &req); err != nil {
		return Request{}, err
	}
	return req.Structured()
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, common.NewAppError(common.CodeBadRequest, "request body is required", http.StatusBadRequest, nil)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, common.NewAppError(common.CodeBadRequest, "invalid request body", http.StatusBadRequest, err)
	}
	return body, nil
}
