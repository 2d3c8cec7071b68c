package dictionary

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/obs"
)

// AddRequest is the body of POST /dictionary/add.
type AddRequest struct {
	Word       string `json:"word" validate:"required"`
	Definition string `json:"definition" validate:"required"`
}

// AddResponse confirms a stored word.
type AddResponse struct {
	Message    string `json:"message"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// DefinitionResponse is returned by GET /dictionary/{word}.
type DefinitionResponse struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
	Logger  zerolog.Logger
}

// Handler exposes dictionary endpoints.
type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{svc: cfg.Service, logger: cfg.Logger}
}

// Add handles POST /dictionary/add.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "dictionary service not configured", nil)
		return
	}
	var req AddRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.Validate(req, addHint); err != nil {
		common.WriteError(w, err)
		return
	}
	entry, err := h.svc.Add(r.Context(), req.Word, req.Definition)
	if err != nil {
		obs.LogRequestError(h.logger, r, err)
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, AddResponse{
		Message:    fmt.Sprintf("Word '%s' added successfully", entry.Word),
		Word:       entry.Word,
		Definition: entry.Definition,
	})
}

// Get handles GET /dictionary/{word}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "dictionary service not configured", nil)
		return
	}
	word := chi.URLParam(r, "word")
	// chi matches on RawPath when it is set, leaving the parameter escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(word); err == nil {
			word = unescaped
		}
	}
	entry, err := h.svc.Get(r.Context(), word)
	if err != nil {
		obs.LogRequestError(h.logger, r, err)
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, DefinitionResponse{Word: entry.Word, Definition: entry.Definition})
}
