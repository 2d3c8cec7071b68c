package shopping

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/textnorm"
)

// Input formats accepted by POST /shopping/total.
const (
	FormatStructured = "structured"
	FormatText       = "text"
)

const (
	structuredHint = "Ensure costs are non-negative, tax is between 0 and 1, and items list is not empty."
	textHint       = "For costs, use format: 'item: price' (one per line or comma-separated). For items, use comma, newline, or space separated values."
)

// Request is the structured cart payload.
type Request struct {
	Costs CostTable `json:"costs" validate:"required,min=1"`
	Items []string  `json:"items" validate:"required,min=1"`
	Tax   *float64  `json:"tax" validate:"required,gte=0,lte=1"`
}

// TextRequest is the freeform cart payload.
type TextRequest struct {
	CostsInput *string  `json:"costs_input" validate:"required"`
	ItemsInput *string  `json:"items_input" validate:"required"`
	Tax        *float64 `json:"tax" validate:"required,gte=0,lte=1"`
}

// Validate checks the structured payload, including per-item rules the
// struct tags cannot express.
func (r Request) Validate() error {
	if err := common.Validate(r, structuredHint); err != nil {
		return err
	}
	names := make([]string, 0, len(r.Costs))
	for name := range r.Costs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if cost := r.Costs[name]; cost < 0 {
			return common.ValidationError(fmt.Sprintf("cost for '%s' cannot be negative: %v", name, cost), nil).
				WithDetails(map[string]any{"item": name, "hint": structuredHint})
		}
	}
	for _, item := range r.Items {
		if !textnorm.IsBlank(item) {
			return nil
		}
	}
	return common.ValidationError("items list cannot contain only empty strings", nil).
		WithDetails(map[string]any{"hint": structuredHint})
}

// Structured parses the freeform inputs into a validated Request.
func (t TextRequest) Structured() (Request, error) {
	if err := common.Validate(t, textHint); err != nil {
		return Request{}, err
	}
	costs, err := ParseCosts(*t.CostsInput)
	if err != nil {
		return Request{}, err
	}
	items, err := ParseItems(*t.ItemsInput)
	if err != nil {
		return Request{}, err
	}
	req := Request{Costs: costs, Items: items, Tax: t.Tax}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// DetectFormat reports which payload shape body carries. The text format is
// chosen when either costs_input or items_input is present.
func DetectFormat(body []byte) (string, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", common.NewAppError(common.CodeBadRequest, "request body must be a JSON object", http.StatusBadRequest, err)
	}
	_, hasCosts := probe["costs_input"]
	_, hasItems := probe["items_input"]
	if hasCosts || hasItems {
		return FormatText, nil
	}
	return FormatStructured, nil
}
