package shopping

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/money"
)

// Result is the priced breakdown of a cart.
type Result struct {
	Subtotal      float64  `json:"subtotal"`
	TaxAmount     float64  `json:"tax_amount"`
	Total         float64  `json:"total"`
	ItemsFound    []string `json:"items_found"`
	ItemsNotFound []string `json:"items_not_found"`
	ItemsCount    int      `json:"items_count"`
}

// Calculator prices carts against a CostTable.
type Calculator struct {
	logger zerolog.Logger
}

// NewCalculator constructs a Calculator logging through logger.
func NewCalculator(logger zerolog.Logger) *Calculator {
	return &Calculator{logger: logger.With().Str("component", "shopping").Logger()}
}

// Calculate prices items against costs and applies taxRate. Amounts are
// accumulated as float64 and only the reported subtotal, tax and total are
// rounded, each on its own, so total can differ from subtotal+tax_amount by
// one cent.
func (c *Calculator) Calculate(costs CostTable, items []string, taxRate float64) (Result, error) {
	if math.IsNaN(taxRate) || taxRate < 0 || taxRate > 1 {
		return Result{}, common.ValidationError(fmt.Sprintf("tax must be between 0 and 1, got %v", taxRate), nil).
			WithDetails(map[string]any{"hint": "Use a decimal rate such as 0.1 for 10%."})
	}

	subtotal := 0.0
	found := make([]string, 0, len(items))
	notFound := make([]string, 0)
	for _, item := range items {
		name := strings.TrimSpace(item)
		if name == "" {
			continue
		}
		price, ok := costs[name]
		if !ok {
			notFound = append(notFound, name)
			c.logger.Warn().Str("item", name).Int("known_items", len(costs)).Msg("item not found in costs")
			continue
		}
		subtotal += price
		found = append(found, name)
	}
	if len(found)+len(notFound) == 0 {
		return Result{}, common.ValidationError("items list cannot contain only empty strings", nil).
			WithDetails(map[string]any{"hint": "Provide at least one non-empty item."})
	}

	tax := subtotal * taxRate
	total := subtotal + tax

	result := Result{
		Subtotal:      money.Round2(subtotal),
		TaxAmount:     money.Round2(tax),
		Total:         money.Round2(total),
		ItemsFound:    found,
		ItemsNotFound: notFound,
		ItemsCount:    len(found) + len(notFound),
	}
	c.logger.Debug().
		Float64("subtotal", result.Subtotal).
		Float64("tax_amount", result.TaxAmount).
		Float64("total", result.Total).
		Int("items_found", len(found)).
		Int("items_not_found", len(notFound)).
		Msg("calculated shopping total")
	return result, nil
}
