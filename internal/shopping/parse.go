package shopping

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/textnorm"
)

// ErrParse marks failures to interpret freeform cost or item text.
var ErrParse = errors.New("shopping: unrecognised input format")

// errNotApplicable tells the cost parser chain to try the next format.
var errNotApplicable = errors.New("format not applicable")

const (
	costsHint = "Use 'item: price' pairs separated by commas, semicolons or newlines, or a JSON object such as {\"apple\": 1.50}."
	itemsHint = "Separate items with commas, newlines or spaces."
)

// CostTable maps item names, as typed, to non-negative unit prices.
type CostTable map[string]float64

var costLineSeparators = regexp.MustCompile(`[,;\n]`)

type costFormat struct {
	name  string
	parse func(string) (CostTable, error)
}

// costFormats is tried in order; the first success wins.
var costFormats = []costFormat{
	{name: "json", parse: parseCostsJSON},
	{name: "delimited", parse: parseCostsDelimited},
}

// ParseCosts converts freeform cost text into a CostTable.
func ParseCosts(input string) (CostTable, error) {
	trimmed, err := textnorm.Normalize(input)
	if err != nil {
		return nil, common.ValidationError("costs input cannot be empty", err).
			WithDetails(map[string]any{"hint": costsHint})
	}
	var last error
	for _, format := range costFormats {
		table, err := format.parse(trimmed)
		if err == nil {
			return table, nil
		}
		if !errors.Is(err, errNotApplicable) {
			return nil, err
		}
		last = err
	}
	return nil, common.ParseError(
		"could not parse costs input: neither JSON nor delimited key:value format was recognized",
		errors.Join(ErrParse, last),
	).WithDetails(map[string]any{"fragment": truncate(trimmed), "hint": costsHint})
}

// parseCostsJSON handles a JSON object of numeric prices. Invalid JSON is
// not applicable; invalid values are hard failures.
func parseCostsJSON(input string) (CostTable, error) {
	if !strings.HasPrefix(input, "{") {
		return nil, errNotApplicable
	}
	var raw map[string]any
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotApplicable, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", errNotApplicable)
	}
	table := make(CostTable, len(raw))
	for name, value := range raw {
		num, ok := value.(json.Number)
		if !ok {
			return nil, costError(name, fmt.Sprintf("cost for '%s' must be a number, got: %v", name, value))
		}
		price, err := num.Float64()
		if err != nil || math.IsInf(price, 0) || math.IsNaN(price) {
			return nil, costError(name, fmt.Sprintf("cost for '%s' must be a finite number, got: %s", name, num))
		}
		if price < 0 {
			return nil, costError(name, fmt.Sprintf("cost for '%s' cannot be negative: %s", name, num))
		}
		table[name] = price
	}
	if len(table) == 0 {
		return nil, common.ParseError("costs input must contain at least one item", ErrParse).
			WithDetails(map[string]any{"fragment": input, "hint": costsHint})
	}
	return table, nil
}

// parseCostsDelimited handles "name: price" pairs split on commas,
// semicolons and newlines. Lines without a colon are ignored.
func parseCostsDelimited(input string) (CostTable, error) {
	table := CostTable{}
	for _, line := range costLineSeparators.Split(input, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, priceText, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		priceText = strings.TrimSpace(priceText)
		if name == "" || priceText == "" {
			continue
		}
		price, err := strconv.ParseFloat(priceText, 64)
		if err != nil || math.IsInf(price, 0) || math.IsNaN(price) {
			return nil, costError(line, fmt.Sprintf("invalid price format for '%s': '%s'. Must be a number.", name, priceText))
		}
		if price < 0 {
			return nil, costError(line, fmt.Sprintf("cost for '%s' cannot be negative: %s", name, priceText))
		}
		table[name] = price
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no 'name: price' pairs found", errNotApplicable)
	}
	return table, nil
}

// ParseItems converts freeform item text into an ordered list of names.
// Delimiters are tried in order: comma, newline, whitespace.
func ParseItems(input string) ([]string, error) {
	trimmed, err := textnorm.Normalize(input)
	if err != nil {
		return nil, common.ValidationError("items input cannot be empty", err).
			WithDetails(map[string]any{"hint": itemsHint})
	}
	var tokens []string
	switch {
	case strings.Contains(trimmed, ","):
		tokens = strings.Split(trimmed, ",")
	case strings.Contains(trimmed, "\n"):
		tokens = strings.Split(trimmed, "\n")
	case len(strings.Fields(trimmed)) > 1:
		tokens = strings.Fields(trimmed)
	default:
		tokens = []string{trimmed}
	}
	items := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token = strings.TrimSpace(token); token != "" {
			items = append(items, token)
		}
	}
	if len(items) == 0 {
		return nil, common.ParseError("at least one item is required", ErrParse).
			WithDetails(map[string]any{"fragment": truncate(trimmed), "hint": itemsHint})
	}
	return items, nil
}

func costError(fragment, message string) error {
	return common.ParseError(message, ErrParse).
		WithDetails(map[string]any{"fragment": truncate(fragment), "hint": costsHint})
}

func truncate(s string) string {
	const limit = 120
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
