package shopping

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/noah-isme/devtools-playground/internal/common"
)

func TestParseCosts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  CostTable
	}{
		{name: "json object", input: `{"a":1.5}`, want: CostTable{"a": 1.5}},
		{name: "json with whitespace", input: "  {\"apple\": 1.50, \"banana\": 0.75}\n", want: CostTable{"apple": 1.5, "banana": 0.75}},
		{name: "json zero price", input: `{"free": 0}`, want: CostTable{"free": 0}},
		{name: "comma pairs", input: "a: 1.5, b: 0.75", want: CostTable{"a": 1.5, "b": 0.75}},
		{name: "mixed separators", input: "a:1;b:2\nc:3", want: CostTable{"a": 1, "b": 2, "c": 3}},
		{name: "last write wins", input: "a: 1, a: 2", want: CostTable{"a": 2}},
		{name: "noise lines skipped", input: "a: 1, noise, b: 2", want: CostTable{"a": 1, "b": 2}},
		{name: "first colon splits", input: "ratio: 2", want: CostTable{"ratio": 2}},
		{name: "names keep case", input: "Apple: 1, apple: 2", want: CostTable{"Apple": 1, "apple": 2}},
		{name: "blank name skipped", input: ": 3, a: 1", want: CostTable{"a": 1}},
		{name: "invalid json falls through", input: "{oops\na: 4", want: CostTable{"a": 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCosts(tc.input)
			if err != nil {
				t.Fatalf("ParseCosts(%q) returned error: %v", tc.input, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ParseCosts(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestParseCostsErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    string
		message string
	}{
		{name: "empty", input: "   ", code: common.CodeValidation, message: "costs input cannot be empty"},
		{name: "negative delimited", input: "a: -1", code: common.CodeParse, message: "cost for 'a' cannot be negative: -1"},
		{name: "garbage", input: "garbage", code: common.CodeParse, message: "could not parse costs input: neither JSON nor delimited key:value format was recognized"},
		{name: "bad price", input: "a: abc", code: common.CodeParse, message: "invalid price format for 'a': 'abc'. Must be a number."},
		{name: "infinite price", input: "a: inf", code: common.CodeParse, message: "invalid price format for 'a': 'inf'. Must be a number."},
		{name: "json negative", input: `{"a": -2}`, code: common.CodeParse, message: "cost for 'a' cannot be negative: -2"},
		{name: "json string value", input: `{"a": "cheap"}`, code: common.CodeParse, message: "cost for 'a' must be a number, got: cheap"},
		{name: "json empty object", input: `{}`, code: common.CodeParse, message: "costs input must contain at least one item"},
		{name: "json extra brace", input: `{"a":1}}`, code: common.CodeParse, message: `invalid price format for '{"a"': '1}}'. Must be a number.`},
		{name: "json extra bracket", input: `{"a":1}]`, code: common.CodeParse, message: `invalid price format for '{"a"': '1}]'. Must be a number.`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCosts(tc.input)
			if err == nil {
				t.Fatalf("ParseCosts(%q) expected error", tc.input)
			}
			var appErr *common.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != tc.code {
				t.Fatalf("code = %s, want %s", appErr.Code, tc.code)
			}
			if appErr.Message != tc.message {
				t.Fatalf("message = %q, want %q", appErr.Message, tc.message)
			}
			if tc.code == common.CodeParse && !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse in chain: %v", err)
			}
		})
	}
}

func TestParseCostsReportsFragment(t *testing.T) {
	_, err := ParseCosts("apple: 1.50, pear: x")
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	details, ok := appErr.Details.(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", appErr.Details)
	}
	if details["fragment"] != "pear: x" {
		t.Fatalf("fragment = %v", details["fragment"])
	}
	if details["hint"] == "" {
		t.Fatalf("expected hint")
	}
}

func TestParseItems(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "a, b, c", want: []string{"a", "b", "c"}},
		{input: "a\nb\nc", want: []string{"a", "b", "c"}},
		{input: "a b c", want: []string{"a", "b", "c"}},
		{input: "a", want: []string{"a"}},
		{input: "  apple  ", want: []string{"apple"}},
		{input: "a,,b", want: []string{"a", "b"}},
		{input: "green apple, pear", want: []string{"green apple", "pear"}},
		{input: "green apple\npear", want: []string{"green apple", "pear"}},
		{input: "a\tb", want: []string{"a", "b"}},
		{input: "apple, apple", want: []string{"apple", "apple"}},
	}
	for _, tc := range tests {
		got, err := ParseItems(tc.input)
		if err != nil {
			t.Fatalf("ParseItems(%q) returned error: %v", tc.input, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("ParseItems(%q) mismatch (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestParseItemsErrors(t *testing.T) {
	if _, err := ParseItems(""); !common.HasCode(err, common.CodeValidation) {
		t.Fatalf("expected validation error for empty input, got %v", err)
	}
	_, err := ParseItems(" , , ")
	if !common.HasCode(err, common.CodeParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse in chain")
	}
}
