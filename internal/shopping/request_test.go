package shopping

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/devtools-playground/internal/common"
)

func ptr[T any](v T) *T { return &v }

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat([]byte(`{"costs":{"a":1},"items":["a"],"tax":0}`))
	require.NoError(t, err)
	require.Equal(t, FormatStructured, format)

	format, err = DetectFormat([]byte(`{"costs_input":"a: 1","tax":0}`))
	require.NoError(t, err)
	require.Equal(t, FormatText, format)

	format, err = DetectFormat([]byte(`{"items_input":"a"}`))
	require.NoError(t, err)
	require.Equal(t, FormatText, format)

	_, err = DetectFormat([]byte(`["a"]`))
	require.True(t, common.HasCode(err, common.CodeBadRequest))
}

func TestRequestValidate(t *testing.T) {
	valid := Request{Costs: CostTable{"a": 1}, Items: []string{"a"}, Tax: ptr(0.1)}
	require.NoError(t, valid.Validate())

	cases := map[string]Request{
		"missing costs":   {Items: []string{"a"}, Tax: ptr(0.1)},
		"empty costs":     {Costs: CostTable{}, Items: []string{"a"}, Tax: ptr(0.1)},
		"missing items":   {Costs: CostTable{"a": 1}, Tax: ptr(0.1)},
		"missing tax":     {Costs: CostTable{"a": 1}, Items: []string{"a"}},
		"tax above one":   {Costs: CostTable{"a": 1}, Items: []string{"a"}, Tax: ptr(1.01)},
		"negative tax":    {Costs: CostTable{"a": 1}, Items: []string{"a"}, Tax: ptr(-0.5)},
		"negative cost":   {Costs: CostTable{"a": 1, "b": -2}, Items: []string{"a"}, Tax: ptr(0.1)},
		"only blank item": {Costs: CostTable{"a": 1}, Items: []string{"  "}, Tax: ptr(0.1)},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			err := req.Validate()
			require.Error(t, err)
			require.True(t, common.HasCode(err, common.CodeValidation), "got %v", err)
		})
	}
}

func TestRequestValidateNamesNegativeCost(t *testing.T) {
	req := Request{Costs: CostTable{"b": -2}, Items: []string{"b"}, Tax: ptr(0.0)}
	err := req.Validate()
	require.EqualError(t, err, "cost for 'b' cannot be negative: -2")
}

func TestTextRequestStructured(t *testing.T) {
	text := TextRequest{
		CostsInput: ptr("apple: 1.50\nbanana: 0.75"),
		ItemsInput: ptr("apple, banana, kiwi"),
		Tax:        ptr(0.1),
	}
	req, err := text.Structured()
	require.NoError(t, err)
	require.Equal(t, CostTable{"apple": 1.5, "banana": 0.75}, req.Costs)
	require.Equal(t, []string{"apple", "banana", "kiwi"}, req.Items)
	require.Equal(t, 0.1, *req.Tax)

	_, err = TextRequest{ItemsInput: ptr("a"), Tax: ptr(0.1)}.Structured()
	require.True(t, common.HasCode(err, common.CodeValidation))

	_, err = TextRequest{CostsInput: ptr("nothing useful"), ItemsInput: ptr("a"), Tax: ptr(0.1)}.Structured()
	require.True(t, common.HasCode(err, common.CodeParse))
}
