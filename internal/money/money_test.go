package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"half rounds up", 10.555, 10.56},
		{"below half rounds down", 10.554, 10.55},
		{"smallest half", 0.005, 0.01},
		{"below smallest half", 0.004, 0},
		{"binary artefact", 2.675, 2.68},
		{"tax on 2.25 at 10%", 0.225, 0.23},
		{"total on 2.25 at 10%", 2.475, 2.48},
		{"already rounded", 1.5, 1.5},
		{"zero", 0, 0},
		{"integer", 42, 42},
		{"long tail", 1.23456789, 1.23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Round2(tt.in))
		})
	}
}

func TestFromFloatUsesShortestForm(t *testing.T) {
	require.Equal(t, "2.675", FromFloat(2.675).String())
	require.Equal(t, "0.1", FromFloat(0.1).String())
}

func TestRoundDecimalIsIdempotent(t *testing.T) {
	d := decimal.RequireFromString("3.14159")
	once := RoundDecimal(d)
	require.True(t, once.Equal(RoundDecimal(once)))
	require.Equal(t, "3.14", once.String())
}
