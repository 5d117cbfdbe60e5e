package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGweiDecimal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    *big.Int
		wantErr bool
	}{
		{name: "integer", input: "5", want: big.NewInt(5_000_000_000)},
		{name: "fractional", input: "1.5", want: big.NewInt(1_500_000_000)},
		{name: "sub-gwei", input: "0.1", want: big.NewInt(100_000_000)},
		{name: "single wei", input: "0.000000001", want: big.NewInt(1)},
		{name: "whitespace trimmed", input: " 2 ", want: big.NewInt(2_000_000_000)},
		{name: "zero", input: "0", want: big.NewInt(0)},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "sub-wei precision", input: "0.0000000001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseGweiDecimal(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Zero(t, tt.want.Cmp(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestFormatWeiAsGwei(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input *big.Int
		want  string
	}{
		{name: "whole gwei", input: big.NewInt(5_000_000_000), want: "5"},
		{name: "fractional", input: big.NewInt(1_500_000_000), want: "1.5"},
		{name: "single wei", input: big.NewInt(1), want: "0.000000001"},
		{name: "zero", input: big.NewInt(0), want: "0"},
		{name: "nil", input: nil, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, FormatWeiAsGwei(tt.input))
		})
	}
}

func TestGweiRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"0.05", "1.5", "30", "0.000000007"} {
		wei, err := ParseGweiDecimal(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatWeiAsGwei(wei))
	}
}
