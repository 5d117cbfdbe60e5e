package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// ParseGweiDecimal converts a decimal gwei string (e.g. "1.5") to wei.
// Fractional parts finer than one wei are rejected.
func ParseGweiDecimal(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty gas price string")
	}

	value, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid decimal gas price %q", s)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("negative gas price %q", s)
	}

	wei := new(big.Rat).Mul(value, new(big.Rat).SetUint64(params.GWei))
	if !wei.IsInt() {
		return nil, fmt.Errorf("gas price %q has sub-wei precision", s)
	}
	return wei.Num(), nil
}

// FormatWeiAsGwei renders a wei amount as a decimal gwei string with trailing
// zeros trimmed. Example: 1500000000 => "1.5".
func FormatWeiAsGwei(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	value := new(big.Rat).SetFrac(new(big.Int).Set(wei), new(big.Int).SetUint64(params.GWei))
	formatted := value.FloatString(9) // one wei resolution

	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
	}
	if formatted == "" {
		formatted = "0"
	}
	return formatted
}
