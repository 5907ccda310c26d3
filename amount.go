package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrInvalidAmount is returned when a user supplied amount is not a finite
// decimal number, or is negative where a magnitude is expected.
var ErrInvalidAmount = errors.New("invalid amount")

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Amount is the magnitude of a balance adjustment.
//
// An Amount is always a finite, non-negative decimal: raw user input goes
// through ParseAmount, constants through A.
type Amount struct {
	value decimal.Decimal
}

// A returns the Amount for a constant value. It panics for negative values.
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	d := newDecimal(value)
	if d.IsNegative() {
		panic(fmt.Sprintf("negative amount %s", d))
	}
	return Amount{value: d}
}

// ParseAmount validates raw user text as a magnitude.
func ParseAmount(raw string) (Amount, error) {
	d, err := parseDecimal(raw)
	if err != nil {
		return Amount{}, err
	}
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, raw)
	}
	return Amount{value: d}, nil
}

// ParseBalance validates raw user text as a signed balance.
// Empty input is a zero balance.
func ParseBalance(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	return parseDecimal(raw)
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}
	return d, nil
}

// Decimal returns the amount as a decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) String() string { return a.value.String() }
