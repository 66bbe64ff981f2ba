// Package money implements a fixed-point currency amount stored as an integer
// count of minor units (cents).
package money

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Symbol is the currency symbol used by String.
const Symbol = "€"

// Money is an amount of minor units. The zero value is zero.
//
// The range is that of int64; arithmetic does not check for overflow.
type Money int64

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// FromMinorUnits returns the amount of n minor units.
func FromMinorUnits(n int64) Money {
	return Money(n)
}

// FromFloat converts a major-unit amount to minor units, rounding half away
// from zero. Precision past two decimal places is lost. NaN, infinities and
// amounts outside the int64 range of minor units are rejected.
func FromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("amount %v is not finite", f)
	}
	return fromMajor(decimal.NewFromFloat(f), strconv.FormatFloat(f, 'g', -1, 64))
}

// Parse converts a decimal string such as "4.50" to minor units, rounding
// half away from zero.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return fromMajor(d, s)
}

func fromMajor(d decimal.Decimal, input string) (Money, error) {
	d = d.Shift(2).Round(0)
	if d.GreaterThan(maxMinor) || d.LessThan(minMinor) {
		return 0, fmt.Errorf("amount %q out of range", input)
	}
	return Money(d.IntPart()), nil
}

// MinorUnits returns the amount as a count of minor units.
func (m Money) MinorUnits() int64 {
	return int64(m)
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return m + o
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return m - o
}

// Mul returns m multiplied by a quantity.
func (m Money) Mul(q int) Money {
	return m * Money(q)
}

// String formats the amount with the default currency symbol, e.g. "€ 4.50".
func (m Money) String() string {
	return m.Format(Symbol)
}

// Format renders "<symbol> <major>.<minor>" with the minor part padded to two
// digits. The sign belongs to the major part: -450 renders as "€ -4.50".
func (m Money) Format(symbol string) string {
	n := int64(m)
	sign := ""
	// uint64 keeps math.MinInt64 representable after negation.
	abs := uint64(n)
	if n < 0 {
		sign = "-"
		abs = uint64(-(n + 1)) + 1
	}
	return fmt.Sprintf("%s %s%d.%02d", symbol, sign, abs/100, abs%100)
}

// Value implements driver.Valuer. Amounts are stored as a single integer column.
func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*m = Money(v)
	case int32:
		*m = Money(v)
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	case nil:
		return fmt.Errorf("scanning money: unexpected NULL")
	default:
		return fmt.Errorf("scanning money: unsupported type %T", src)
	}
	return nil
}

func (m *Money) scanString(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("scanning money: %w", err)
	}
	*m = Money(n)
	return nil
}

// MarshalJSON encodes the amount as its minor-unit count.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(m))
}

// UnmarshalJSON decodes a minor-unit count.
func (m *Money) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding money: %w", err)
	}
	*m = Money(n)
	return nil
}
