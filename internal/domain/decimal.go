package domain

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

const decimalPrecision = 34

// Decimal is an immutable arbitrary-precision decimal. The zero value is 0.
type Decimal struct {
	value apd.Decimal
}

func NewDecimal(s string) (Decimal, error) {
	var d apd.Decimal
	_, _, err := d.SetString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return Decimal{}, fmt.Errorf("invalid decimal %q: not finite", s)
	}
	return Decimal{value: d}, nil
}

// MustDecimal is like NewDecimal but panics on malformed input.
func MustDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func NewDecimalFromInt64(i int64) Decimal {
	var d apd.Decimal
	d.SetInt64(i)
	return Decimal{value: d}
}

// NewDecimalFromFloat64 converts f using its shortest decimal representation.
// NaN and infinities become zero.
func NewDecimalFromFloat64(f float64) Decimal {
	var d apd.Decimal
	if _, err := d.SetFloat64(f); err != nil {
		return Decimal{}
	}
	return Decimal{value: d}
}

func (d Decimal) String() string {
	return d.value.Text('f')
}

func (d Decimal) IsZero() bool {
	return d.value.IsZero()
}

// Sign returns -1, 0 or +1.
func (d Decimal) Sign() int {
	return d.value.Sign()
}

func (d Decimal) Cmp(other Decimal) int {
	return d.value.Cmp(&other.value)
}

func (d Decimal) Float64() float64 {
	f, _ := d.value.Float64()
	return f
}

// Add returns the sum of d and other.
func (d Decimal) Add(other Decimal) Decimal {
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	ctx.Add(&result, &d.value, &other.value)
	return Decimal{value: result}
}

// Sub returns d minus other.
func (d Decimal) Sub(other Decimal) Decimal {
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	ctx.Sub(&result, &d.value, &other.value)
	return Decimal{value: result}
}

// Mul returns the product of d and other.
func (d Decimal) Mul(other Decimal) Decimal {
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	ctx.Mul(&result, &d.value, &other.value)
	return Decimal{value: result}
}

// Div returns the quotient of d divided by other. Dividing by zero yields zero;
// callers guard their divisors.
func (d Decimal) Div(other Decimal) Decimal {
	if other.IsZero() {
		return Decimal{}
	}
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	ctx.Quo(&result, &d.value, &other.value)
	return Decimal{value: result}
}

// Round returns d rounded half-up to the given number of fractional digits.
func (d Decimal) Round(places int32) Decimal {
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	ctx.Rounding = apd.RoundHalfUp
	ctx.Quantize(&result, &d.value, -places)
	return Decimal{value: result}
}

func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := NewDecimal(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
