package currency

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	// ErrOverflow indicates a result outside the 128-bit range.
	ErrOverflow = errors.New("amount overflow")

	// ErrInvalidFormat indicates input that is not a plain unsigned
	// decimal number.
	ErrInvalidFormat = errors.New("invalid amount format")

	// ErrExcessPrecision indicates a fractional part with more than
	// [MDTDecimals] digits.
	ErrExcessPrecision = errors.New("too many decimal places")
)

// Amount type represents a quantity of LTS, the base unit of the asset.
// It is an unsigned 128-bit integer; its zero value is 0 LTS.
// Amount is designed to be safe for concurrent use by multiple goroutines.
type Amount struct {
	value uint256.Int // always within 128 bits
}

// MaxAmount is the largest representable amount, 2^128 - 1 LTS.
var MaxAmount = NewAmountFromUint128(math.MaxUint64, math.MaxUint64)

// newAmountUnsafe creates a new amount without checking the 128-bit range.
// Use it only if you are absolutely sure that the argument is in range.
func newAmountUnsafe(v *uint256.Int) Amount {
	return Amount{value: *v}
}

// newAmountSafe creates a new amount and checks the 128-bit range.
func newAmountSafe(v *uint256.Int) (Amount, error) {
	if !fitsIn128(v) {
		return Amount{}, ErrOverflow
	}
	return newAmountUnsafe(v), nil
}

// fitsIn128 reports whether v has no bits set above the low 128.
func fitsIn128(v *uint256.Int) bool {
	return v[2]|v[3] == 0
}

// NewAmount returns an amount equal to lts base units.
func NewAmount(lts uint64) Amount {
	var v uint256.Int
	v.SetUint64(lts)
	return newAmountUnsafe(&v)
}

// NewAmountFromUint128 assembles an amount from the high and low 64-bit
// halves of a 128-bit value.
// See also method [Amount.Uint128].
func NewAmountFromUint128(hi, lo uint64) Amount {
	return newAmountUnsafe(&uint256.Int{lo, hi})
}

// NewAmountFromBig converts a big integer quantity of base units to an amount.
// See also method [Amount.Big].
//
// NewAmountFromBig returns an error if:
//   - the value is negative, as amounts are unsigned;
//   - the value does not fit in 128 bits.
func NewAmountFromBig(b *big.Int) (Amount, error) {
	if b.Sign() < 0 {
		return Amount{}, fmt.Errorf("converting %v: negative value: %w", b, ErrInvalidFormat)
	}
	v, ovf := uint256.FromBig(b)
	if ovf || !fitsIn128(v) {
		return Amount{}, fmt.Errorf("converting %v: %w", b, ErrOverflow)
	}
	return newAmountUnsafe(v), nil
}

// ParseAmount converts a decimal string of base units to an amount.
// The input must consist only of ASCII digits: no sign, no leading '+',
// no separators, and no exponent notation.
// See also constructor [ParseMDTToLTS] for parsing MDT strings.
func ParseAmount(s string) (Amount, error) {
	a, err := parseAmount(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return a, nil
}

func parseAmount(s string) (Amount, error) {
	if !isDigits(s) {
		return Amount{}, ErrInvalidFormat
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		// The digits are already validated, so the value is out of range.
		return Amount{}, ErrOverflow
	}
	return newAmountSafe(v)
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParseAmount is like [ParseAmount] but panics if the string cannot be
// parsed. It simplifies safe initialization of global variables holding amounts.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(fmt.Sprintf("ParseAmount(%q) failed: %v", s, err))
	}
	return a
}

// Uint64 returns the amount as a uint64.
// If the amount does not fit in 64 bits, then false is returned.
func (a Amount) Uint64() (lts uint64, ok bool) {
	if !a.value.IsUint64() {
		return 0, false
	}
	return a.value.Uint64(), true
}

// Uint128 returns the high and low 64-bit halves of the amount.
// See also constructor [NewAmountFromUint128].
func (a Amount) Uint128() (hi, lo uint64) {
	return a.value[1], a.value[0]
}

// Big returns the amount as a big integer quantity of base units.
// See also constructor [NewAmountFromBig].
func (a Amount) Big() *big.Int {
	return a.value.ToBig()
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Cmp compares amounts and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
func (a Amount) Cmp(b Amount) int {
	return a.value.Cmp(&b.value)
}

// Min returns the smaller amount.
func (a Amount) Min(b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger amount.
func (a Amount) Max(b Amount) Amount {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Add returns the checked sum of amounts a and b.
//
// Add returns an error if the sum does not fit in 128 bits.
func (a Amount) Add(b Amount) (Amount, error) {
	c, err := a.add(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) add(b Amount) (Amount, error) {
	var v uint256.Int
	if _, ovf := v.AddOverflow(&a.value, &b.value); ovf {
		return Amount{}, ErrOverflow
	}
	return newAmountSafe(&v)
}

// Sub returns the checked difference between amounts a and b.
//
// Sub returns an error if b is greater than a, as amounts cannot be negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Cmp(b) < 0 {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, ErrOverflow)
	}
	var v uint256.Int
	v.Sub(&a.value, &b.value)
	return newAmountUnsafe(&v), nil
}

// String implements the [fmt.Stringer] interface and returns the amount as
// a decimal string of base units.
// See also method [Amount.Format] and function [FormatLTS].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	return a.value.Dec()
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb       | Example | Description                 |
//	| ---------- | ------- | --------------------------- |
//	| %s, %v, %d | 1500    | Amount in base units        |
//	| %q         | "1500"  | Quoted amount in base units |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (a Amount) Format(state fmt.State, verb rune) {
	digits := a.value.Dec()

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + len(digits) + tquote
	lspaces, tspaces := 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, 0, width)

	// Leading spaces
	for i := 0; i < lspaces; i++ {
		buf = append(buf, ' ')
	}

	// Opening quote
	for i := 0; i < lquote; i++ {
		buf = append(buf, '"')
	}

	// Digits
	buf = append(buf, digits...)

	// Closing quote
	for i := 0; i < tquote; i++ {
		buf = append(buf, '"')
	}

	// Trailing spaces
	for i := 0; i < tspaces; i++ {
		buf = append(buf, ' ')
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'd', 'D':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(currency.Amount="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseAmount].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (a *Amount) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	var err error
	*a, err = ParseAmount(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a quoted decimal string, as 128-bit values do
// not survive a round trip through JSON numbers.
// See also method [Amount.String].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	s := a.String()
	text := make([]byte, 0, len(s)+2)
	text = append(text, '"')
	text = append(text, s...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseAmount].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (a *Amount) UnmarshalText(text []byte) error {
	var err error
	*a, err = ParseAmount(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	return nil
}

// AppendText implements the [encoding.TextAppender] interface.
// AppendText always appends a decimal string of base units.
// See also method [Amount.String].
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (a Amount) AppendText(text []byte) ([]byte, error) {
	return append(text, a.String()...), nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns a decimal string of base units.
// See also method [Amount.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (a *Amount) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*a, err = ParseAmount(value)
	case []byte:
		*a, err = ParseAmount(string(value))
	case int64:
		if value < 0 {
			err = fmt.Errorf("negative value: %w", ErrInvalidFormat)
		} else {
			*a = NewAmount(uint64(value))
		}
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Amount{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// Value always returns a decimal string of base units.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}
