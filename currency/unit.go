package currency

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// MDTDecimals is the number of decimal places of the MDT denomination.
// It determines the scaling factor between MDT and LTS as well as the
// fractional width used when formatting and parsing MDT strings.
const MDTDecimals = 18

// Symbols of the two denominations of the native asset.
const (
	SymbolMDT = "MDT"
	SymbolLTS = "LTS"
)

// These constants relate the denominations of the native asset.
// All balances are stored in LTS; 1 MDT = 10^MDTDecimals LTS.
var (
	LTSPerMDT  = pow10(MDTDecimals)     // 10^18
	LTSPerKMDT = pow10(MDTDecimals + 3) // 10^21, 1000 MDT
	LTSPerMMDT = pow10(MDTDecimals + 6) // 10^24, 1000000 MDT
)

// pow10 returns 10^n as an amount.
func pow10(n int) Amount {
	var v uint256.Int
	v.Exp(uint256.NewInt(10), uint256.NewInt(uint64(n)))
	return newAmountUnsafe(&v)
}

// MDTToLTS converts a whole number of MDT to LTS.
// See also function [LTSToMDT].
//
// MDTToLTS returns an error if the result does not fit in 128 bits.
// Overflow is never clamped or wrapped; the caller must reject the amount.
func MDTToLTS(mdt Amount) (Amount, error) {
	lts, err := scaleUp(mdt)
	if err != nil {
		return Amount{}, fmt.Errorf("converting %v MDT: %w", mdt, err)
	}
	return lts, nil
}

func scaleUp(mdt Amount) (Amount, error) {
	var v uint256.Int
	if _, ovf := v.MulOverflow(&mdt.value, &LTSPerMDT.value); ovf {
		return Amount{}, ErrOverflow
	}
	return newAmountSafe(&v)
}

// LTSToMDT converts LTS to a whole number of MDT using floor division.
// Any remainder below one MDT is discarded, so the conversion is lossy.
// Use [FormatLTSAsMDT] where the fractional part must be preserved.
func LTSToMDT(lts Amount) Amount {
	var v uint256.Int
	v.Div(&lts.value, &LTSPerMDT.value)
	return newAmountUnsafe(&v)
}

// Unit describes a denomination of the native asset.
// The value of the Unit is the exponent of the decadic multiple to convert
// from an amount in MDT to an amount counted in that unit.
type Unit int

// These constants define the supported denominations.
const (
	UnitMegaMDT Unit = 6
	UnitKiloMDT Unit = 3
	UnitMDT     Unit = 0
	UnitLTS     Unit = -MDTDecimals
)

// String implements the [fmt.Stringer] interface and returns the unit
// symbol, or a power of ten for non-standard units.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (u Unit) String() string {
	switch u {
	case UnitMegaMDT:
		return "M" + SymbolMDT
	case UnitKiloMDT:
		return "k" + SymbolMDT
	case UnitMDT:
		return SymbolMDT
	case UnitLTS:
		return SymbolLTS
	default:
		return "1e" + strconv.Itoa(int(u)) + " " + SymbolMDT
	}
}

// FormatLTSAsMDT renders an LTS amount as an MDT decimal string, always
// carrying the full [MDTDecimals] fractional digits:
//
//	FormatLTSAsMDT(NewAmount(1_500_000_000_000_000_000)) = "1.500000000000000000 MDT"
//
// The rendering is exact: reparsing the numeric part with [ParseMDTToLTS]
// returns the original amount. Unlike [LTSToMDT], it never discards precision.
func FormatLTSAsMDT(lts Amount) string {
	return FormatLTSIn(lts, UnitMDT)
}

// FormatLTS renders the raw amount of base units:
//
//	FormatLTS(NewAmount(0)) = "0 LTS"
func FormatLTS(lts Amount) string {
	return FormatLTSIn(lts, UnitLTS)
}

// FormatLTSIn renders an LTS amount in the given unit without losing
// precision. The fractional part is zero-padded to the full width of the
// unit; units below LTS gain trailing zeros instead of a fraction.
func FormatLTSIn(lts Amount, u Unit) string {
	var sb strings.Builder
	switch digits := MDTDecimals + int(u); {
	case digits > 0:
		factor := pow10(digits)
		var whole, frac uint256.Int
		whole.Div(&lts.value, &factor.value)
		frac.Mod(&lts.value, &factor.value)
		fracStr := frac.Dec()
		sb.WriteString(whole.Dec())
		sb.WriteByte('.')
		for i := 0; i < digits-len(fracStr); i++ {
			sb.WriteByte('0')
		}
		sb.WriteString(fracStr)
	case digits < 0 && !lts.IsZero():
		sb.WriteString(lts.value.Dec())
		for i := 0; i < -digits; i++ {
			sb.WriteByte('0')
		}
	default:
		sb.WriteString(lts.value.Dec())
	}
	sb.WriteByte(' ')
	sb.WriteString(u.String())
	return sb.String()
}

// ParseMDTToLTS parses a human-entered MDT decimal string into LTS.
// The input must be of the form "123" or "123.456": no sign, no leading '+',
// no separators, and no exponent notation. At most [MDTDecimals] fractional
// digits are accepted; a longer fraction requests sub-LTS precision and is
// rejected outright, never truncated or rounded.
//
// ParseMDTToLTS returns an error if:
//   - the string contains more than one '.', or a non-digit whole or
//     fractional segment ([ErrInvalidFormat]);
//   - the fractional segment has more than [MDTDecimals] digits
//     ([ErrExcessPrecision]);
//   - the result does not fit in 128 bits ([ErrOverflow]).
func ParseMDTToLTS(s string) (Amount, error) {
	lts, err := parseMDT(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return lts, nil
}

func parseMDT(s string) (Amount, error) {
	wholeStr, fracStr, hasFrac := strings.Cut(s, ".")

	// Whole part
	whole, err := parseAmount(wholeStr)
	if err != nil {
		return Amount{}, err
	}
	lts, err := scaleUp(whole)
	if err != nil {
		return Amount{}, err
	}
	if !hasFrac {
		return lts, nil
	}

	// Fractional part
	if strings.Contains(fracStr, ".") {
		return Amount{}, ErrInvalidFormat
	}
	if len(fracStr) > MDTDecimals {
		return Amount{}, ErrExcessPrecision
	}
	frac := uint64(0)
	for i := 0; i < len(fracStr); i++ {
		c := fracStr[i]
		if c < '0' || c > '9' {
			return Amount{}, ErrInvalidFormat
		}
		frac = frac*10 + uint64(c-'0')
	}
	// Right-pad to the full fractional width
	for i := 0; i < MDTDecimals-len(fracStr); i++ {
		frac *= 10
	}
	return lts.add(NewAmount(frac))
}
