/*
Package currency implements conversion between the two denominations of the
LuxTensor native asset.

All ledger balances are stored in LTS, the smallest indivisible unit of the
asset. MDT is the human-facing denomination, related to LTS by a fixed
power of ten: 1 MDT = 10^18 LTS, mirroring the ether/wei relationship used
by account-based ledgers.

# Features

  - Immutable 128-bit amounts, safe for concurrent use by multiple goroutines
  - Exact conversion between LTS and whole-MDT quantities
  - Lossless rendering of LTS amounts as MDT decimal strings
  - Strict parsing of human-entered MDT strings, with no rounding
  - Checked arithmetic that reports overflow instead of wrapping

# Representation

An [Amount] is an unsigned 128-bit integer quantity of LTS. The zero value
is a valid amount of 0 LTS. Amounts have no fractional component; fractions
of an MDT exist only in string form, produced by [FormatLTSAsMDT] and
consumed by [ParseMDTToLTS].

# Conversions

[MDTToLTS] scales a whole number of MDT up to LTS and reports overflow.
[LTSToMDT] performs the reverse floor division and is deliberately lossy:
any remainder below one MDT is discarded. Where exactness matters, use
[FormatLTSAsMDT], which never discards precision.

# Errors

Parsing and arithmetic report failures through three sentinel errors:
[ErrOverflow] for results outside the 128-bit range, [ErrInvalidFormat] for
malformed input, and [ErrExcessPrecision] for fractional input below one
LTS. Errors are returned to the caller and never logged or wrapped silently;
an amount that overflows must be rejected, never clamped or truncated.
*/
package currency
