// Package money converts between user-entered decimal strings and integer cents.
//
// All amounts in tabsplit are int64 cents. Nothing in this package (or anywhere
// downstream) goes through float64.
package money

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidFormat     = errors.New("amount must be a number with at most two decimal places")
	ErrInvalidAmount     = errors.New("amount is too large")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// ParseCents parses a decimal string such as "12", "12.5" or "12.50" into cents.
// Signs, currency symbols, thousands separators and surrounding whitespace are
// rejected rather than normalised. Zero is only accepted when allowZero is set.
//
//	ParseCents("5.5", false)   -> 550
//	ParseCents("5.123", false) -> ErrInvalidFormat
//	ParseCents("0", false)     -> ErrNonPositiveAmount
//	ParseCents("0", true)      -> 0
func ParseCents(input string, allowZero bool) (int64, error) {
	if !amountPattern.MatchString(input) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, input)
	}

	whole, frac, _ := strings.Cut(input, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/100 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}

	var fracCents int64
	if frac != "" {
		// "5" means fifty cents, not five
		if len(frac) == 1 {
			frac += "0"
		}
		// the pattern guarantees one or two digits
		fracCents, _ = strconv.ParseInt(frac, 10, 64)
	}

	cents := units*100 + fracCents
	if cents < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	if cents == 0 && !allowZero {
		return 0, fmt.Errorf("%w: %q", ErrNonPositiveAmount, input)
	}
	return cents, nil
}

// Sum adds non-negative amounts, failing with ErrInvalidAmount if the total
// doesn't fit in an int64.
func Sum(amounts ...int64) (int64, error) {
	var total int64
	for _, a := range amounts {
		if a < 0 || total > math.MaxInt64-a {
			return 0, ErrInvalidAmount
		}
		total += a
	}
	return total, nil
}

// FormatCents renders cents as "$D.DD". Negative values (net balances) render as "-$D.DD".
func FormatCents(cents int64) string {
	sign, plain := split(cents)
	return sign + "$" + plain
}

// FormatCentsPlain renders cents as "D.DD", suitable for pre-filling an editable field.
func FormatCentsPlain(cents int64) string {
	sign, plain := split(cents)
	return sign + plain
}

func split(cents int64) (string, string) {
	sign := ""
	// uint64 so that MinInt64 negates cleanly
	abs := uint64(cents)
	if cents < 0 {
		sign = "-"
		abs = -abs
	}
	return sign, fmt.Sprintf("%d.%02d", abs/100, abs%100)
}
