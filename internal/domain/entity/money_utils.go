package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/referral-platform/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// BasisPointsDivisor converts basis points to a fraction (10000 bps = 100%)
const BasisPointsDivisor = 10000

// ValidateAndConvertAmount parses a decimal string into cents.
// "10" and "10." become 1000, "10.5" becomes 1050, "10.55" becomes 1055.
// Negative values, more than two decimals and non-numeric input are rejected.
func ValidateAndConvertAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	whole := parts[0]
	fraction := ""
	if len(parts) == 2 {
		fraction = parts[1]
	}

	if len(fraction) > MaxDecimalPlaces {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}
	if whole == "" || !isDigits(whole) || !isDigits(fraction) {
		return 0, fmt.Errorf("%w: %q is not a number", errs.ErrInvalidAmount, amount)
	}

	fraction += strings.Repeat("0", MaxDecimalPlaces-len(fraction))

	value, err := strconv.ParseInt(whole+fraction, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errs.ErrAmountOverflow
		}
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return value, nil
}

// ValidatePositiveAmount is ValidateAndConvertAmount that also rejects zero
func ValidatePositiveAmount(amount string) (int64, error) {
	cents, err := ValidateAndConvertAmount(amount)
	if err != nil {
		return 0, err
	}
	if cents == 0 {
		return 0, errs.ErrZeroAmount
	}
	return cents, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// AmountInCentsToString converts integer amount to a decimal string
// For example:
// - 1015 becomes "10.15"
// - 5 becomes "0.05"
func AmountInCentsToString(amountInCents int64) string {
	sign := ""
	if amountInCents < 0 {
		sign = "-"
		amountInCents = -amountInCents
	}

	return fmt.Sprintf("%s%d.%02d", sign, amountInCents/100, amountInCents%100)
}

// EnsureTwoDecimalPlaces normalizes a money string to exactly two decimals.
// Extra digits are truncated, not rounded: "10.156" becomes "10.15".
func EnsureTwoDecimalPlaces(amount string) string {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return "0.00"
	}

	whole, fraction, _ := strings.Cut(amount, ".")
	if whole == "" {
		whole = "0"
	}
	if len(fraction) > MaxDecimalPlaces {
		fraction = fraction[:MaxDecimalPlaces]
	}
	return whole + "." + fraction + strings.Repeat("0", MaxDecimalPlaces-len(fraction))
}

// ApplyBasisPoints returns amountInCents * bps / 10000, truncated toward zero
// to whole cents.
func ApplyBasisPoints(amountInCents int64, bps int) int64 {
	if amountInCents <= 0 || bps <= 0 {
		return 0
	}
	share := decimal.NewFromInt(amountInCents).
		Mul(decimal.NewFromInt(int64(bps))).
		Div(decimal.NewFromInt(BasisPointsDivisor))
	return share.Truncate(0).IntPart()
}

// BasisPointsToPercent renders a rate such as 1000 bps as "10.00"
func BasisPointsToPercent(bps int) string {
	return decimal.NewFromInt(int64(bps)).Div(decimal.NewFromInt(100)).StringFixed(2)
}
