package numbers

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// TokenDecimals is the fixed-point scale used by reward reports and the MerkleRedeem contract.
const TokenDecimals int32 = 18

// ParseUnits converts a decimal string into a fixed-point integer scaled by 10^decimals.
// Amounts with more fractional digits than decimals are rejected rather than truncated.
func ParseUnits(amountStr string, decimals int32) (*big.Int, error) {
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal amount '%s': %w", amountStr, err)
	}

	scaled := amount.Shift(decimals)
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("fractional component of '%s' exceeds %d decimals", amountStr, decimals)
	}
	return scaled.BigInt(), nil
}

// ToWei converts a token amount to its 18 decimal representation
func ToWei(amountStr string) (*big.Int, error) {
	return ParseUnits(amountStr, TokenDecimals)
}

// SumDecimalStrings adds a list of decimal strings without any floating point conversion.
// An empty list sums to "0".
func SumDecimalStrings(amounts []string) (string, error) {
	total := decimal.Zero
	for _, a := range amounts {
		d, err := decimal.NewFromString(a)
		if err != nil {
			return "", fmt.Errorf("invalid decimal amount '%s': %w", a, err)
		}
		total = total.Add(d)
	}
	return total.String(), nil
}

// IsNonZero returns true when the string parses to a non-zero decimal.
// Empty and unparsable strings are treated as zero.
func IsNonZero(amountStr string) bool {
	d, err := decimal.NewFromString(amountStr)
	if err != nil {
		return false
	}
	return !d.IsZero()
}

// IsPositive returns true when the string parses to a decimal greater than zero.
func IsPositive(amountStr string) bool {
	d, err := decimal.NewFromString(amountStr)
	if err != nil {
		return false
	}
	return d.IsPositive()
}
