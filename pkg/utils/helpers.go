// Package utils provides utility functions shared across the claim client.
package utils

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AreAddressesEqual compares two Ethereum addresses for equality, ignoring case.
func AreAddressesEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ConvertBytesToString converts a byte array to a hexadecimal string with 0x prefix.
func ConvertBytesToString(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// ChecksumAddress returns the EIP-55 form of a hex address.
// Returns false if the value is not a valid hex address.
func ChecksumAddress(addr string) (string, bool) {
	if !common.IsHexAddress(addr) {
		return "", false
	}
	return common.HexToAddress(addr).Hex(), true
}

// Map applies f to every element of l, passing the element index as the second argument.
func Map[A any, B any](l []A, f func(A, uint64) B) []B {
	out := make([]B, len(l))
	for i, v := range l {
		out[i] = f(v, uint64(i))
	}
	return out
}

// Filter returns the elements of l for which f returns true.
func Filter[A any](l []A, f func(A) bool) []A {
	out := make([]A, 0)
	for _, v := range l {
		if f(v) {
			out = append(out, v)
		}
	}
	return out
}
