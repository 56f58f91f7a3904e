// Package codegen generates the short random codes used by the application
// (plant codes, email verification codes).
package codegen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	digits     = "0123456789"
	upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Digits returns a random numeric code of length n.
// Leading zeros are allowed, so the result must be stored as a string.
func Digits(n int) (string, error) {
	return pick(digits, n)
}

// UpperAlnum returns a random uppercase alphanumeric code of length n.
func UpperAlnum(n int) (string, error) {
	return pick(upperAlnum, n)
}

// pick builds a string of length n from the given alphabet using crypto/rand.
func pick(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random code: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
