package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// accountNumberSpan covers 1000000000..9999999999 so the number is always
// exactly 10 digits with no leading zero.
var accountNumberSpan = big.NewInt(9_000_000_000)

// GenerateAccountNumber generates a 10-digit numeric account number using
// a cryptographically secure source. Uniqueness is enforced by the store's
// unique constraint; callers retry on a duplicate.
func GenerateAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberSpan)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1_000_000_000), nil
}
