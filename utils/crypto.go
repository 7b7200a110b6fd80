package utils

import (
	"crypto/rand"
	"math/big"
)

// GeneratePromoCode returns a random uppercase code for offers created
// without an explicit code.
func GeneratePromoCode(length int) string {
	const charset = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	result := make([]byte, length)
	for i := range result {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[n.Int64()]
	}
	return string(result)
}
