package util

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// GenerateOrderNumber produces a short human-readable order reference
// such as "ATTIRE-4821".
func GenerateOrderNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand failing means the platform is broken; fall back to zero
		return "ATTIRE-0000"
	}
	return fmt.Sprintf("ATTIRE-%04d", n.Int64())
}

// GenerateCartToken issues an opaque token identifying a guest cart.
func GenerateCartToken() string {
	return uuid.NewString()
}
