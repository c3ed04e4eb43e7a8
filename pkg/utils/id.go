package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenShortID returns a random hex string of 2*n characters, used for
// human-shareable lobby codes.
func GenShortID(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
