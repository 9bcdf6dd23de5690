package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// GenerateToken returns a hex token built from n random bytes.
// Used for booking confirmation codes.
func GenerateToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failure is not recoverable
	}
	return hex.EncodeToString(buf)
}

// GenerateOTP returns a zero-padded numeric code of the given length.
func GenerateOTP(digits int) string {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(err)
	}
	s := n.String()
	for len(s) < digits {
		s = "0" + s
	}
	return s
}
