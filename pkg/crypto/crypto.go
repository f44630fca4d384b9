package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"math/big"
)

const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomAlphabet returns n characters drawn uniformly from an
// alphabet without look-alike characters.
func GenerateRandomAlphabet(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[RandIntn(len(alphabet))]
	}
	return string(b)
}

// ShortHash returns the first n characters of the base32 form of the sha256
// digest of b. The result is stable for the same input.
func ShortHash(b []byte, n int) string {
	hashed := sha256.Sum256(b)
	s := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(hashed[:])
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}
