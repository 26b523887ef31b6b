package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// New generates a new token of the form `prefix_hex` where hex is 16 random
// bytes hex-encoded. Used as primary key for most stored objects.
func New(
	prefix string,
) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b))
}
