package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHashLength is the number of hex characters kept from the digest.
const ContentHashLength = 16

// ContentHash returns the dedup key of a quote: the first ContentHashLength
// lowercase hex characters of SHA-256 over the exact UTF-8 bytes.
// No normalization is applied.
func ContentHash(quote string) string {
	sum := sha256.Sum256([]byte(quote))
	return hex.EncodeToString(sum[:])[:ContentHashLength]
}
