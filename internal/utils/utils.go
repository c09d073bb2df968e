package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// ShortenString cuts s after l bytes and appends "...". l == 0 disables it.
func ShortenString(s string, l int) string {
	if len(s) > l && l != 0 {
		return fmt.Sprintf("%s...", s[:l])
	}
	return s
}

// RandomString returns base followed by a random hex suffix, usable as a
// file name. Characters that are awkward in file names are replaced.
func RandomString(base string) (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	base = strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(base)
	return fmt.Sprintf("%s-%s", base, hex.EncodeToString(b)), nil
}
