// Package credentials generates sign-in material for apprentice accounts.
package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var usernameCleaner = regexp.MustCompile(`[^a-z0-9_]`)

// GeneratePIN returns a random 4-digit PIN, zero-padded
func GeneratePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generating pin: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// SuggestUsername derives a username candidate from a display name by
// lowercasing, stripping invalid characters and appending a random
// two-digit suffix. The result always satisfies the username rules but
// is only a suggestion; uniqueness is enforced at creation time.
func SuggestUsername(name string) (string, error) {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "_")
	base = usernameCleaner.ReplaceAllString(base, "")
	if len(base) > 17 {
		base = base[:17]
	}
	if len(base) < 3 {
		base = base + strings.Repeat("0", 3-len(base))
	}
	n, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return "", fmt.Errorf("generating username suffix: %w", err)
	}
	return fmt.Sprintf("%s%02d", base, n.Int64()), nil
}
