package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// GravatarURL derives a deterministic avatar URL from an email address.
// Size 200, rating pg, mystery-man fallback.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
