package ws

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

func newConnID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}

// initials derives the avatar initials shown next to a chat message: the
// first two characters of the username, upper-cased. One-character usernames
// yield a single initial.
func initials(username string) string {
	runes := []rune(strings.ToUpper(username))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}
