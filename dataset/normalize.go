package dataset

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]`)

// Normalize turns a title into a file key: lower case, spaces become underscores,
// and anything other than letters, digits and underscores is removed.
// The result may be empty.
func Normalize(title string) string {
	key := strings.ToLower(title)
	key = strings.ReplaceAll(key, " ", "_")
	return nonWord.ReplaceAllString(key, "")
}
