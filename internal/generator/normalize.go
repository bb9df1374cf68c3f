package generator

import (
	"regexp"
	"strings"
)

var manyBreaks = regexp.MustCompile(`\n{3,}`)

// Normalize makes line breaks uniform before section extraction: literal
// two-character "\n" sequences become real breaks, Windows line endings
// become single breaks, and runs of three or more breaks collapse to two.
// Normalizing already-normalized text is a no-op.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return manyBreaks.ReplaceAllString(s, "\n\n")
}
