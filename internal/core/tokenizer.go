package core

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/mikey/sms-spam-filter/internal/utils"
)

// Tokenize splits text into whitespace-delimited tokens.
//
// Tokens are case-insensitive: text is stripped of invalid UTF-8, NFKC
// normalized and case folded. The vocabulary builder and the vectorizer both
// go through this function, so a token always maps to the same feature.
func Tokenize(text string) []string {
	text = norm.NFKC.String(utils.SanitizeUTF8(text))
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	// A Caser keeps state between calls and must not be shared across goroutines.
	folder := cases.Fold()
	for i, field := range fields {
		fields[i] = folder.String(field)
	}
	return fields
}
