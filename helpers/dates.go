package helpers

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// OAITimestampLayout is the UTC timestamp form used by OAI-PMH providers.
const OAITimestampLayout = "2006-01-02T15:04:05Z"

// OAITimestampLen is the length in characters of a value in OAITimestampLayout.
const OAITimestampLen = len(OAITimestampLayout)

// NormalizeOAIDate reduces a 20 character OAI timestamp to YYYY-MM-DD. Values
// of any other length are returned unchanged. A 20 character value that does
// not follow the timestamp layout is an error.
func NormalizeOAIDate(date string) (string, error) {
	if utf8.RuneCountInString(date) != OAITimestampLen {
		return date, nil
	}

	t, err := time.Parse(OAITimestampLayout, date)
	if err != nil {
		return "", fmt.Errorf("parsing timestamp %q: %w", date, err)
	}
	return t.Format(time.DateOnly), nil
}

// Year returns the first four characters of a date, or the whole value when
// it is shorter.
func Year(date string) string {
	r := []rune(date)
	if len(r) < 4 {
		return date
	}
	return string(r[:4])
}
