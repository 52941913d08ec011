// Package helpers provides utility functions for normalizing harvested metadata values.
package helpers

import (
	"fmt"
	"strings"
)

// InvertName converts a "Given Names Surname" string into "Surname, Given Names".
// The last whitespace-separated token is taken as the surname. A single-token
// name yields "Surname, ". It reports false when name has no tokens.
func InvertName(name string) (string, bool) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", false
	}

	surname := parts[len(parts)-1]
	given := strings.Join(parts[:len(parts)-1], " ")
	return fmt.Sprintf("%s, %s", surname, given), true
}
