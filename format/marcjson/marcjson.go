// Package marcjson provides a format plugin writing MARC-in-JSON.
package marcjson

import (
	"bytes"

	"github.com/inspirehep/harvestingkit/format"
)

// Format implements the MARC-in-JSON format.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "marcjson"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "MARC-in-JSON (array of records)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json"}
}

// CanParse returns true if the input looks like MARC-in-JSON.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	return len(peek) > 0 && (peek[0] == '[' || peek[0] == '{') && bytes.Contains(peek, []byte(`"leader"`))
}

func init() {
	format.Register(&Format{})
}
