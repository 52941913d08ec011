// Package marcxml provides a format plugin reading and writing MARC 21 XML
// (MARCXML).
package marcxml

import (
	"bytes"

	kbp "github.com/knakk/kbp/marc"

	"github.com/inspirehep/harvestingkit/format"
)

// Namespace is the MARCXML slim schema namespace.
const Namespace = "http://www.loc.gov/MARC21/slim"

// Format implements the MARCXML format.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "marcxml"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "MARC 21 XML (MARCXML slim schema)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml", "marcxml"}
}

// CanParse returns true if the input looks like MARCXML.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || kbp.DetectFormat(peek) != kbp.MARCXML {
		return false
	}
	return bytes.Contains(peek, []byte(Namespace))
}

func init() {
	format.Register(&Format{})
}
