// Package iso2709 provides a format plugin writing binary MARC 21 records
// in the ISO 2709 exchange structure.
package iso2709

import (
	"github.com/inspirehep/harvestingkit/format"
)

const (
	recordTerminator   = 0x1d
	fieldTerminator    = 0x1e
	subfieldDelimiter  = 0x1f
	leaderLength       = 24
	directoryEntrySize = 12
	maxFieldLength     = 9999
	maxRecordLength    = 99999
)

// Format implements the ISO 2709 format.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "iso2709"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "MARC 21 exchange format (ISO 2709, UTF-8)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"mrc", "marc"}
}

// CanParse reports whether peek starts with a five digit record length.
func (f *Format) CanParse(peek []byte) bool {
	if len(peek) < leaderLength {
		return false
	}
	for _, b := range peek[:5] {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

func init() {
	format.Register(&Format{})
}
