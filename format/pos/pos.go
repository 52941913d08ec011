// Package pos provides a format plugin for Proceedings of Science OAI-DC records.
package pos

import (
	"bytes"

	"github.com/inspirehep/harvestingkit/format"
)

// Format implements the PoS OAI-DC input format.
type Format struct{}

var (
	_ format.Format = (*Format)(nil)
	_ format.Parser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "pos"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Proceedings of Science OAI-PMH Dublin Core (oai_dc)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml"}
}

// CanParse returns true if the input looks like a PoS OAI-DC harvest.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}

	patterns := [][]byte{
		[]byte("pos.sissa.it"),
		[]byte("oai_dc:dc"),
	}
	for _, pattern := range patterns {
		if bytes.Contains(peek, pattern) {
			return true
		}
	}

	return false
}

func init() {
	format.Register(&Format{})
}
