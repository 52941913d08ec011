package marcxml

import (
	"fmt"
	"io"

	kbp "github.com/knakk/kbp/marc"

	"github.com/inspirehep/harvestingkit/format"
	"github.com/inspirehep/harvestingkit/marc"
)

// Parse reads every <record> in a MARCXML document. Fields come back in tag
// order and subfields in code order.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*marc.Record, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}
	logger := opts.LoggerOrDefault()

	decoded, err := kbp.NewDecoder(r, kbp.MARCXML).DecodeAll()
	if err != nil {
		return nil, fmt.Errorf("decoding MARCXML from %s: %w", opts.SourceName, err)
	}

	records := make([]*marc.Record, 0, len(decoded))
	for i, src := range decoded {
		rec, err := marc.FromMARC(src)
		if err != nil {
			return nil, fmt.Errorf("record %d from %s: %w", i, opts.SourceName, err)
		}
		records = append(records, rec)
	}

	logger.Debug("decoded MARCXML", "source", opts.SourceName, "records", len(records))
	return records, nil
}
