package pos

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/inspirehep/harvestingkit/dom"
	"github.com/inspirehep/harvestingkit/format"
	"github.com/inspirehep/harvestingkit/marc"
	posmapper "github.com/inspirehep/harvestingkit/pos"
)

// ErrOAIResponse is returned when the harvest is an OAI-PMH error response
// other than noRecordsMatch.
var ErrOAIResponse = errors.New("OAI-PMH error response")

// Parse reads a PoS harvest and returns one MARC record per OAI record.
// It accepts a single <record>, an OAI-PMH GetRecord or ListRecords
// response, or a bare metadata block. Deleted records are skipped.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*marc.Record, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}
	logger := opts.LoggerOrDefault()

	doc, err := dom.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing PoS XML from %s: %w", opts.SourceName, err)
	}

	if code, message, ok := oaiError(doc); ok {
		if code == "noRecordsMatch" {
			logger.Info("no records match", "source", opts.SourceName, "message", message)
			return []*marc.Record{}, nil
		}
		return nil, fmt.Errorf("%w from %s [%s]: %s", ErrOAIResponse, opts.SourceName, code, message)
	}

	mapper := posmapper.NewMapper(opts.KnowledgeBases, posmapper.WithLogger(logger))

	items := doc.GetElementsByTagName("record")
	if len(items) == 0 {
		rec, err := mapper.GetRecord(doc)
		if err != nil {
			return nil, fmt.Errorf("mapping %s: %w", opts.SourceName, err)
		}
		return []*marc.Record{rec}, nil
	}

	records := make([]*marc.Record, 0, len(items))
	for i, item := range items {
		identifier := headerValue(item, "identifier")

		if isDeleted(item) {
			logger.Info("skipping deleted record", "identifier", identifier)
			continue
		}

		rec, err := mapper.GetRecord(item)
		if err != nil {
			return nil, fmt.Errorf("mapping record %d (%s) from %s: %w", i, identifier, opts.SourceName, err)
		}

		logger.Debug("mapped record",
			"identifier", identifier,
			"datestamp", mapper.Datestamp(item),
			"fields", len(rec.Fields()))
		records = append(records, rec)
	}

	return records, nil
}

// oaiError returns the code and message of the <error> element of an
// OAI-PMH response.
func oaiError(doc *dom.Document) (code, message string, ok bool) {
	if doc.Root == nil || doc.Root.LocalName() != "OAI-PMH" {
		return "", "", false
	}
	for _, el := range doc.Root.Children() {
		if el.LocalName() == "error" {
			return el.Attr("code"), strings.TrimSpace(el.Text()), true
		}
	}
	return "", "", false
}

// headerValue returns the text of a child of the record's OAI header.
func headerValue(item *dom.Element, name string) string {
	for _, header := range item.GetElementsByTagName("header") {
		for _, el := range header.Children() {
			if el.Name == name {
				return strings.TrimSpace(el.Text())
			}
		}
	}
	return ""
}

func isDeleted(item *dom.Element) bool {
	for _, header := range item.GetElementsByTagName("header") {
		if header.Attr("status") == "deleted" {
			return true
		}
	}
	return false
}
