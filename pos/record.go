package pos

import (
	"errors"
	"fmt"
	"strings"

	kbp "github.com/knakk/kbp/marc"

	"github.com/inspirehep/harvestingkit/helpers"
	"github.com/inspirehep/harvestingkit/marc"
)

const (
	// Collection is the classification written to every record.
	Collection = "ConferencePaper"

	// JournalTitle is the journal title used for every publication note.
	JournalTitle = "PoS"

	sissaPublisher = "Sissa Medialab"
	sissaShort     = "SISSA"
	ccBYNCSA       = "Creative Commons Attribution-NonCommercial-ShareAlike"
	ccBYNCSAShort  = "CC-BY-NC-SA"
)

var (
	// ErrMalformedIdentifier is returned when a record identifier is not of
	// the form "oai:<host>:<conference>/<contribution>". The record cannot
	// be mapped without it.
	ErrMalformedIdentifier = errors.New("malformed PoS identifier")

	// ErrMalformedDate is returned when a timestamp-length date is not a
	// valid "YYYY-MM-DDThh:mm:ssZ" value.
	ErrMalformedDate = errors.New("malformed PoS date")
)

// GetRecord maps one PoS OAI-DC document to a new MARC record. Missing
// optional elements are skipped; a malformed identifier or date fails the
// whole record and no partial record is returned.
func (m *Mapper) GetRecord(doc Document) (*marc.Record, error) {
	return m.Record(m.Extract(doc))
}

// Record assembles a MARC record from extracted metadata.
func (m *Mapper) Record(md Metadata) (*marc.Record, error) {
	rec := marc.NewRecord()

	if md.Language != "" && md.Language != "en" {
		rec.AddField(kbp.Tag041, "", "", sf("a", md.Language))
	}

	if md.Description != "" {
		rec.AddField(kbp.Tag520, "", "", sf("a", md.Description))
	}

	publisher := md.Publisher
	if publisher == sissaPublisher {
		publisher = sissaShort
	}
	date, err := helpers.NormalizeOAIDate(md.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDate, err)
	}
	switch {
	case publisher != "" && date != "":
		rec.AddField(kbp.Tag260, "", "", sf("b", publisher), sf("c", date))
	case publisher != "":
		rec.AddField(kbp.Tag260, "", "", sf("b", publisher))
	case date != "":
		rec.AddField(kbp.Tag260, "", "", sf("c", date))
	}

	if md.Title != "" {
		rec.AddField(kbp.Tag245, "", "", sf("a", md.Title))
	}

	copyright := md.Copyright
	if copyright == ccBYNCSA {
		copyright = ccBYNCSAShort
	}
	if copyright != "" {
		rec.AddField(kbp.Tag540, "", "", sf("a", copyright))
	}

	if md.Subject != "" {
		rec.AddField(kbp.Tag650, "1", "7", sf("a", md.Subject))
	}

	if md.Relation != "" {
		rec.AddField(kbp.Tag786, "0", "", sf("n", md.Relation))
	}

	for i, author := range md.Authors {
		tag := kbp.Tag700
		if i == 0 {
			tag = kbp.Tag100
		}
		rec.AddField(tag, "", "", sf("a", author))
	}

	conference, contribution, err := SplitIdentifier(md.Identifier)
	if err != nil {
		return nil, err
	}
	rec.AddField(kbp.Tag773, "", "",
		sf("p", JournalTitle),
		sf("v", conference),
		sf("c", contribution),
		sf("y", helpers.Year(date)),
	)

	rec.AddField(kbp.Tag980, "", "", sf("a", Collection))

	return rec, nil
}

// SplitIdentifier extracts the conference and contribution tokens from an
// identifier such as "oai:pos.sissa.it:LATTICE2013/056". Spaces are removed
// from the conference token.
func SplitIdentifier(identifier string) (conference, contribution string, err error) {
	segments := strings.Split(identifier, ":")
	if len(segments) < 3 {
		return "", "", fmt.Errorf("%w: %q has fewer than 3 colon-separated segments", ErrMalformedIdentifier, identifier)
	}

	parts := strings.Split(segments[2], "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: %q has no contribution number", ErrMalformedIdentifier, identifier)
	}

	return strings.ReplaceAll(parts[0], " ", ""), parts[1], nil
}

func sf(code, value string) marc.Subfield {
	return marc.Subfield{Code: code, Value: value}
}
