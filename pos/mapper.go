// Package pos maps OAI Dublin Core records harvested from Proceedings of
// Science (PoS) into MARC tagged records.
package pos

import (
	"errors"
	"log/slog"

	"github.com/inspirehep/harvestingkit/dom"
	"github.com/inspirehep/harvestingkit/kb"
)

// Document is a parsed XML tree. Both *dom.Document and *dom.Element
// satisfy it, so a single record can be mapped out of a larger response.
type Document interface {
	GetElementsByTagName(name string) []*dom.Element
}

// JournalResolver resolves a full journal name to its abbreviated form.
type JournalResolver interface {
	Lookup(name string) (string, bool)
}

// Mapper converts PoS OAI-DC documents to MARC records. A Mapper holds no
// per-record state and may be shared between goroutines.
type Mapper struct {
	journals JournalResolver
	logger   *slog.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger that receives extraction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mapper) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithJournals sets the journal table directly. The provider passed to
// NewMapper is not consulted.
func WithJournals(r JournalResolver) Option {
	return func(m *Mapper) {
		if r != nil {
			m.journals = r
		}
	}
}

// NewMapper creates a Mapper using the journal knowledge base from p.
// A missing knowledge base, or a nil provider, leaves the mapper with an
// empty journal table.
func NewMapper(p kb.Provider, opts ...Option) *Mapper {
	m := &Mapper{logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	if m.journals != nil {
		return m
	}

	m.journals = kb.Mapping{}
	if p == nil {
		return m
	}
	journals, err := p.Mapping(kb.Journals)
	switch {
	case errors.Is(err, kb.ErrNotFound):
		m.logger.Debug("journal knowledge base not available", "error", err)
	case err != nil:
		m.logger.Warn("loading journal knowledge base failed", "error", err)
	default:
		m.journals = journals
	}

	return m
}
