// Package format defines the interface for record format plugins.
package format

import (
	"io"
	"log/slog"

	"github.com/inspirehep/harvestingkit/kb"
	"github.com/inspirehep/harvestingkit/marc"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "pos", "marcxml")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Parser is a format that can read harvested input into MARC records.
type Parser interface {
	Format

	// Parse reads input and returns one record per harvested item.
	Parse(r io.Reader, opts *ParseOptions) ([]*marc.Record, error)
}

// Serializer is a format that can write MARC records to output.
type Serializer interface {
	Format

	// Serialize writes records to the output.
	Serialize(w io.Writer, records []*marc.Record, opts *SerializeOptions) error
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// KnowledgeBases supplies normalization tables such as journal
	// abbreviations. Nil means no tables.
	KnowledgeBases kb.Provider

	// Logger receives per-record diagnostics. Nil means slog.Default().
	Logger *slog.Logger

	// SourceName is an identifier for the source (for error messages)
	SourceName string
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// Pretty enables indentation (for JSON/XML formats)
	Pretty bool
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{SourceName: "stdin"}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{}
}

// LoggerOrDefault returns the configured logger or slog.Default().
func (o *ParseOptions) LoggerOrDefault() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
