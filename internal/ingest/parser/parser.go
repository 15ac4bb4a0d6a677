package parser

import (
	"context"
	"errors"
	"io"

	"github.com/jonbrc/DataCubo-Back/internal/ingest/entity"
)

// The messages below reach API clients verbatim.
//
//nolint:revive,stylecheck // capitalised on purpose
var (
	ErrNoColumns     = errors.New("No columns to parse from file")
	ErrUnknownFormat = errors.New("Excel file format cannot be determined, you must specify an engine manually.")
	ErrNoSheets      = errors.New("Worksheet index 0 is invalid, 0 worksheets found")
)

// Parser turns the content of an uploaded file into a table.
type Parser interface {
	Parse(ctx context.Context, r io.ReadSeeker) (entity.Table, error)
}

// Registry picks a parser by lower-case file extension.
type Registry struct {
	byExt    map[string]Parser
	fallback Parser
}

// NewRegistry returns the default registry: "csv" goes to the CSV parser and
// every other extension to the spreadsheet parser, which detects XLSX or XLS
// from the content itself.
func NewRegistry() *Registry {
	return &Registry{
		byExt:    map[string]Parser{"csv": CSV{}},
		fallback: Spreadsheet{},
	}
}

// Register overrides the parser for ext.
func (r *Registry) Register(ext string, p Parser) {
	r.byExt[ext] = p
}

// For returns the parser responsible for ext.
func (r *Registry) For(ext string) Parser {
	if p, ok := r.byExt[ext]; ok {
		return p
	}
	return r.fallback
}
