package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
)

var (
	ErrNoInputFile        = errors.New("no input file specified. Use --file or set 'file' in the config file")
	ErrUnsupportedFormat  = errors.New("unsupported file format: only .xlsx and .csv uploads are accepted")
	ErrEmptyWorkbook      = errors.New("the first sheet has no header row")
	ErrNoDataset          = errors.New("no dataset loaded. Upload a billing file first")
	ErrMappingFrozen      = errors.New("column mapping already confirmed for this upload")
	ErrMappingUnconfirmed = errors.New("column mapping has not been confirmed")
	ErrInvalidOverride    = errors.New("invalid mapping override")
)

// MissingColumnError reports every canonical field whose mapped column is absent
// from the uploaded sheet. An empty mapped column means the field was never mapped.
type MissingColumnError struct {
	Fields  []entity.Field
	Columns map[entity.Field]string
}

func (e *MissingColumnError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		col := e.Columns[f]
		if col == "" {
			parts = append(parts, fmt.Sprintf("%s (unmapped)", f.DisplayName()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (column %q not found)", f.DisplayName(), col))
	}
	return "missing columns for required fields: " + strings.Join(parts, ", ")
}

// ExportError wraps a failed export; no file is left behind when it is returned.
type ExportError struct {
	Kind   entity.ExportKind
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s as %s: %v", e.Kind.FileName(), e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
