package repository

import (
	"context"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
)

// SourceRepository fetches the bytes of an uploaded billing file.
type SourceRepository interface {
	// Supports reports whether this source can resolve the location.
	Supports(location string) bool
	Fetch(ctx context.Context, profile, location string) (name string, data []byte, err error)
}

// WorkbookRepository turns uploaded bytes into a raw table (first sheet only).
type WorkbookRepository interface {
	Parse(name string, data []byte) (entity.RawTable, error)
}
