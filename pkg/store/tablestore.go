// Package store provides access to the external table backends that hold the
// canonical form field table.
package store

import (
	"context"

	"github.com/ssargent/fieldsheet/pkg/codec"
)

// DefaultRange is the sheet range holding the form field table.
const DefaultRange = "FormFields!A:G"

// TableStore reads and writes a rectangular range of a remote table.
//
// WriteRange overwrites or extends the range; it never merges with existing
// rows. Callers wanting a full replace clear the range first.
type TableStore interface {
	ReadRange(ctx context.Context, destination, rangeSpec string) (codec.Table, error)
	ClearRange(ctx context.Context, destination, rangeSpec string) error
	WriteRange(ctx context.Context, destination, rangeSpec string, table codec.Table) error
}
