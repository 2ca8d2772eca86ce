// Package dataset reads call records from the supported file formats.
package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"voice-trends-go/internal/types"
)

var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Load picks a reader by file extension: .json, .xlsx, or .db/.sqlite.
func Load(path string) ([]types.CallRecord, error) {
	var (
		calls []types.CallRecord
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		calls, err = LoadJSON(path)
	case ".xlsx":
		calls, err = LoadXLSX(path)
	case ".db", ".sqlite", ".sqlite3":
		calls, err = LoadSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	for i := range calls {
		normalize(&calls[i])
	}
	return calls, nil
}

// normalize fills whichever of end instant or duration is missing from the
// other and drops QM results for checks outside the known set.
func normalize(c *types.CallRecord) {
	for id := range c.QmChecks {
		if !id.Valid() {
			delete(c.QmChecks, id)
		}
	}
	switch {
	case c.EndedAt.IsZero() && !c.StartedAt.IsZero():
		c.EndedAt = c.StartedAt.Add(time.Duration(c.DurationSeconds) * time.Second)
	case c.DurationSeconds == 0 && !c.StartedAt.IsZero() && c.EndedAt.After(c.StartedAt):
		c.DurationSeconds = int(c.EndedAt.Sub(c.StartedAt).Seconds())
	}
}
