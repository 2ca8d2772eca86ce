package dataset

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
	"voice-trends-go/internal/types"
)

// LoadSQLite reads every row of the calls table from a database opened
// read-only. Nullable text columns may be NULL.
func LoadSQLite(path string) ([]types.CallRecord, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	rows, err := db.Query(`SELECT ` + strings.Join(columns, ", ") + ` FROM calls ORDER BY ended_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	var out []types.CallRecord
	for rows.Next() {
		vals := make([]sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan call: %w", err)
		}
		byName := make(map[string]string, len(columns))
		for i, c := range columns {
			byName[c] = vals[i].String
		}
		rec, err := recordFromCells(func(name string) string { return byName[name] })
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", byName["id"], err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
