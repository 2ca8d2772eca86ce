package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"voice-trends-go/internal/types"
)

// headerAliases maps normalised header text to a column name for the
// spreadsheets exported by hand, where headings drift.
var headerAliases = map[string]string{
	"callid":     "id",
	"intent":     "primary_intent",
	"topic":      "primary_topic",
	"complaint":  "is_complaint",
	"duration":   "duration_seconds",
	"agent":      "agent_id",
	"clarity":    "clarity_of_next_steps",
	"vulnerable": "vulnerable_member_flag",
	"advicerisk": "advice_boundary_risk",
	"qm":         "qm_checks",
}

func normaliseHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// detectColumns maps each known column name to its index in header.
func detectColumns(header []string) map[string]int {
	byNorm := make(map[string]string, len(columns)+len(headerAliases))
	for _, c := range columns {
		byNorm[normaliseHeader(c)] = c
	}
	for alias, c := range headerAliases {
		byNorm[alias] = c
	}
	idx := map[string]int{}
	for i, h := range header {
		name, ok := byNorm[normaliseHeader(h)]
		if !ok {
			continue
		}
		if _, taken := idx[name]; !taken {
			idx[name] = i
		}
	}
	return idx
}

// LoadXLSX reads call records from the first sheet. The first row is the
// header; segments, actions and qm_checks cells hold JSON. Rows without an
// id are skipped.
func LoadXLSX(path string) ([]types.CallRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	idx := detectColumns(rows[0])
	if _, ok := idx["id"]; !ok {
		return nil, fmt.Errorf("no id column in header %v", rows[0])
	}

	var out []types.CallRecord
	for i, r := range rows[1:] {
		cell := func(name string) string {
			j, ok := idx[name]
			if !ok || j >= len(r) {
				return ""
			}
			return r[j]
		}
		if strings.TrimSpace(cell("id")) == "" {
			continue
		}
		rec, err := recordFromCells(cell)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
