package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"voice-trends-go/internal/types"
)

// LoadJSON reads a JSON array of call records.
func LoadJSON(path string) ([]types.CallRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var calls []types.CallRecord
	if err := json.Unmarshal(data, &calls); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return calls, nil
}
