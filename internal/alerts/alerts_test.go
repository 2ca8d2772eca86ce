package alerts

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"voice-trends-go/internal/types"
)

func complaints(n, other int) []types.CallRecord {
	var out []types.CallRecord
	for i := 0; i < n; i++ {
		out = append(out, types.CallRecord{ID: fmt.Sprintf("c%d", i), IsComplaint: true})
	}
	for i := 0; i < other; i++ {
		out = append(out, types.CallRecord{ID: fmt.Sprintf("o%d", i)})
	}
	return out
}

func TestComplaints_BelowThreshold(t *testing.T) {
	a := Complaints(complaints(7, 20), DefaultConfig())

	assert.False(t, a.ComplaintsElevated)
	assert.Equal(t, 7, a.ComplaintCount)
	assert.Equal(t, 8, a.Threshold)
	assert.Equal(t, 60, a.WindowMinutes)
	assert.Empty(t, a.Message)
}

func TestComplaints_AtThreshold(t *testing.T) {
	a := Complaints(complaints(8, 0), DefaultConfig())

	assert.True(t, a.ComplaintsElevated)
	assert.Equal(t, "High complaint volume: 8 complaints in the last 60 minutes (threshold: 8).", a.Message)
}

func TestComplaints_CustomConfig(t *testing.T) {
	a := Complaints(complaints(3, 1), Config{ComplaintThreshold: 2, Window: 15 * time.Minute})

	assert.True(t, a.ComplaintsElevated)
	assert.Equal(t, "High complaint volume: 3 complaints in the last 15 minutes (threshold: 2).", a.Message)
}
