// Package alerts evaluates operational alert rules over recent calls.
package alerts

import (
	"fmt"
	"time"

	"voice-trends-go/internal/types"
)

const (
	DefaultComplaintThreshold = 8
	DefaultWindow             = 60 * time.Minute
)

type Config struct {
	ComplaintThreshold int
	Window             time.Duration
}

func DefaultConfig() Config {
	return Config{ComplaintThreshold: DefaultComplaintThreshold, Window: DefaultWindow}
}

type ComplaintAlert struct {
	ComplaintsElevated bool   `json:"complaintsElevated"`
	ComplaintCount     int    `json:"complaintCount"`
	Threshold          int    `json:"threshold"`
	WindowMinutes      int    `json:"windowMinutes"`
	Message            string `json:"message,omitempty"`
}

// Complaints counts complaint calls among recent and raises the alert when
// the count reaches the threshold. recent must already be limited to the
// alert window.
func Complaints(recent []types.CallRecord, cfg Config) ComplaintAlert {
	n := 0
	for _, c := range recent {
		if c.IsComplaint {
			n++
		}
	}
	a := ComplaintAlert{
		ComplaintsElevated: n >= cfg.ComplaintThreshold,
		ComplaintCount:     n,
		Threshold:          cfg.ComplaintThreshold,
		WindowMinutes:      int(cfg.Window / time.Minute),
	}
	if a.ComplaintsElevated {
		a.Message = fmt.Sprintf("High complaint volume: %d complaints in the last %d minutes (threshold: %d).",
			n, a.WindowMinutes, a.Threshold)
	}
	return a
}
