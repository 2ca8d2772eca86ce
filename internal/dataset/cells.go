package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"voice-trends-go/internal/types"
)

// columns lists the record fields in their canonical column order. Tabular
// sources name them in snake_case.
var columns = []string{
	"id", "external_id", "started_at", "ended_at", "duration_seconds",
	"member_sentiment", "agent_sentiment", "primary_intent", "primary_topic",
	"segments", "summary", "actions", "qm_checks", "is_complaint", "agent_id",
	"clarity_of_next_steps", "vulnerable_member_flag", "advice_boundary_risk",
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func decodeCell(s string, v any) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}

// recordFromCells builds a record from a column-name → text map.
func recordFromCells(cell func(name string) string) (types.CallRecord, error) {
	c := types.CallRecord{
		ID:                   strings.TrimSpace(cell("id")),
		ExternalID:           strings.TrimSpace(cell("external_id")),
		PrimaryIntent:        strings.TrimSpace(cell("primary_intent")),
		PrimaryTopic:         strings.TrimSpace(cell("primary_topic")),
		Summary:              cell("summary"),
		IsComplaint:          parseBool(cell("is_complaint")),
		AgentID:              strings.TrimSpace(cell("agent_id")),
		ClarityOfNextSteps:   types.Clarity(strings.ToLower(strings.TrimSpace(cell("clarity_of_next_steps")))),
		VulnerableMemberFlag: parseBool(cell("vulnerable_member_flag")),
		AdviceBoundaryRisk:   types.AdviceRisk(strings.ToLower(strings.TrimSpace(cell("advice_boundary_risk")))),
	}
	var err error
	if c.StartedAt, err = parseTime(cell("started_at")); err != nil {
		return c, fmt.Errorf("started_at: %w", err)
	}
	if c.EndedAt, err = parseTime(cell("ended_at")); err != nil {
		return c, fmt.Errorf("ended_at: %w", err)
	}
	if d := strings.TrimSpace(cell("duration_seconds")); d != "" {
		f, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return c, fmt.Errorf("duration_seconds: %w", err)
		}
		c.DurationSeconds = int(f)
	}
	if c.MemberSentiment, err = parseFloat(cell("member_sentiment")); err != nil {
		return c, fmt.Errorf("member_sentiment: %w", err)
	}
	if c.AgentSentiment, err = parseFloat(cell("agent_sentiment")); err != nil {
		return c, fmt.Errorf("agent_sentiment: %w", err)
	}
	if err := decodeCell(cell("segments"), &c.Segments); err != nil {
		return c, fmt.Errorf("segments: %w", err)
	}
	if err := decodeCell(cell("actions"), &c.Actions); err != nil {
		return c, fmt.Errorf("actions: %w", err)
	}
	if err := decodeCell(cell("qm_checks"), &c.QmChecks); err != nil {
		return c, fmt.Errorf("qm_checks: %w", err)
	}
	return c, nil
}
