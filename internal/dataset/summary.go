package dataset

import (
	"sort"
	"time"

	"voice-trends-go/internal/types"
)

// Summary is a compact description of a loaded dataset, logged at startup so
// operators can tell what the dashboard is serving.
type Summary struct {
	TotalCalls   int            `json:"total_calls"`
	Earliest     time.Time      `json:"earliest"`
	Latest       time.Time      `json:"latest"`
	Complaints   int            `json:"complaints"`
	Agents       int            `json:"agents"`
	WithSegments int            `json:"with_segments"`
	WithQm       int            `json:"with_qm_checks"`
	TopIntents   []string       `json:"top_intents"`
	ByTopic      map[string]int `json:"by_topic"`
}

const summaryTopN = 3

func Summarize(calls []types.CallRecord) Summary {
	s := Summary{TotalCalls: len(calls), ByTopic: map[string]int{}}
	intents := map[string]int{}
	agents := map[string]bool{}
	for _, c := range calls {
		if s.Earliest.IsZero() || c.EndedAt.Before(s.Earliest) {
			s.Earliest = c.EndedAt
		}
		if c.EndedAt.After(s.Latest) {
			s.Latest = c.EndedAt
		}
		if c.IsComplaint {
			s.Complaints++
		}
		if c.AgentID != "" {
			agents[c.AgentID] = true
		}
		if len(c.Segments) > 0 {
			s.WithSegments++
		}
		if len(c.QmChecks) > 0 {
			s.WithQm++
		}
		intents[c.PrimaryIntent]++
		s.ByTopic[c.PrimaryTopic]++
	}
	s.Agents = len(agents)

	type pc struct {
		p string
		c int
	}
	var arr []pc
	for k, v := range intents {
		arr = append(arr, pc{k, v})
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].c != arr[j].c {
			return arr[i].c > arr[j].c
		}
		return arr[i].p < arr[j].p
	})
	s.TopIntents = []string{}
	for i := 0; i < len(arr) && i < summaryTopN; i++ {
		s.TopIntents = append(s.TopIntents, arr[i].p)
	}
	return s
}
