package aggregator

import (
	"sort"

	"voice-trends-go/internal/types"
)

type EmotionProfileItem struct {
	Emotion             string   `json:"emotion"`
	ComplaintAvg        float64  `json:"complaintAvg"`
	NonComplaintAvg     float64  `json:"nonComplaintAvg"`
	ComplaintCallIDs    []string `json:"complaintCallIds"`
	NonComplaintCallIDs []string `json:"nonComplaintCallIds"`
}

type emotionSide struct {
	sum   float64
	n     int
	calls []string
	seen  map[string]bool
}

func (s *emotionSide) add(callID string, v float64) {
	s.sum += v
	s.n++
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	if !s.seen[callID] {
		s.seen[callID] = true
		s.calls = append(s.calls, callID)
	}
}

func (s *emotionSide) avg() float64 { return Round3(Mean(s.sum, s.n)) }

func (s *emotionSide) ids() []string {
	if s.calls == nil {
		return []string{}
	}
	return s.calls
}

// EmotionProfile compares mean per-segment emotion intensity between
// complaint and non-complaint calls. Emotions over-represented in complaints
// come first; a side with no readings averages to zero.
func EmotionProfile(calls []types.CallRecord) []EmotionProfileItem {
	var order []string
	complaint := map[string]*emotionSide{}
	other := map[string]*emotionSide{}
	side := func(m map[string]*emotionSide, e string) *emotionSide {
		s, ok := m[e]
		if !ok {
			s = &emotionSide{}
			m[e] = s
		}
		return s
	}
	known := map[string]bool{}

	for _, c := range calls {
		target := other
		if c.IsComplaint {
			target = complaint
		}
		for _, seg := range c.Segments {
			labels := make([]string, 0, len(seg.Emotions))
			for e := range seg.Emotions {
				labels = append(labels, e)
			}
			sort.Strings(labels)
			for _, e := range labels {
				if !known[e] {
					known[e] = true
					order = append(order, e)
				}
				side(target, e).add(c.ID, seg.Emotions[e])
			}
		}
	}

	out := make([]EmotionProfileItem, len(order))
	for i, e := range order {
		cs, os := side(complaint, e), side(other, e)
		out[i] = EmotionProfileItem{
			Emotion:             e,
			ComplaintAvg:        cs.avg(),
			NonComplaintAvg:     os.avg(),
			ComplaintCallIDs:    cs.ids(),
			NonComplaintCallIDs: os.ids(),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		gi := out[i].ComplaintAvg - out[i].NonComplaintAvg
		gj := out[j].ComplaintAvg - out[j].NonComplaintAvg
		if gi != gj {
			return gi > gj
		}
		return out[i].Emotion < out[j].Emotion
	})
	return out
}
