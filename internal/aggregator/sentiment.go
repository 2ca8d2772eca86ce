package aggregator

import (
	"sort"

	"voice-trends-go/internal/types"
)

type SentimentBucket struct {
	Label      string   `json:"label"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
	CallIDs    []string `json:"callIds"`
}

// A score lands in the first bucket whose bound it is below, so 3.5 counts
// as negative and 6.5 as neutral.
var sentimentBuckets = []struct {
	label string
	below float64
}{
	{"Negative (0–3)", 4},
	{"Neutral (4–6)", 7},
	{"Positive (7–10)", 11},
}

// SentimentDistribution splits calls into three member-sentiment buckets.
// Percentages are whole numbers and may not sum to exactly 100.
func SentimentDistribution(calls []types.CallRecord) []SentimentBucket {
	out := make([]SentimentBucket, len(sentimentBuckets))
	for i, b := range sentimentBuckets {
		out[i] = SentimentBucket{Label: b.label, CallIDs: []string{}}
	}
	for _, c := range calls {
		for i, b := range sentimentBuckets {
			if c.MemberSentiment < b.below || i == len(sentimentBuckets)-1 {
				out[i].Count++
				out[i].CallIDs = append(out[i].CallIDs, c.ID)
				break
			}
		}
	}
	for i := range out {
		if len(calls) > 0 {
			out[i].Percentage = Round(float64(out[i].Count) / float64(len(calls)) * 100)
		}
	}
	return out
}

type TopicSentimentItem struct {
	Topic              string   `json:"topic"`
	Count              int      `json:"count"`
	AvgMemberSentiment float64  `json:"avgMemberSentiment"`
	CallIDs            []string `json:"callIds"`
}

// TopicSentiment averages member sentiment per topic, riskiest first.
func TopicSentiment(calls []types.CallRecord) []TopicSentimentItem {
	groups := GroupBy(calls, byTopic)
	out := make([]TopicSentimentItem, len(groups))
	for i, g := range groups {
		out[i] = TopicSentimentItem{
			Topic:              g.Key,
			Count:              g.Count(),
			AvgMemberSentiment: Round1(Mean(g.Sum(memberSentiment), g.Count())),
			CallIDs:            g.CallIDs(),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgMemberSentiment < out[j].AvgMemberSentiment })
	return out
}

type SentimentCell struct {
	MemberSentiment float64  `json:"memberSentiment"`
	AgentSentiment  float64  `json:"agentSentiment"`
	Count           int      `json:"count"`
	CallIDs         []string `json:"callIds"`
}

func halfStep(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	return Round(v*2) / 2
}

// MemberAgentSentiment places each call on a 0.5-step member × agent grid.
func MemberAgentSentiment(calls []types.CallRecord) []SentimentCell {
	type cellKey struct{ m, a float64 }
	idx := map[cellKey]int{}
	out := []SentimentCell{}
	for _, c := range calls {
		k := cellKey{halfStep(c.MemberSentiment), halfStep(c.AgentSentiment)}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, SentimentCell{MemberSentiment: k.m, AgentSentiment: k.a})
		}
		out[i].Count++
		out[i].CallIDs = append(out[i].CallIDs, c.ID)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MemberSentiment != out[j].MemberSentiment {
			return out[i].MemberSentiment < out[j].MemberSentiment
		}
		return out[i].AgentSentiment < out[j].AgentSentiment
	})
	return out
}

type SentimentArcItem struct {
	Intent           string   `json:"intent"`
	Count            int      `json:"count"`
	OpeningSentiment float64  `json:"openingSentiment"`
	ClosingSentiment float64  `json:"closingSentiment"`
	Delta            float64  `json:"delta"`
	CallIDs          []string `json:"callIds"`
}

// OpenClose returns member sentiment of the earliest and latest segment by
// start offset. ok is false for calls without segments. c is not modified.
func OpenClose(c types.CallRecord) (open, close float64, ok bool) {
	if len(c.Segments) == 0 {
		return 0, 0, false
	}
	segs := make([]types.CallSegment, len(c.Segments))
	copy(segs, c.Segments)
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].StartOffset < segs[j].StartOffset })
	return segs[0].MemberSentiment, segs[len(segs)-1].MemberSentiment, true
}

// SentimentArc reports, per intent, how member sentiment moves from the first
// to the last segment. Worst deterioration first.
func SentimentArc(calls []types.CallRecord) []SentimentArcItem {
	withSegments := make([]types.CallRecord, 0, len(calls))
	for _, c := range calls {
		if len(c.Segments) > 0 {
			withSegments = append(withSegments, c)
		}
	}
	groups := GroupBy(withSegments, byIntent)
	out := make([]SentimentArcItem, len(groups))
	for i, g := range groups {
		var openSum, closeSum float64
		for _, c := range g.Calls {
			o, cl, _ := OpenClose(c)
			openSum += o
			closeSum += cl
		}
		opening := Round1(Mean(openSum, g.Count()))
		closing := Round1(Mean(closeSum, g.Count()))
		out[i] = SentimentArcItem{
			Intent:           g.Key,
			Count:            g.Count(),
			OpeningSentiment: opening,
			ClosingSentiment: closing,
			Delta:            Round1(closing - opening),
			CallIDs:          g.CallIDs(),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Delta < out[j].Delta })
	return out
}
