package compliance

import (
	"sort"

	"voice-trends-go/internal/aggregator"
	"voice-trends-go/internal/types"
)

// Baseline holds prior-period call counts per topic. A nil Baseline means no
// comparison is available and every change reads as zero.
type Baseline map[string]int

// BaselineFrom counts calls per primary topic.
func BaselineFrom(prior []types.CallRecord) Baseline {
	b := Baseline{}
	for _, c := range prior {
		b[c.PrimaryTopic]++
	}
	return b
}

// ChangePct compares count with the baseline for topic, as a whole percentage.
// A topic absent from a non-nil baseline that now has calls reads as +100.
func (b Baseline) ChangePct(topic string, count int) int {
	if b == nil {
		return 0
	}
	prior := b[topic]
	if prior == 0 {
		if count > 0 {
			return 100
		}
		return 0
	}
	return int(aggregator.Round(float64(count-prior) / float64(prior) * 100))
}

type TopicVolumeChange struct {
	Topic     string   `json:"topic"`
	Count     int      `json:"count"`
	ChangePct int      `json:"changePct"`
	CallIDs   []string `json:"callIds"`
}

type ComplaintTopic struct {
	Topic            string   `json:"topic"`
	ComplaintCount   int      `json:"complaintCount"`
	ComplaintRatePct float64  `json:"complaintRatePct"`
	CallIDs          []string `json:"callIds"`
}

type ClarityTopic struct {
	Topic      string   `json:"topic"`
	UnclearPct float64  `json:"unclearPct"`
	Count      int      `json:"count"`
	CallIDs    []string `json:"callIds"`
}

type TrendSummary struct {
	TopicVolumeChange     []TopicVolumeChange `json:"topicVolumeChange"`
	RisingComplaintTopics []ComplaintTopic    `json:"risingComplaintTopics"`
	LowClarityTopics      []ClarityTopic      `json:"lowClarityTopics"`
}

const (
	volumeChangeLimit  = 8
	complaintLimit     = 5
	lowClarityLimit    = 5
	lowClarityAbovePct = 30
)

func unclear(c types.CallRecord) bool {
	return c.ClarityOfNextSteps == types.ClarityPartial || c.ClarityOfNextSteps == types.ClarityUnclear
}

// BuildTrendSummary flags topics whose volume, complaint rate or clarity of
// next steps warrant attention.
func BuildTrendSummary(calls []types.CallRecord, baseline Baseline) TrendSummary {
	groups := aggregator.GroupBy(calls, func(c types.CallRecord) string { return c.PrimaryTopic })

	volume := make([]TopicVolumeChange, 0, len(groups))
	complaints := []ComplaintTopic{}
	clarity := []ClarityTopic{}
	for _, g := range groups {
		volume = append(volume, TopicVolumeChange{
			Topic:     g.Key,
			Count:     g.Count(),
			ChangePct: baseline.ChangePct(g.Key, g.Count()),
			CallIDs:   g.CallIDs(),
		})
		if n := g.Complaints(); n > 0 {
			complaints = append(complaints, ComplaintTopic{
				Topic:            g.Key,
				ComplaintCount:   n,
				ComplaintRatePct: aggregator.RatePct(n, g.Count()),
				CallIDs:          g.CallIDs(),
			})
		}
		n, _ := countIf(g.Calls, unclear)
		if pct := aggregator.RatePct(n, g.Count()); pct > lowClarityAbovePct {
			clarity = append(clarity, ClarityTopic{Topic: g.Key, UnclearPct: pct, Count: g.Count(), CallIDs: g.CallIDs()})
		}
	}

	sort.SliceStable(volume, func(i, j int) bool { return volume[i].ChangePct > volume[j].ChangePct })
	sort.SliceStable(complaints, func(i, j int) bool { return complaints[i].ComplaintRatePct > complaints[j].ComplaintRatePct })
	sort.SliceStable(clarity, func(i, j int) bool { return clarity[i].UnclearPct > clarity[j].UnclearPct })

	return TrendSummary{
		TopicVolumeChange:     truncate(volume, volumeChangeLimit),
		RisingComplaintTopics: truncate(complaints, complaintLimit),
		LowClarityTopics:      truncate(clarity, lowClarityLimit),
	}
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
