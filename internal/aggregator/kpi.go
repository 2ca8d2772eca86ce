package aggregator

import (
	"sort"

	"voice-trends-go/internal/types"
)

type KPIs struct {
	TotalCalls         int     `json:"totalCalls"`
	AvgDurationSec     int     `json:"avgDurationSec"`
	ComplaintCount     int     `json:"complaintCount"`
	ComplaintRatePct   float64 `json:"complaintRatePct"`
	AvgMemberSentiment float64 `json:"avgMemberSentiment"`
	AvgAgentSentiment  float64 `json:"avgAgentSentiment"`
}

// ComputeKPIs returns headline figures for calls. Every field is zero for an
// empty input.
func ComputeKPIs(calls []types.CallRecord) KPIs {
	if len(calls) == 0 {
		return KPIs{}
	}
	all := Group{Calls: calls}
	n := all.Count()
	complaints := all.Complaints()
	return KPIs{
		TotalCalls:         n,
		AvgDurationSec:     int(Round(Mean(all.Sum(duration), n))),
		ComplaintCount:     complaints,
		ComplaintRatePct:   RatePct(complaints, n),
		AvgMemberSentiment: Round1(Mean(all.Sum(memberSentiment), n)),
		AvgAgentSentiment:  Round1(Mean(all.Sum(agentSentiment), n)),
	}
}

type IntentComplaintItem struct {
	Intent           string   `json:"intent"`
	Count            int      `json:"count"`
	Complaints       int      `json:"complaints"`
	ComplaintRatePct float64  `json:"complaintRatePct"`
	CallIDs          []string `json:"callIds"`
}

// IntentComplaints reports complaint volume and rate per intent, highest rate first.
func IntentComplaints(calls []types.CallRecord) []IntentComplaintItem {
	groups := GroupBy(calls, byIntent)
	out := make([]IntentComplaintItem, len(groups))
	for i, g := range groups {
		out[i] = IntentComplaintItem{
			Intent:           g.Key,
			Count:            g.Count(),
			Complaints:       g.Complaints(),
			ComplaintRatePct: RatePct(g.Complaints(), g.Count()),
			CallIDs:          g.CallIDs(),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ComplaintRatePct > out[j].ComplaintRatePct })
	return out
}

type HandleTimeItem struct {
	Intent             string   `json:"intent"`
	Count              int      `json:"count"`
	AvgHandleTimeSec   int      `json:"avgHandleTimeSec"`
	AvgMemberSentiment float64  `json:"avgMemberSentiment"`
	ComplaintRatePct   float64  `json:"complaintRatePct"`
	CallIDs            []string `json:"callIds"`
}

type HandleTimeView struct {
	Intents            []HandleTimeItem `json:"intents"`
	AvgHandleTimeSec   int              `json:"avgHandleTimeSec"`
	AvgMemberSentiment float64          `json:"avgMemberSentiment"`
}

// HandleTimeSentiment pairs handle time with member sentiment per intent,
// plus the overall averages the chart draws as reference lines.
func HandleTimeSentiment(calls []types.CallRecord) HandleTimeView {
	groups := GroupBy(calls, byIntent)
	items := make([]HandleTimeItem, len(groups))
	for i, g := range groups {
		items[i] = HandleTimeItem{
			Intent:             g.Key,
			Count:              g.Count(),
			AvgHandleTimeSec:   int(Round(Mean(g.Sum(duration), g.Count()))),
			AvgMemberSentiment: Round1(Mean(g.Sum(memberSentiment), g.Count())),
			ComplaintRatePct:   RatePct(g.Complaints(), g.Count()),
			CallIDs:            g.CallIDs(),
		}
	}
	all := Group{Calls: calls}
	return HandleTimeView{
		Intents:            items,
		AvgHandleTimeSec:   int(Round(Mean(all.Sum(duration), all.Count()))),
		AvgMemberSentiment: Round1(Mean(all.Sum(memberSentiment), all.Count())),
	}
}
