package aggregator

import (
	"fmt"
	"time"

	"voice-trends-go/internal/types"
)

var t0 = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) // a Monday

type callOpt func(*types.CallRecord)

func intent(s string) callOpt  { return func(c *types.CallRecord) { c.PrimaryIntent = s } }
func topic(s string) callOpt   { return func(c *types.CallRecord) { c.PrimaryTopic = s } }
func member(v float64) callOpt { return func(c *types.CallRecord) { c.MemberSentiment = v } }
func agent(v float64) callOpt  { return func(c *types.CallRecord) { c.AgentSentiment = v } }
func complaint() callOpt       { return func(c *types.CallRecord) { c.IsComplaint = true } }
func secs(n int) callOpt       { return func(c *types.CallRecord) { c.DurationSeconds = n } }
func endedAt(t time.Time) callOpt {
	return func(c *types.CallRecord) { c.EndedAt = t; c.StartedAt = t.Add(-5 * time.Minute) }
}
func segs(s ...types.CallSegment) callOpt { return func(c *types.CallRecord) { c.Segments = s } }
func actions(desc ...string) callOpt {
	return func(c *types.CallRecord) {
		for _, d := range desc {
			c.Actions = append(c.Actions, types.CallAction{Description: d})
		}
	}
}

func seg(start, sentiment float64, emotions map[string]float64) types.CallSegment {
	return types.CallSegment{StartOffset: start, EndOffset: start + 30, MemberSentiment: sentiment, Emotions: emotions}
}

func mk(id string, opts ...callOpt) types.CallRecord {
	c := types.CallRecord{
		ID:              id,
		StartedAt:       t0.Add(-5 * time.Minute),
		EndedAt:         t0,
		DurationSeconds: 300,
		MemberSentiment: 5,
		AgentSentiment:  5,
		PrimaryIntent:   "Pension balance inquiry",
		PrimaryTopic:    "Pension balance",
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// sample is a mixed set used by the invariant tests.
func sample() []types.CallRecord {
	intents := []string{"Pension balance inquiry", "Address update", "Complaint - delay", "Tax form request", "Retirement estimate", "Spouse benefit", "Other thing"}
	topics := []string{"Pension balance", "Address", "Payment delay", "Tax slips", "Estimates", "Survivor", "Misc"}
	var out []types.CallRecord
	for i := 0; i < 40; i++ {
		opts := []callOpt{
			intent(intents[(i*3)%len(intents)]),
			topic(topics[(i*5)%len(topics)]),
			member(float64(i%11) + 0.25*float64(i%3)),
			agent(float64((i*7)%11)),
			secs(120 + i*13),
			endedAt(t0.Add(-time.Duration(i*37) * time.Minute)),
			segs(
				seg(60, float64((i+3)%10), map[string]float64{"frustration": float64(i%5) / 10}),
				seg(0, float64(i%10), map[string]float64{"calm": 0.5, "frustration": 0.1}),
			),
			actions(fmt.Sprintf("action-%d", i%4)),
		}
		if i%4 == 0 {
			opts = append(opts, complaint())
		}
		out = append(out, mk(fmt.Sprintf("call-%02d", i), opts...))
	}
	return out
}

func allIDs(calls []types.CallRecord) []string {
	ids := make([]string, len(calls))
	for i, c := range calls {
		ids[i] = c.ID
	}
	return ids
}
