// Package compliance derives quality-management scores and the executive
// summaries built on top of them.
package compliance

import (
	"sort"

	"voice-trends-go/internal/aggregator"
	"voice-trends-go/internal/timerange"
	"voice-trends-go/internal/types"
)

const (
	// DefaultScore is assigned to calls that carry no QM results at all.
	DefaultScore = 85
	// HighRiskBelow marks a call as high risk when its score is under it.
	HighRiskBelow = 70
)

// Score is the share of a call's recorded QM checks that passed, 0–100.
func Score(c types.CallRecord) int {
	if len(c.QmChecks) == 0 {
		return DefaultScore
	}
	passed := 0
	for _, ok := range c.QmChecks {
		if ok {
			passed++
		}
	}
	return int(aggregator.Round(float64(passed) / float64(len(c.QmChecks)) * 100))
}

func IsHighRisk(c types.CallRecord) bool { return Score(c) < HighRiskBelow }

type CheckResult struct {
	CheckID       types.QmCheckID `json:"checkId"`
	Label         string          `json:"label"`
	Passed        int             `json:"passed"`
	Total         int             `json:"total"`
	RatePct       float64         `json:"ratePct"`
	CallIDsPassed []string        `json:"callIdsPassed"`
	CallIDsFailed []string        `json:"callIdsFailed"`
}

// ByCheck computes the pass rate of every QM check, weakest first. Calls that
// did not record a check do not count toward its total.
func ByCheck(calls []types.CallRecord) []CheckResult {
	out := make([]CheckResult, 0, len(types.QmChecks))
	for _, id := range types.QmChecks {
		r := CheckResult{CheckID: id, Label: id.Label(), CallIDsPassed: []string{}, CallIDsFailed: []string{}}
		for _, c := range calls {
			v, ok := c.QmChecks[id]
			switch {
			case !ok:
			case v:
				r.CallIDsPassed = append(r.CallIDsPassed, c.ID)
			default:
				r.CallIDsFailed = append(r.CallIDsFailed, c.ID)
			}
		}
		r.Passed = len(r.CallIDsPassed)
		r.Total = r.Passed + len(r.CallIDsFailed)
		r.RatePct = aggregator.RatePct(r.Passed, r.Total)
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RatePct < out[j].RatePct })
	return out
}

type CheckRate struct {
	CheckID types.QmCheckID `json:"checkId"`
	RatePct float64         `json:"ratePct"`
}

type OverTimeBucket struct {
	Bucket         string      `json:"bucket"`
	Label          string      `json:"label"`
	OverallRatePct float64     `json:"overallRatePct"`
	ByCheck        []CheckRate `json:"byCheck"`
}

// OverTime runs ByCheck per time bucket. The overall rate is the unweighted
// mean of the per-check rates, so an unrecorded check pulls it down.
func OverTime(calls []types.CallRecord, g timerange.Granularity) []OverTimeBucket {
	groups := aggregator.BucketCalls(calls, g)
	out := make([]OverTimeBucket, len(groups))
	for i, grp := range groups {
		checks := ByCheck(grp.Calls)
		rates := make([]CheckRate, len(checks))
		var sum float64
		for j, r := range checks {
			rates[j] = CheckRate{CheckID: r.CheckID, RatePct: r.RatePct}
			sum += r.RatePct
		}
		out[i] = OverTimeBucket{
			Bucket:         grp.Key,
			Label:          aggregator.BucketLabel(grp.Key, g),
			OverallRatePct: aggregator.Round1(aggregator.Mean(sum, len(checks))),
			ByCheck:        rates,
		}
	}
	return out
}

func meanScore(calls []types.CallRecord) int {
	if len(calls) == 0 {
		return 0
	}
	sum := 0
	for _, c := range calls {
		sum += Score(c)
	}
	return int(aggregator.Round(float64(sum) / float64(len(calls))))
}

func countIf(calls []types.CallRecord, pred func(types.CallRecord) bool) (n int, ids []string) {
	ids = []string{}
	for _, c := range calls {
		if pred(c) {
			ids = append(ids, c.ID)
		}
	}
	return len(ids), ids
}
