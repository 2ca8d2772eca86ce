package aggregator

import (
	"math"
	"sort"
	"time"

	"voice-trends-go/internal/timerange"
	"voice-trends-go/internal/types"
)

// Group is one key of a grouping pass with its member calls in input order.
type Group struct {
	Key   string
	Calls []types.CallRecord
}

func (g Group) Count() int { return len(g.Calls) }

func (g Group) CallIDs() []string {
	ids := make([]string, len(g.Calls))
	for i, c := range g.Calls {
		ids[i] = c.ID
	}
	return ids
}

// Sum adds up f over the group's calls.
func (g Group) Sum(f func(types.CallRecord) float64) float64 {
	var s float64
	for _, c := range g.Calls {
		s += f(c)
	}
	return s
}

// Complaints counts complaint calls in the group.
func (g Group) Complaints() int {
	n := 0
	for _, c := range g.Calls {
		if c.IsComplaint {
			n++
		}
	}
	return n
}

// GroupBy partitions calls by key in one pass. Groups come back in the order
// their key was first seen, so callers never depend on map iteration.
func GroupBy(calls []types.CallRecord, key func(types.CallRecord) string) []Group {
	idx := make(map[string]int)
	var groups []Group
	for _, c := range calls {
		k := key(c)
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Calls = append(groups[i].Calls, c)
	}
	return groups
}

// TopKeys returns up to n keys by descending group size, ties in first-seen order.
func TopKeys(calls []types.CallRecord, key func(types.CallRecord) string, n int) []string {
	groups := GroupBy(calls, key)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count() > groups[j].Count() })
	if len(groups) > n {
		groups = groups[:n]
	}
	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	return keys
}

func byIntent(c types.CallRecord) string { return c.PrimaryIntent }
func byTopic(c types.CallRecord) string  { return c.PrimaryTopic }

func memberSentiment(c types.CallRecord) float64 { return c.MemberSentiment }
func agentSentiment(c types.CallRecord) float64  { return c.AgentSentiment }
func duration(c types.CallRecord) float64        { return float64(c.DurationSeconds) }

// Round rounds half up, matching how the dashboard has always displayed figures.
func Round(v float64) float64 { return math.Floor(v + 0.5) }

func Round1(v float64) float64 { return Round(v*10) / 10 }

func Round3(v float64) float64 { return Round(v*1000) / 1000 }

// Mean returns sum/n, or 0 for an empty denominator.
func Mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// RatePct is 100·num/den with one decimal, 0 when den is 0.
func RatePct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return Round(float64(num)/float64(den)*1000) / 10
}

// BucketKey truncates t (in UTC) to the granularity. The key sorts
// lexically in time order; the label is what the chart axis shows.
func BucketKey(t time.Time, g timerange.Granularity) (key, label string) {
	t = t.UTC()
	if g == timerange.Hourly {
		key = t.Format("2006-01-02T15") + ":00"
		return key, key[11:16]
	}
	key = t.Format("2006-01-02")
	return key, key
}

// BucketCalls groups calls by end-instant bucket, ascending by key.
func BucketCalls(calls []types.CallRecord, g timerange.Granularity) []Group {
	groups := GroupBy(calls, func(c types.CallRecord) string {
		k, _ := BucketKey(c.EndedAt, g)
		return k
	})
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// BucketLabel derives the display label from a key produced by BucketKey.
func BucketLabel(key string, g timerange.Granularity) string {
	if g == timerange.Hourly && len(key) >= 16 {
		return key[11:16]
	}
	return key
}
