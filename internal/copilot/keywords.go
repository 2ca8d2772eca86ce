package copilot

import "strings"

type query string

func (q query) has(words ...string) bool {
	for _, w := range words {
		if !strings.Contains(string(q), w) {
			return false
		}
	}
	return true
}

func (q query) any(words ...string) bool {
	for _, w := range words {
		if strings.Contains(string(q), w) {
			return true
		}
	}
	return false
}

// Rules are evaluated in order and the first match wins, so precedence is
// the slice order.
type rule[T any] struct {
	match  func(q query, s chartSpec) bool
	result T
}

func firstMatch[T any](rules []rule[T], q query, s chartSpec, fallback T) T {
	for _, r := range rules {
		if r.match(q, s) {
			return r.result
		}
	}
	return fallback
}

var typeRules = []rule[ChartType]{
	{func(q query, _ chartSpec) bool { return q.has("line") || q.has("trend", "time") }, ChartLine},
	{func(q query, _ chartSpec) bool { return q.any("pie", "breakdown", "donut") }, ChartPie},
	{func(q query, _ chartSpec) bool { return q.has("area") }, ChartArea},
}

var metricRules = []rule[Metric]{
	{func(q query, _ chartSpec) bool { return q.has("topic") }, MetricTopics},
	{func(q query, _ chartSpec) bool { return q.has("sentiment") }, MetricSentiment},
	{func(q query, _ chartSpec) bool { return q.has("volume") && q.any("time", "over") }, MetricVolumeOverTime},
	{func(q query, _ chartSpec) bool {
		return q.any("call volume", "number of calls") || (q.has("calls") && !q.has("intent"))
	}, MetricCalls},
}

// Title rules may look at the metric already chosen.
var titleRules = []rule[string]{
	{func(q query, _ chartSpec) bool { return q.has("intent") }, "Intents"},
	{func(q query, _ chartSpec) bool { return q.has("topic") }, "Topics"},
	{func(q query, _ chartSpec) bool { return q.has("sentiment") }, "Member sentiment"},
	{func(_ query, s chartSpec) bool { return s.Metric == MetricVolumeOverTime }, "Call volume over time"},
	{func(_ query, s chartSpec) bool { return s.Metric == MetricCalls }, "Call volume"},
}

// fromKeywords infers a chart from plain keywords in the request.
func fromKeywords(text string) chartSpec {
	q := query(strings.ToLower(text))
	var s chartSpec
	s.Type = firstMatch(typeRules, q, s, ChartBar)
	s.Metric = firstMatch(metricRules, q, s, MetricIntents)
	s.Title = firstMatch(titleRules, q, s, DefaultTitle)
	return s
}
