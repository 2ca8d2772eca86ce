package dashboard

import (
	"voice-trends-go/internal/aggregator"
	"voice-trends-go/internal/compliance"
	"voice-trends-go/internal/timerange"
)

// Envelope keys match what the dashboard frontend reads.

var trendViews = map[string]view{
	"intents": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"intents": aggregator.Intents(q.calls), "totalCalls": len(q.calls)}, nil
	}},
	"topics": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"topics": aggregator.Topics(q.calls), "totalCalls": len(q.calls)}, nil
	}},
	"sentiment": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"sentiment": aggregator.SentimentDistribution(q.calls), "totalCalls": len(q.calls)}, nil
	}},
}

var insightViews = map[string]view{
	"volume-over-time": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"buckets": aggregator.VolumeOverTime(q.calls, q.rng.Granularity())}, nil
	}},
	"topic-sentiment": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"topics": aggregator.TopicSentiment(q.calls)}, nil
	}},
	"intent-complaints": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"intents": aggregator.IntentComplaints(q.calls)}, nil
	}},
	"volume-by-hour": {timerange.Last7Days, func(q query) (any, error) {
		return map[string]any{"buckets": aggregator.VolumeByHour(q.calls)}, nil
	}},
	"volume-by-day": {timerange.Last30Days, func(q query) (any, error) {
		return map[string]any{"buckets": aggregator.VolumeByDayOfWeek(q.calls)}, nil
	}},
	"kpis": {timerange.DefaultRange, func(q query) (any, error) {
		return aggregator.ComputeKPIs(q.calls), nil
	}},
	"member-agent-sentiment": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"data": aggregator.MemberAgentSentiment(q.calls)}, nil
	}},
	"need-categories": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"categories": aggregator.NeedCategories(q.calls)}, nil
	}},
	"sentiment-arc": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"arcs": aggregator.SentimentArc(q.calls)}, nil
	}},
	"outcome-heatmap": {timerange.DefaultRange, func(q query) (any, error) {
		return aggregator.OutcomeHeatmap(q.calls), nil
	}},
	"emotion-profile": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"emotions": aggregator.EmotionProfile(q.calls)}, nil
	}},
	"handle-time-sentiment": {timerange.DefaultRange, func(q query) (any, error) {
		return aggregator.HandleTimeSentiment(q.calls), nil
	}},
	"actions-by-topic": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"byTopic": aggregator.ActionsByTopic(q.calls)}, nil
	}},
	"talking-points": {timerange.DefaultRange, func(q query) (any, error) {
		return aggregator.TalkingPoints(q.calls), nil
	}},
	"qm-compliance": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"checks": compliance.ByCheck(q.calls)}, nil
	}},
	"qm-compliance-over-time": {timerange.DefaultRange, func(q query) (any, error) {
		return map[string]any{"buckets": compliance.OverTime(q.calls, q.rng.Granularity())}, nil
	}},
}

var summaryViews = map[string]view{
	"compliance-summary": {timerange.Last30Days, func(q query) (any, error) {
		return compliance.BuildSummary(q.calls), nil
	}},
	"sentiment-summary": {timerange.Last30Days, func(q query) (any, error) {
		return compliance.BuildSentimentSummary(q.calls), nil
	}},
	"risk-summary": {timerange.Last30Days, func(q query) (any, error) {
		return compliance.BuildRiskSummary(q.calls), nil
	}},
	"trend-summary": {timerange.Last30Days, func(q query) (any, error) {
		prior, err := q.previous()
		if err != nil {
			return nil, err
		}
		return compliance.BuildTrendSummary(q.calls, compliance.BaselineFrom(prior)), nil
	}},
}
