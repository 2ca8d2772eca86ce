package compliance

import (
	"sort"

	"voice-trends-go/internal/aggregator"
	"voice-trends-go/internal/timerange"
	"voice-trends-go/internal/types"
)

const trendDays = 14

type DailyScore struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

type Summary struct {
	OverallComplianceScore      int          `json:"overallComplianceScore"`
	PctHighRiskCalls            float64      `json:"pctHighRiskCalls"`
	PctMissingAuthentication    float64      `json:"pctMissingAuthentication"`
	PctAdviceBoundaryViolations float64      `json:"pctAdviceBoundaryViolations"`
	TrendDaily                  []DailyScore `json:"trendDaily"`
	HighRiskCallIDs             []string     `json:"highRiskCallIds"`
	MissingAuthCallIDs          []string     `json:"missingAuthCallIds"`
}

func failedAuth(c types.CallRecord) bool {
	for _, id := range []types.QmCheckID{types.QmSinVerified, types.QmIdentityConfirmed} {
		if v, ok := c.QmChecks[id]; ok && !v {
			return true
		}
	}
	return false
}

func adviceViolation(c types.CallRecord) bool {
	return c.AdviceBoundaryRisk == types.AdviceRiskModerate || c.AdviceBoundaryRisk == types.AdviceRiskHigh
}

// BuildSummary assembles the compliance risk panel.
func BuildSummary(calls []types.CallRecord) Summary {
	n := len(calls)
	highRisk, highRiskIDs := countIf(calls, IsHighRisk)
	missingAuth, missingAuthIDs := countIf(calls, failedAuth)
	violations, _ := countIf(calls, adviceViolation)

	days := aggregator.BucketCalls(calls, timerange.Daily)
	if len(days) > trendDays {
		days = days[len(days)-trendDays:]
	}
	trend := make([]DailyScore, len(days))
	for i, d := range days {
		trend[i] = DailyScore{Date: d.Key, Score: meanScore(d.Calls)}
	}

	return Summary{
		OverallComplianceScore:      meanScore(calls),
		PctHighRiskCalls:            aggregator.RatePct(highRisk, n),
		PctMissingAuthentication:    aggregator.RatePct(missingAuth, n),
		PctAdviceBoundaryViolations: aggregator.RatePct(violations, n),
		TrendDaily:                  trend,
		HighRiskCallIDs:             highRiskIDs,
		MissingAuthCallIDs:          missingAuthIDs,
	}
}

type NegativeTopic struct {
	Topic        string   `json:"topic"`
	AvgSentiment float64  `json:"avgSentiment"`
	Count        int      `json:"count"`
	CallIDs      []string `json:"callIds"`
}

type SentimentSummary struct {
	SentimentRecoveryRatePct   float64         `json:"sentimentRecoveryRatePct"`
	AvgSentimentDelta          float64         `json:"avgSentimentDelta"`
	PctProactiveEmpathy        float64         `json:"pctProactiveEmpathy"`
	TopTopicsNegativeSentiment []NegativeTopic `json:"topTopicsNegativeSentiment"`
	RecoveryCallIDs            []string        `json:"recoveryCallIds"`
}

const (
	negativeTopicBelow = 6
	negativeTopicLimit = 5
)

// BuildSentimentSummary measures in-call recovery over calls with at least
// two segments, plus empathy coverage and the most negative topics.
func BuildSentimentSummary(calls []types.CallRecord) SentimentSummary {
	var measured, recovered int
	var deltaSum float64
	recoveryIDs := []string{}
	for _, c := range calls {
		if len(c.Segments) < 2 {
			continue
		}
		open, close, _ := aggregator.OpenClose(c)
		measured++
		deltaSum += close - open
		if close > open {
			recovered++
			recoveryIDs = append(recoveryIDs, c.ID)
		}
	}

	empathy, _ := countIf(calls, func(c types.CallRecord) bool { return c.QmChecks[types.QmEmpathyShown] })

	negative := []NegativeTopic{}
	for _, t := range aggregator.TopicSentiment(calls) {
		if t.AvgMemberSentiment >= negativeTopicBelow {
			continue
		}
		negative = append(negative, NegativeTopic{Topic: t.Topic, AvgSentiment: t.AvgMemberSentiment, Count: t.Count, CallIDs: t.CallIDs})
		if len(negative) == negativeTopicLimit {
			break
		}
	}

	return SentimentSummary{
		SentimentRecoveryRatePct:   aggregator.RatePct(recovered, measured),
		AvgSentimentDelta:          aggregator.Round1(aggregator.Mean(deltaSum, measured)),
		PctProactiveEmpathy:        aggregator.RatePct(empathy, len(calls)),
		TopTopicsNegativeSentiment: negative,
		RecoveryCallIDs:            recoveryIDs,
	}
}

const UnknownAgent = "unknown"

type AgentRisk struct {
	AgentID         string   `json:"agentId"`
	ComplianceScore int      `json:"complianceScore"`
	HighRiskCount   int      `json:"highRiskCount"`
	CallIDs         []string `json:"callIds"`
}

type TopicRisk struct {
	Topic           string   `json:"topic"`
	ComplianceScore int      `json:"complianceScore"`
	HighRiskCount   int      `json:"highRiskCount"`
	CallIDs         []string `json:"callIds"`
}

type RiskSummary struct {
	PctComplaintSignal      float64     `json:"pctComplaintSignal"`
	PctVulnerableMemberFlag float64     `json:"pctVulnerableMemberFlag"`
	RiskByAgent             []AgentRisk `json:"riskByAgent"`
	RiskByTopic             []TopicRisk `json:"riskByTopic"`
}

type riskRow struct {
	key     string
	score   int
	high    int
	callIDs []string
}

func riskBy(calls []types.CallRecord, key func(types.CallRecord) string) []riskRow {
	groups := aggregator.GroupBy(calls, key)
	rows := make([]riskRow, len(groups))
	for i, g := range groups {
		high, _ := countIf(g.Calls, IsHighRisk)
		rows[i] = riskRow{key: g.Key, score: meanScore(g.Calls), high: high, callIDs: g.CallIDs()}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].score < rows[j].score })
	return rows
}

// BuildRiskSummary ranks agents and topics by mean compliance score, worst first.
func BuildRiskSummary(calls []types.CallRecord) RiskSummary {
	complaints, _ := countIf(calls, func(c types.CallRecord) bool { return c.IsComplaint })
	vulnerable, _ := countIf(calls, func(c types.CallRecord) bool { return c.VulnerableMemberFlag })

	agents := riskBy(calls, func(c types.CallRecord) string {
		if c.AgentID == "" {
			return UnknownAgent
		}
		return c.AgentID
	})
	byAgent := make([]AgentRisk, len(agents))
	for i, r := range agents {
		byAgent[i] = AgentRisk{AgentID: r.key, ComplianceScore: r.score, HighRiskCount: r.high, CallIDs: r.callIDs}
	}

	topics := riskBy(calls, func(c types.CallRecord) string { return c.PrimaryTopic })
	byTopic := make([]TopicRisk, len(topics))
	for i, r := range topics {
		byTopic[i] = TopicRisk{Topic: r.key, ComplianceScore: r.score, HighRiskCount: r.high, CallIDs: r.callIDs}
	}

	return RiskSummary{
		PctComplaintSignal:      aggregator.RatePct(complaints, len(calls)),
		PctVulnerableMemberFlag: aggregator.RatePct(vulnerable, len(calls)),
		RiskByAgent:             byAgent,
		RiskByTopic:             byTopic,
	}
}
