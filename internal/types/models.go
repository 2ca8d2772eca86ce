package types

import "time"

// CallRecord is one handled contact-centre call as produced by the upstream
// transcript/summary pipeline. Records are read-only once loaded.
type CallRecord struct {
	ID                   string             `json:"id"`
	ExternalID           string             `json:"externalId"`
	StartedAt            time.Time          `json:"startedAt"`
	EndedAt              time.Time          `json:"endedAt"`
	DurationSeconds      int                `json:"durationSeconds"`
	MemberSentiment      float64            `json:"memberSentiment"` // 0–10, 5 = neutral
	AgentSentiment       float64            `json:"agentSentiment"`  // 0–10, 5 = neutral
	PrimaryIntent        string             `json:"primaryIntent"`
	PrimaryTopic         string             `json:"primaryTopic"`
	Segments             []CallSegment      `json:"segments"`
	Summary              string             `json:"summary,omitempty"`
	Actions              []CallAction       `json:"actions,omitempty"`
	QmChecks             map[QmCheckID]bool `json:"qmChecks,omitempty"`
	IsComplaint          bool               `json:"isComplaint"`
	AgentID              string             `json:"agentId,omitempty"`
	ClarityOfNextSteps   Clarity            `json:"clarityOfNextSteps,omitempty"`
	VulnerableMemberFlag bool               `json:"vulnerableMemberFlag,omitempty"`
	AdviceBoundaryRisk   AdviceRisk         `json:"adviceBoundaryRisk,omitempty"`
}

// CallSegment is a contiguous slice of a call, offsets in seconds from call start.
type CallSegment struct {
	StartOffset     float64            `json:"startOffset"`
	EndOffset       float64            `json:"endOffset"`
	Topic           string             `json:"topic"`
	Intent          string             `json:"intent"`
	MemberSentiment float64            `json:"memberSentiment"`
	AgentSentiment  float64            `json:"agentSentiment"`
	Emotions        map[string]float64 `json:"emotions,omitempty"` // label -> intensity 0–1
}

// CallAction is a follow-up item captured from the call.
type CallAction struct {
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

type Clarity string

const (
	ClarityClear   Clarity = "clear"
	ClarityPartial Clarity = "partial"
	ClarityUnclear Clarity = "unclear"
)

type AdviceRisk string

const (
	AdviceRiskNone     AdviceRisk = "none"
	AdviceRiskModerate AdviceRisk = "moderate"
	AdviceRiskHigh     AdviceRisk = "high"
)
