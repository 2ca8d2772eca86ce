package aggregator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voice-trends-go/internal/timerange"
	"voice-trends-go/internal/types"
)

func TestGroupBy_FirstSeenOrder(t *testing.T) {
	calls := []types.CallRecord{
		mk("1", intent("b")), mk("2", intent("a")), mk("3", intent("b")), mk("4", intent("c")),
	}

	groups := GroupBy(calls, byIntent)

	require.Len(t, groups, 3)
	assert.Equal(t, "b", groups[0].Key)
	assert.Equal(t, []string{"1", "3"}, groups[0].CallIDs())
	assert.Equal(t, "a", groups[1].Key)
	assert.Equal(t, "c", groups[2].Key)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 3.0, Round(2.5))
	assert.Equal(t, -2.0, Round(-2.5))
	assert.Equal(t, 0.3, Round1(0.25))
	assert.Equal(t, 0.124, Round3(0.1236))
	assert.Equal(t, 33.3, RatePct(1, 3))
	assert.Equal(t, 0.0, RatePct(1, 0))
}

func TestCategorical_PartitionsCalls(t *testing.T) {
	calls := sample()

	for name, items := range map[string][]CategoryItem{"intents": Intents(calls), "topics": Topics(calls)} {
		total := 0
		seen := map[string]bool{}
		for _, it := range items {
			total += it.Count
			assert.Len(t, it.CallIDs, it.Count, name)
			for _, id := range it.CallIDs {
				assert.False(t, seen[id], "%s: call %s appears twice", name, id)
				seen[id] = true
			}
		}
		assert.Equal(t, len(calls), total, name)
		assert.Len(t, seen, len(calls), name)
		for i := 1; i < len(items); i++ {
			assert.GreaterOrEqual(t, items[i-1].Count, items[i].Count, name)
		}
	}
}

func TestIntents_IDsFollowFirstSeenOrder(t *testing.T) {
	calls := []types.CallRecord{mk("1", intent("rare")), mk("2", intent("common")), mk("3", intent("common"))}

	items := Intents(calls)

	require.Len(t, items, 2)
	assert.Equal(t, CategoryItem{ID: "intent-1", Name: "common", Count: 2, CallIDs: []string{"2", "3"}}, items[0])
	assert.Equal(t, "intent-0", items[1].ID)
}

func TestTalkingPoints_CapsAtTen(t *testing.T) {
	var calls []types.CallRecord
	for i := 0; i < 12; i++ {
		calls = append(calls, mk(string(rune('a'+i)), topic(string(rune('A'+i))), intent(string(rune('A'+i)))))
	}

	tp := TalkingPoints(calls)

	assert.Len(t, tp.TopTopics, 10)
	assert.Len(t, tp.TopIntents, 10)
	assert.Equal(t, 12, tp.TotalCalls)
}

func TestSentimentDistribution(t *testing.T) {
	calls := []types.CallRecord{
		mk("n1", member(0)), mk("n2", member(3.5)), mk("m0", member(4)),
		mk("m1", member(6.9)), mk("p1", member(7)), mk("p2", member(10)),
	}

	got := SentimentDistribution(calls)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"n1", "n2"}, got[0].CallIDs)
	assert.Equal(t, []string{"m0", "m1"}, got[1].CallIDs)
	assert.Equal(t, []string{"p1", "p2"}, got[2].CallIDs)
	assert.Equal(t, 33.0, got[0].Percentage)
}

func TestSentimentDistribution_SumsToTotal(t *testing.T) {
	calls := sample()
	count, pct := 0, 0.0
	for _, b := range SentimentDistribution(calls) {
		count += b.Count
		pct += b.Percentage
	}
	assert.Equal(t, len(calls), count)
	assert.InDelta(t, 100, pct, 2)
}

func TestSentimentDistribution_Empty(t *testing.T) {
	got := SentimentDistribution(nil)
	require.Len(t, got, 3)
	for _, b := range got {
		assert.Zero(t, b.Count)
		assert.Zero(t, b.Percentage)
		assert.NotNil(t, b.CallIDs)
	}
}

func TestVolumeOverTime_Hourly(t *testing.T) {
	calls := []types.CallRecord{
		mk("a", endedAt(t0.Add(10*time.Minute)), member(4), complaint()),
		mk("b", endedAt(t0.Add(-50*time.Minute)), member(6)),
		mk("c", endedAt(t0.Add(20*time.Minute)), member(5)),
	}

	got := VolumeOverTime(calls, timerange.Hourly)

	require.Len(t, got, 2)
	assert.Equal(t, "2025-03-10T11:00", got[0].Bucket)
	assert.Equal(t, "11:00", got[0].Label)
	assert.Equal(t, "12:00", got[1].Label)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, 1, got[1].Complaints)
	assert.Equal(t, 4.5, got[1].AvgMemberSentiment)
	assert.Equal(t, []string{"a", "c"}, got[1].CallIDs)
}

func TestVolumeOverTime_KeysStrictlyIncreasing(t *testing.T) {
	calls := sample()
	for _, g := range []timerange.Granularity{timerange.Hourly, timerange.Daily} {
		got := VolumeOverTime(calls, g)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1].Bucket, got[i].Bucket)
		}
	}

	hourly := VolumeOverTime(calls, timerange.Last24Hours.Granularity())
	daily := VolumeOverTime(calls, timerange.Last7Days.Granularity())
	assert.Greater(t, len(hourly), len(daily))
	assert.Len(t, daily[0].Label, len("2006-01-02"))
}

func TestVolumeByHourAndDay(t *testing.T) {
	calls := []types.CallRecord{
		mk("a", endedAt(time.Date(2025, 3, 9, 3, 15, 0, 0, time.UTC))),
		mk("b", endedAt(time.Date(2025, 3, 10, 3, 45, 0, 0, time.UTC))),
	}

	hours := VolumeByHour(calls)
	require.Len(t, hours, 24)
	assert.Equal(t, HourSlot{Hour: 3, Label: "3:00", Count: 2}, hours[3])
	assert.Equal(t, 0, hours[4].Count)

	days := VolumeByDayOfWeek(calls)
	require.Len(t, days, 7)
	assert.Equal(t, DaySlot{Day: 0, Label: "Sun", Count: 1}, days[0])
	assert.Equal(t, DaySlot{Day: 1, Label: "Mon", Count: 1}, days[1])
}

func TestTopicSentiment_AscendingAverage(t *testing.T) {
	calls := []types.CallRecord{
		mk("1", topic("good"), member(8)), mk("2", topic("bad"), member(2)), mk("3", topic("bad"), member(3)),
	}

	got := TopicSentiment(calls)

	require.Len(t, got, 2)
	assert.Equal(t, "bad", got[0].Topic)
	assert.Equal(t, 2.5, got[0].AvgMemberSentiment)
	assert.Equal(t, "good", got[1].Topic)
}

func TestIntentComplaints(t *testing.T) {
	calls := []types.CallRecord{
		mk("1", intent("x")), mk("2", intent("x")), mk("3", intent("x"), complaint()),
		mk("4", intent("y"), complaint()),
	}

	got := IntentComplaints(calls)

	require.Len(t, got, 2)
	assert.Equal(t, "y", got[0].Intent)
	assert.Equal(t, 100.0, got[0].ComplaintRatePct)
	assert.Equal(t, 33.3, got[1].ComplaintRatePct)
	assert.Equal(t, 1, got[1].Complaints)
}

func TestComputeKPIs(t *testing.T) {
	assert.Equal(t, KPIs{}, ComputeKPIs(nil))

	got := ComputeKPIs([]types.CallRecord{
		mk("1", secs(100), member(4), agent(7), complaint()),
		mk("2", secs(201), member(5), agent(8)),
	})

	assert.Equal(t, KPIs{
		TotalCalls:         2,
		AvgDurationSec:     151,
		ComplaintCount:     1,
		ComplaintRatePct:   50,
		AvgMemberSentiment: 4.5,
		AvgAgentSentiment:  7.5,
	}, got)
}

func TestMemberAgentSentiment_GridAndOrder(t *testing.T) {
	calls := []types.CallRecord{
		mk("1", member(7.3), agent(2)),
		mk("2", member(11), agent(-1)),
		mk("3", member(7.4), agent(2.1)),
		mk("4", member(1), agent(9)),
	}

	got := MemberAgentSentiment(calls)

	require.Len(t, got, 3)
	assert.Equal(t, SentimentCell{MemberSentiment: 1, AgentSentiment: 9, Count: 1, CallIDs: []string{"4"}}, got[0])
	assert.Equal(t, 7.5, got[1].MemberSentiment)
	assert.Equal(t, 2.0, got[1].AgentSentiment)
	assert.Equal(t, []string{"1", "3"}, got[1].CallIDs)
	assert.Equal(t, SentimentCell{MemberSentiment: 10, AgentSentiment: 0, Count: 1, CallIDs: []string{"2"}}, got[2])
}

func TestNeedCategories(t *testing.T) {
	calls := []types.CallRecord{
		mk("1", intent("Address update"), member(8)),
		mk("2", intent("Retirement estimate"), member(6)),
		mk("3", intent("Transfer in/out"), member(5)),
		mk("4", intent("Something new"), member(2)),
	}

	got := NeedCategories(calls)

	require.Len(t, got, 3)
	assert.Equal(t, NeedBenefitDecision, got[0].Category)
	assert.Equal(t, 50.0, got[0].Percentage)
	assert.Equal(t, 5.5, got[0].AvgMemberSentiment)
	assert.Equal(t, NeedRoutineAdmin, got[1].Category)
	assert.Equal(t, NeedOther, got[2].Category)
	assert.Equal(t, NeedServiceFailure, NeedCategory("Complaint - delay"))
}

func TestSentimentArc(t *testing.T) {
	worsening := mk("w", intent("a"), segs(seg(90, 2, nil), seg(0, 8, nil), seg(45, 5, nil)))
	improving := mk("i", intent("b"), segs(seg(0, 3, nil), seg(30, 7, nil)))
	none := mk("n", intent("c"))

	got := SentimentArc([]types.CallRecord{improving, worsening, none})

	require.Len(t, got, 2)
	assert.Equal(t, SentimentArcItem{Intent: "a", Count: 1, OpeningSentiment: 8, ClosingSentiment: 2, Delta: -6, CallIDs: []string{"w"}}, got[0])
	assert.Equal(t, 4.0, got[1].Delta)
	assert.Equal(t, 90.0, worsening.Segments[0].StartOffset, "input segments must not be reordered")
}

func TestSentimentArc_SortedAndSigned(t *testing.T) {
	got := SentimentArc(sample())
	for i, it := range got {
		assert.Equal(t, Round1(it.ClosingSentiment-it.OpeningSentiment), it.Delta)
		if i > 0 {
			assert.LessOrEqual(t, got[i-1].Delta, it.Delta)
		}
	}
}

func TestOutcomeHeatmap_BoundedByTopFive(t *testing.T) {
	calls := sample()

	hm := OutcomeHeatmap(calls)

	assert.LessOrEqual(t, len(hm.Cells), 25)
	assert.Len(t, hm.Topics, 5)
	assert.Len(t, hm.Intents, 5)
	assert.Equal(t, TopKeys(calls, byTopic, 5), hm.Topics)
	topics, intents := set(hm.Topics), set(hm.Intents)
	for _, c := range hm.Cells {
		assert.True(t, topics[c.Topic])
		assert.True(t, intents[c.Intent])
		assert.Len(t, c.CallIDs, c.Count)
	}
}

func TestTopKeys_StableTies(t *testing.T) {
	calls := []types.CallRecord{
		mk("1", topic("x")), mk("2", topic("y")), mk("3", topic("z")), mk("4", topic("z")),
	}
	assert.Equal(t, []string{"z", "x"}, TopKeys(calls, byTopic, 2))
}

func TestEmotionProfile(t *testing.T) {
	calls := []types.CallRecord{
		mk("c1", complaint(), segs(
			seg(0, 5, map[string]float64{"anger": 0.8}),
			seg(30, 5, map[string]float64{"anger": 0.6, "calm": 0.1}),
		)),
		mk("n1", segs(seg(0, 5, map[string]float64{"anger": 0.1, "calm": 0.9}))),
	}

	got := EmotionProfile(calls)

	require.Len(t, got, 2)
	assert.Equal(t, EmotionProfileItem{
		Emotion:             "anger",
		ComplaintAvg:        0.7,
		NonComplaintAvg:     0.1,
		ComplaintCallIDs:    []string{"c1"},
		NonComplaintCallIDs: []string{"n1"},
	}, got[0])
	assert.Equal(t, "calm", got[1].Emotion)
	assert.Equal(t, 0.1, got[1].ComplaintAvg)
}

func TestEmotionProfile_MissingSideIsZero(t *testing.T) {
	got := EmotionProfile([]types.CallRecord{mk("c", complaint(), segs(seg(0, 5, map[string]float64{"fear": 0.4})))})

	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].NonComplaintAvg)
	assert.Empty(t, got[0].NonComplaintCallIDs)
}

func TestHandleTimeSentiment(t *testing.T) {
	got := HandleTimeSentiment([]types.CallRecord{
		mk("1", intent("a"), secs(100), member(4)),
		mk("2", intent("a"), secs(300), member(6), complaint()),
		mk("3", intent("b"), secs(600), member(8)),
	})

	require.Len(t, got.Intents, 2)
	assert.Equal(t, 200, got.Intents[0].AvgHandleTimeSec)
	assert.Equal(t, 50.0, got.Intents[0].ComplaintRatePct)
	assert.Equal(t, 333, got.AvgHandleTimeSec)
	assert.Equal(t, 6.0, got.AvgMemberSentiment)

	empty := HandleTimeSentiment(nil)
	assert.Zero(t, empty.AvgHandleTimeSec)
}

func TestActionsByTopic(t *testing.T) {
	calls := []types.CallRecord{
		mk("1", topic("quiet"), actions("send form")),
		mk("2", topic("busy"), actions("call back", "send form")),
		mk("3", topic("busy"), actions("call back")),
		mk("4", topic("none")),
	}

	got := ActionsByTopic(calls)

	require.Len(t, got, 2)
	assert.Equal(t, "busy", got[0].Topic)
	assert.Equal(t, ActionCount{Action: "call back", Count: 2, CallIDs: []string{"2", "3"}}, got[0].Actions[0])
	assert.Equal(t, "quiet", got[1].Topic)
}

func TestAggregations_Idempotent(t *testing.T) {
	calls := sample()
	views := map[string]func() any{
		"intents":   func() any { return Intents(calls) },
		"topics":    func() any { return Topics(calls) },
		"sentiment": func() any { return SentimentDistribution(calls) },
		"volume":    func() any { return VolumeOverTime(calls, timerange.Hourly) },
		"scatter":   func() any { return MemberAgentSentiment(calls) },
		"arc":       func() any { return SentimentArc(calls) },
		"heatmap":   func() any { return OutcomeHeatmap(calls) },
		"emotion":   func() any { return EmotionProfile(calls) },
		"actions":   func() any { return ActionsByTopic(calls) },
		"needs":     func() any { return NeedCategories(calls) },
	}
	for name, view := range views {
		a, err := json.Marshal(view())
		require.NoError(t, err)
		b, err := json.Marshal(view())
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}
	assert.Equal(t, allIDs(sample()), allIDs(calls), "input must be untouched")
}

func TestViews_EmptyInputEncodesEmptyArrays(t *testing.T) {
	views := map[string]any{
		"intents":                Intents(nil),
		"topics":                 Topics(nil),
		"topic-sentiment":        TopicSentiment(nil),
		"member-agent-sentiment": MemberAgentSentiment(nil),
		"need-categories":        NeedCategories(nil),
		"sentiment-arc":          SentimentArc(nil),
		"emotion-profile":        EmotionProfile(nil),
		"actions-by-topic":       ActionsByTopic(nil),
		"intent-complaints":      IntentComplaints(nil),
		"volume-over-time":       VolumeOverTime(nil, timerange.Hourly),
	}
	for name, v := range views {
		b, err := json.Marshal(v)
		require.NoError(t, err, name)
		assert.Equal(t, "[]", string(b), name)
	}
}
