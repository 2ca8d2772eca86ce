package aggregator

import (
	"fmt"
	"sort"

	"voice-trends-go/internal/types"
)

// CategoryItem is one intent or topic with its drill-down call ids.
type CategoryItem struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	CallIDs []string `json:"callIds"`
}

// Intents counts calls per primary intent, most frequent first.
func Intents(calls []types.CallRecord) []CategoryItem {
	return categorical(calls, byIntent, "intent")
}

// Topics counts calls per primary topic, most frequent first.
func Topics(calls []types.CallRecord) []CategoryItem {
	return categorical(calls, byTopic, "topic")
}

// ids are assigned by first-seen order before sorting so they stay stable
// for a given input.
func categorical(calls []types.CallRecord, key func(types.CallRecord) string, prefix string) []CategoryItem {
	groups := GroupBy(calls, key)
	items := make([]CategoryItem, len(groups))
	for i, g := range groups {
		items[i] = CategoryItem{
			ID:      fmt.Sprintf("%s-%d", prefix, i),
			Name:    g.Key,
			Count:   g.Count(),
			CallIDs: g.CallIDs(),
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	return items
}

type TalkingPointsView struct {
	TopTopics  []CategoryItem `json:"topTopics"`
	TopIntents []CategoryItem `json:"topIntents"`
	TotalCalls int            `json:"totalCalls"`
}

const talkingPointsLimit = 10

func TalkingPoints(calls []types.CallRecord) TalkingPointsView {
	return TalkingPointsView{
		TopTopics:  head(Topics(calls), talkingPointsLimit),
		TopIntents: head(Intents(calls), talkingPointsLimit),
		TotalCalls: len(calls),
	}
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
