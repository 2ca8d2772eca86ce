package aggregator

import (
	"sort"

	"voice-trends-go/internal/types"
)

type ActionCount struct {
	Action  string   `json:"action"`
	Count   int      `json:"count"`
	CallIDs []string `json:"callIds"`
}

type TopicActions struct {
	Topic   string        `json:"topic"`
	Actions []ActionCount `json:"actions"`
	total   int
}

// ActionsByTopic groups follow-up actions under each call's primary topic.
// Topics with no actions are omitted.
func ActionsByTopic(calls []types.CallRecord) []TopicActions {
	out := []TopicActions{}
	for _, g := range GroupBy(calls, byTopic) {
		idx := map[string]int{}
		var actions []ActionCount
		total := 0
		for _, c := range g.Calls {
			for _, a := range c.Actions {
				i, ok := idx[a.Description]
				if !ok {
					i = len(actions)
					idx[a.Description] = i
					actions = append(actions, ActionCount{Action: a.Description})
				}
				actions[i].Count++
				actions[i].CallIDs = append(actions[i].CallIDs, c.ID)
				total++
			}
		}
		if len(actions) == 0 {
			continue
		}
		sort.SliceStable(actions, func(i, j int) bool { return actions[i].Count > actions[j].Count })
		out = append(out, TopicActions{Topic: g.Key, Actions: actions, total: total})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].total > out[j].total })
	return out
}
