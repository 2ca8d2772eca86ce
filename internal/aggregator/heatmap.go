package aggregator

import "voice-trends-go/internal/types"

const heatmapAxis = 5

type HeatmapCell struct {
	Topic              string   `json:"topic"`
	Intent             string   `json:"intent"`
	Count              int      `json:"count"`
	AvgMemberSentiment float64  `json:"avgMemberSentiment"`
	CallIDs            []string `json:"callIds"`
}

type Heatmap struct {
	Topics  []string      `json:"topics"`
	Intents []string      `json:"intents"`
	Cells   []HeatmapCell `json:"cells"`
}

// OutcomeHeatmap crosses the five busiest topics with the five busiest
// intents. Only populated cells are returned.
func OutcomeHeatmap(calls []types.CallRecord) Heatmap {
	topics := TopKeys(calls, byTopic, heatmapAxis)
	intents := TopKeys(calls, byIntent, heatmapAxis)
	inTopics := set(topics)
	inIntents := set(intents)

	type pair struct{ topic, intent string }
	idx := map[pair]int{}
	var groups []Group
	var keys []pair
	for _, c := range calls {
		if !inTopics[c.PrimaryTopic] || !inIntents[c.PrimaryIntent] {
			continue
		}
		k := pair{c.PrimaryTopic, c.PrimaryIntent}
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, Group{})
			keys = append(keys, k)
		}
		groups[i].Calls = append(groups[i].Calls, c)
	}

	cells := make([]HeatmapCell, len(groups))
	for i, g := range groups {
		cells[i] = HeatmapCell{
			Topic:              keys[i].topic,
			Intent:             keys[i].intent,
			Count:              g.Count(),
			AvgMemberSentiment: Round1(Mean(g.Sum(memberSentiment), g.Count())),
			CallIDs:            g.CallIDs(),
		}
	}
	return Heatmap{Topics: topics, Intents: intents, Cells: cells}
}

func set(keys []string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}
