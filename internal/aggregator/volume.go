package aggregator

import (
	"fmt"

	"voice-trends-go/internal/timerange"
	"voice-trends-go/internal/types"
)

type VolumeBucket struct {
	Bucket             string   `json:"bucket"`
	Label              string   `json:"label"`
	Count              int      `json:"count"`
	Complaints         int      `json:"complaints"`
	AvgMemberSentiment float64  `json:"avgMemberSentiment"`
	CallIDs            []string `json:"callIds"`
}

// VolumeOverTime buckets calls by end instant at granularity g, oldest first.
// Empty buckets are not emitted.
func VolumeOverTime(calls []types.CallRecord, g timerange.Granularity) []VolumeBucket {
	groups := BucketCalls(calls, g)
	out := make([]VolumeBucket, len(groups))
	for i, grp := range groups {
		out[i] = VolumeBucket{
			Bucket:             grp.Key,
			Label:              BucketLabel(grp.Key, g),
			Count:              grp.Count(),
			Complaints:         grp.Complaints(),
			AvgMemberSentiment: Round1(Mean(grp.Sum(memberSentiment), grp.Count())),
			CallIDs:            grp.CallIDs(),
		}
	}
	return out
}

type HourSlot struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// VolumeByHour counts calls per UTC hour of day; all 24 slots are present.
func VolumeByHour(calls []types.CallRecord) []HourSlot {
	out := make([]HourSlot, 24)
	for h := range out {
		out[h] = HourSlot{Hour: h, Label: fmt.Sprintf("%d:00", h)}
	}
	for _, c := range calls {
		out[c.EndedAt.UTC().Hour()].Count++
	}
	return out
}

type DaySlot struct {
	Day   int    `json:"day"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// VolumeByDayOfWeek counts calls per UTC weekday, Sunday first.
func VolumeByDayOfWeek(calls []types.CallRecord) []DaySlot {
	out := make([]DaySlot, 7)
	for d := range out {
		out[d] = DaySlot{Day: d, Label: dayNames[d]}
	}
	for _, c := range calls {
		out[int(c.EndedAt.UTC().Weekday())].Count++
	}
	return out
}
