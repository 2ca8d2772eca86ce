// Package timerange maps coarse dashboard range selectors to concrete windows.
package timerange

import "time"

type Range string

const (
	LastHour      Range = "1h"
	Last6Hours    Range = "6h"
	Last24Hours   Range = "24h"
	Last7Days     Range = "7d"
	Last30Days    Range = "30d"
	DefaultRange        = Last24Hours
)

var durations = map[Range]time.Duration{
	LastHour:    time.Hour,
	Last6Hours:  6 * time.Hour,
	Last24Hours: 24 * time.Hour,
	Last7Days:   7 * 24 * time.Hour,
	Last30Days:  30 * 24 * time.Hour,
}

// Parse returns the range for tag, or DefaultRange when the tag is unknown.
func Parse(tag string) Range {
	r := Range(tag)
	if _, ok := durations[r]; ok {
		return r
	}
	return DefaultRange
}

// ParseOr is Parse with a caller-chosen fallback for an absent tag.
func ParseOr(tag string, def Range) Range {
	if tag == "" {
		return def
	}
	return Parse(tag)
}

func (r Range) Duration() time.Duration {
	if d, ok := durations[r]; ok {
		return d
	}
	return durations[DefaultRange]
}

type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Resolve returns [now-d, now] for the range.
func Resolve(r Range, now time.Time) Window {
	return Window{From: now.Add(-r.Duration()), To: now}
}

func (w Window) Duration() time.Duration { return w.To.Sub(w.From) }

// Previous is the window of equal length ending where w starts.
func (w Window) Previous() Window {
	return Window{From: w.From.Add(-w.Duration()), To: w.From}
}

type Granularity string

const (
	Hourly Granularity = "hour"
	Daily  Granularity = "day"
)

// GranularityFor buckets hourly up to 24h and daily beyond.
func GranularityFor(d time.Duration) Granularity {
	if d <= 24*time.Hour {
		return Hourly
	}
	return Daily
}

func (r Range) Granularity() Granularity { return GranularityFor(r.Duration()) }
