package copilot

import (
	"math"
	"strconv"
	"strings"
)

type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
	ChartPie  ChartType = "pie"
	ChartArea ChartType = "area"
)

type Metric string

const (
	MetricIntents        Metric = "intents"
	MetricTopics         Metric = "topics"
	MetricSentiment      Metric = "sentiment"
	MetricCalls          Metric = "calls"
	MetricVolumeOverTime Metric = "volume-over-time"
)

var (
	validTypes   = map[ChartType]bool{ChartBar: true, ChartLine: true, ChartPie: true, ChartArea: true}
	validMetrics = map[Metric]bool{
		MetricIntents: true, MetricTopics: true, MetricSentiment: true, MetricCalls: true, MetricVolumeOverTime: true,
	}
)

const (
	DefaultTitle   = "Custom view"
	maxTitleRunes  = 80
	defaultDataKey = "count"
)

// ChartConfig drives one dashboard visualization.
type ChartConfig struct {
	ID      string    `json:"id"`
	Type    ChartType `json:"type"`
	Title   string    `json:"title"`
	DataKey string    `json:"dataKey"`
	Metric  Metric    `json:"metric"`
}

type Result struct {
	Config  ChartConfig `json:"config"`
	Message string      `json:"message"`
}

// chartSpec is the part of a config that is inferred from the query.
type chartSpec struct {
	Type   ChartType
	Metric Metric
	Title  string
}

// sanitize validates an untyped model reply against the closed type and
// metric sets. Anything unrecognised degrades to a default instead of failing.
func sanitize(raw map[string]any) chartSpec {
	spec := chartSpec{Type: ChartBar, Metric: MetricIntents, Title: DefaultTitle}
	if s, ok := raw["type"].(string); ok && validTypes[ChartType(s)] {
		spec.Type = ChartType(s)
	}
	if s, ok := raw["metric"].(string); ok && validMetrics[Metric(s)] {
		spec.Metric = Metric(s)
	}
	if title := titleString(raw["title"]); title != "" {
		spec.Title = truncateRunes(title, maxTitleRunes)
	}
	return spec
}

// titleString coerces scalar titles to text. Falsy values and non-scalars
// yield "" so the caller falls back to the default title.
func titleString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
	case float64:
		if t != 0 && !math.IsNaN(t) {
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// stripFences removes a surrounding markdown code fence, with or without a
// json language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
