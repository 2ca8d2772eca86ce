// Package dashboard answers dashboard queries: it resolves the requested
// range, pulls calls from the record source and runs the matching view.
package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"voice-trends-go/internal/alerts"
	"voice-trends-go/internal/timerange"
	"voice-trends-go/internal/types"
)

var (
	ErrUnknownView  = errors.New("unknown view")
	ErrCallNotFound = errors.New("call not found")
)

// RecordSource supplies calls whose end instant lies in [from, to], and
// single calls by id.
type RecordSource interface {
	Filter(from, to time.Time) ([]types.CallRecord, error)
	Get(id string) (types.CallRecord, bool, error)
}

type Service struct {
	src    RecordSource
	alerts alerts.Config
	now    func() time.Time
	log    *logrus.Entry
}

type Option func(*Service)

// WithClock overrides the time source used to anchor ranges.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func New(src RecordSource, alertCfg alerts.Config, log *logrus.Entry, opts ...Option) *Service {
	s := &Service{
		src:    src,
		alerts: alertCfg,
		now:    time.Now,
		log:    log.WithField("component", "dashboard"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// query is what every view receives: the calls in range plus enough context
// to fetch a comparison window.
type query struct {
	calls  []types.CallRecord
	rng    timerange.Range
	window timerange.Window
	src    RecordSource
}

func (q query) previous() ([]types.CallRecord, error) {
	p := q.window.Previous()
	return q.src.Filter(p.From, p.To)
}

func (s *Service) load(tag string, def timerange.Range) (query, error) {
	rng := timerange.ParseOr(tag, def)
	w := timerange.Resolve(rng, s.now())
	calls, err := s.src.Filter(w.From, w.To)
	if err != nil {
		return query{}, fmt.Errorf("filter calls: %w", err)
	}
	return query{calls: calls, rng: rng, window: w, src: s.src}, nil
}

type view struct {
	defaultRange timerange.Range
	build        func(q query) (any, error)
}

func (s *Service) run(views map[string]view, name, rangeTag string) (any, error) {
	v, ok := views[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	q, err := s.load(rangeTag, v.defaultRange)
	if err != nil {
		return nil, err
	}
	out, err := v.build(q)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"view":  name,
		"range": q.rng,
		"calls": len(q.calls),
	}).Debug("view computed")
	return out, nil
}

// Trend serves the trend widgets: intents, topics, sentiment.
func (s *Service) Trend(name, rangeTag string) (any, error) {
	return s.run(trendViews, name, rangeTag)
}

// Insight serves the named insight chart.
func (s *Service) Insight(name, rangeTag string) (any, error) {
	return s.run(insightViews, name, rangeTag)
}

// Summary serves the executive dashboard panels.
func (s *Service) Summary(name, rangeTag string) (any, error) {
	return s.run(summaryViews, name, rangeTag)
}

const (
	DefaultCallLimit = 50
	MaxCallLimit     = 200
	lookupRange      = timerange.Last30Days
)

type CallQuery struct {
	Range          string
	Intent         string
	Topic          string
	ComplaintsOnly bool
	Limit          int
}

// Calls lists calls in range, newest first, after applying the filters. A
// non-positive limit means DefaultCallLimit; limits are capped at MaxCallLimit.
func (s *Service) Calls(cq CallQuery) ([]types.CallRecord, error) {
	q, err := s.load(cq.Range, timerange.DefaultRange)
	if err != nil {
		return nil, err
	}
	limit := cq.Limit
	if limit <= 0 {
		limit = DefaultCallLimit
	}
	if limit > MaxCallLimit {
		limit = MaxCallLimit
	}
	out := make([]types.CallRecord, 0, limit)
	for _, c := range q.calls {
		if cq.Intent != "" && c.PrimaryIntent != cq.Intent {
			continue
		}
		if cq.Topic != "" && c.PrimaryTopic != cq.Topic {
			continue
		}
		if cq.ComplaintsOnly && !c.IsComplaint {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Call finds a call that ended within the last 30 days.
func (s *Service) Call(id string) (types.CallRecord, error) {
	c, ok, err := s.src.Get(id)
	if err != nil {
		return types.CallRecord{}, fmt.Errorf("get call: %w", err)
	}
	w := timerange.Resolve(lookupRange, s.now())
	if !ok || c.EndedAt.Before(w.From) || c.EndedAt.After(w.To) {
		return types.CallRecord{}, fmt.Errorf("%w: %s", ErrCallNotFound, id)
	}
	return c, nil
}

// ComplaintAlert evaluates the complaint-volume rule over the alert window.
func (s *Service) ComplaintAlert() (alerts.ComplaintAlert, error) {
	to := s.now()
	calls, err := s.src.Filter(to.Add(-s.alerts.Window), to)
	if err != nil {
		return alerts.ComplaintAlert{}, fmt.Errorf("filter calls: %w", err)
	}
	a := alerts.Complaints(calls, s.alerts)
	if a.ComplaintsElevated {
		s.log.WithField("complaints", a.ComplaintCount).Warn("complaint volume elevated")
	}
	return a, nil
}
