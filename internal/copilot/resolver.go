// Package copilot turns a natural-language request into a validated chart
// configuration, asking a remote model first and falling back to keywords.
package copilot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrEmptyQuery = errors.New("copilot: empty query")

const (
	PathRemote   = "remote"
	PathKeywords = "keywords"
)

// Observer receives resolution outcomes, typically for metrics.
type Observer interface {
	Resolved(path string)
	RemoteFailed(reason string)
}

type nopObserver struct{}

func (nopObserver) Resolved(string)     {}
func (nopObserver) RemoteFailed(string) {}

type Resolver struct {
	completer Completer
	model     string
	log       *logrus.Entry
	observer  Observer
	newID     func() string
}

type Option func(*Resolver)

func WithObserver(o Observer) Option { return func(r *Resolver) { r.observer = o } }

// WithIDFunc replaces the chart id generator.
func WithIDFunc(f func() string) Option { return func(r *Resolver) { r.newID = f } }

// NewResolver builds a resolver. A nil completer disables the remote path.
func NewResolver(c Completer, model string, log *logrus.Entry, opts ...Option) *Resolver {
	r := &Resolver{
		completer: c,
		model:     model,
		log:       log.WithField("component", "copilot"),
		observer:  nopObserver{},
		newID:     func() string { return "chart-" + uuid.NewString() },
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve maps query to a chart config. Remote failures are logged and never
// returned; the only error is ErrEmptyQuery.
func (r *Resolver) Resolve(ctx context.Context, q string) (Result, error) {
	if strings.TrimSpace(q) == "" {
		return Result{}, ErrEmptyQuery
	}

	spec, ok := r.remote(ctx, q)
	path := PathRemote
	if !ok {
		spec = fromKeywords(q)
		path = PathKeywords
	}
	r.observer.Resolved(path)
	r.log.WithFields(logrus.Fields{
		"path":   path,
		"type":   spec.Type,
		"metric": spec.Metric,
	}).Debug("chart request resolved")

	return Result{
		Config: ChartConfig{
			ID:      r.newID(),
			Type:    spec.Type,
			Title:   spec.Title,
			DataKey: defaultDataKey,
			Metric:  spec.Metric,
		},
		Message: fmt.Sprintf(`Added "%s" as %s chart.`, spec.Title, spec.Type),
	}, nil
}

func (r *Resolver) remote(ctx context.Context, q string) (chartSpec, bool) {
	if r.completer == nil {
		return chartSpec{}, false
	}
	content, err := r.completer.Complete(ctx, CompletionRequest{
		Model:        r.model,
		SystemPrompt: systemPrompt,
		UserQuery:    q,
		Temperature:  0.1,
		MaxTokens:    150,
	})
	if err != nil {
		r.observer.RemoteFailed(failureReason(err))
		r.log.WithError(err).Warn("remote chart interpretation failed")
		return chartSpec{}, false
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(stripFences(content)), &raw); err != nil || raw == nil {
		r.observer.RemoteFailed(ReasonDecode)
		r.log.WithField("content_len", len(content)).Warn("remote reply is not a JSON object")
		return chartSpec{}, false
	}
	return sanitize(raw), true
}
