// Package store holds the in-process snapshot of call records served to the
// dashboard. The snapshot is loaded once on first access and never mutated.
package store

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"voice-trends-go/internal/types"
)

// Loader supplies the full record set. It runs at most once per Store.
type Loader func() ([]types.CallRecord, error)

type snapshot struct {
	calls []types.CallRecord
	byID  map[string]int
}

type Store struct {
	load Loader
	log  *logrus.Entry

	once    sync.Once
	loadErr error
	current atomic.Pointer[snapshot]

	// OnLoad is called with the record count after a successful load.
	OnLoad func(n int)
}

func New(load Loader, log *logrus.Entry) *Store {
	return &Store{load: load, log: log.WithField("component", "store")}
}

// NewStatic returns a store already holding calls.
func NewStatic(calls []types.CallRecord) *Store {
	s := &Store{log: logrus.NewEntry(logrus.StandardLogger())}
	s.once.Do(func() {})
	s.current.Store(newSnapshot(calls))
	return s
}

func newSnapshot(calls []types.CallRecord) *snapshot {
	sorted := make([]types.CallRecord, len(calls))
	copy(sorted, calls)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].EndedAt.After(sorted[j].EndedAt) })
	byID := make(map[string]int, len(sorted))
	for i, c := range sorted {
		byID[c.ID] = i
	}
	return &snapshot{calls: sorted, byID: byID}
}

func (s *Store) ensure() (*snapshot, error) {
	s.once.Do(func() {
		start := time.Now()
		calls, err := s.load()
		if err != nil {
			s.loadErr = fmt.Errorf("load call records: %w", err)
			s.log.WithField("error", err.Error()).Error("record load failed")
			return
		}
		s.current.Store(newSnapshot(calls))
		s.log.WithFields(logrus.Fields{
			"records":     len(calls),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("call records loaded")
		if s.OnLoad != nil {
			s.OnLoad(len(calls))
		}
	})
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}
	return nil, s.loadErr
}

// Filter returns the calls whose end instant lies in [from, to], newest first.
// The returned slice is the caller's to keep.
func (s *Store) Filter(from, to time.Time) ([]types.CallRecord, error) {
	snap, err := s.ensure()
	if err != nil {
		return nil, err
	}
	out := make([]types.CallRecord, 0, len(snap.calls))
	for _, c := range snap.calls {
		if c.EndedAt.Before(from) || c.EndedAt.After(to) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Get looks a call up by id across the whole snapshot.
func (s *Store) Get(id string) (types.CallRecord, bool, error) {
	snap, err := s.ensure()
	if err != nil {
		return types.CallRecord{}, false, err
	}
	i, ok := snap.byID[id]
	if !ok {
		return types.CallRecord{}, false, nil
	}
	return snap.calls[i], true, nil
}

func (s *Store) Len() (int, error) {
	snap, err := s.ensure()
	if err != nil {
		return 0, err
	}
	return len(snap.calls), nil
}
