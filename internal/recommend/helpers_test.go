// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// memorySource is an in-memory EventSource. Acked events are removed from the
// queue; unacked polled events are requeued when the session closes.
type memorySource struct {
	mu      sync.Mutex
	queue   []LikedEvent
	nextTag uint64

	openErr   error
	pollErr   error
	pollErrAt int // fail on this poll number (1-based) when pollErr is set
	ackErr    error

	opens  int
	closes int
	acked  []string
}

func newMemorySource(itemIDs ...string) *memorySource {
	s := &memorySource{}
	s.push(itemIDs...)
	return s
}

func (s *memorySource) push(itemIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range itemIDs {
		s.nextTag++
		s.queue = append(s.queue, LikedEvent{ItemID: id, Clicks: 1, DeliveryTag: s.nextTag})
	}
}

func (s *memorySource) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *memorySource) Open(ctx context.Context) (EventSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.opens++
	return &memorySession{src: s, inflight: map[uint64]LikedEvent{}}, nil
}

type memorySession struct {
	src      *memorySource
	polls    int
	inflight map[uint64]LikedEvent
}

func (m *memorySession) PollNext(ctx context.Context) (*LikedEvent, error) {
	s := m.src
	s.mu.Lock()
	defer s.mu.Unlock()

	m.polls++
	if s.pollErr != nil && m.polls >= s.pollErrAt {
		return nil, s.pollErr
	}
	if len(s.queue) == 0 {
		return nil, nil
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	m.inflight[ev.DeliveryTag] = ev
	return &ev, nil
}

func (m *memorySession) Ack(ctx context.Context, event *LikedEvent) error {
	s := m.src
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ackErr != nil {
		return s.ackErr
	}
	if _, ok := m.inflight[event.DeliveryTag]; !ok {
		return errors.New("unknown delivery tag")
	}
	delete(m.inflight, event.DeliveryTag)
	s.acked = append(s.acked, event.ItemID)
	return nil
}

func (m *memorySession) Close() error {
	s := m.src
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	for _, ev := range m.inflight {
		s.queue = append(s.queue, ev)
	}
	m.inflight = nil
	return nil
}

// staticCatalog is a CatalogProvider returning a fixed snapshot.
type staticCatalog struct {
	items Catalog
	err   error
	calls int
}

func (c *staticCatalog) FetchCatalog(ctx context.Context) (Catalog, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	out := make(Catalog, len(c.items))
	copy(out, c.items)
	return out, nil
}

// fakeEnrichment returns canned data per title.
type fakeEnrichment struct {
	data  map[string]*Enrichment
	err   error
	calls []string
}

func (f *fakeEnrichment) Lookup(ctx context.Context, title string) (*Enrichment, error) {
	f.calls = append(f.calls, title)
	if f.err != nil {
		return nil, f.err
	}
	return f.data[title], nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

// dramaCatalog is the three-film catalog used across the scenario tests.
func dramaCatalog() Catalog {
	return Catalog{
		{ID: "a", Title: "A", Tags: []string{"Drama"}, Rating: floatPtr(8), Description: "a detective solves a murder"},
		{ID: "b", Title: "B", Tags: []string{"Drama", "Comedy"}, Rating: floatPtr(6), Description: "a detective solves a murder mystery"},
		{ID: "c", Title: "C", Tags: []string{"Action"}, Rating: floatPtr(9), Description: "a soldier fights a war"},
	}
}

func titles(items []ScoredItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Item.Title
	}
	return out
}
