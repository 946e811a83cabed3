package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/dreamw/travel-quote/internal/domain"
)

var discard = log.New(io.Discard, "", 0)

type memStore struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  error
	setErr  error
	setCall int
}

func newMemStore() *memStore { return &memStore{data: make(map[string]string)} }

func (m *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStore) history(t *testing.T) []int64 {
	t.Helper()
	m.mu.Lock()
	raw := m.data[HistoryKey]
	m.mu.Unlock()
	if raw == "" {
		return nil
	}
	var h []int64
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		t.Fatalf("stored history is not JSON: %q: %v", raw, err)
	}
	return h
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeSubmitter struct {
	err     error
	panicV  any
	block   chan struct{}
	started chan struct{}
	calls   int
	last    map[string]string
}

func (s *fakeSubmitter) Submit(ctx context.Context, payload map[string]string) error {
	s.calls++
	s.last = payload
	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		<-s.block
	}
	if s.panicV != nil {
		panic(s.panicV)
	}
	return s.err
}

type shown struct {
	message string
	kind    domain.FeedbackKind
}

type recordingPresenter struct {
	mu       sync.Mutex
	shows    []shown
	hides    int
	reveals  int
	visible  bool
	lastText string
}

func (p *recordingPresenter) Show(message string, kind domain.FeedbackKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shows = append(p.shows, shown{message, kind})
	p.visible = true
	p.lastText = message
}

func (p *recordingPresenter) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hides++
	p.visible = false
	p.lastText = ""
}

func (p *recordingPresenter) Reveal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reveals++
}

func (p *recordingPresenter) last() shown {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.shows) == 0 {
		return shown{}
	}
	return p.shows[len(p.shows)-1]
}

type fakeForm struct {
	mu        sync.Mutex
	state     domain.FormState
	busy      bool
	busyCalls []bool
	resets    int
}

func (f *fakeForm) Snapshot() domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeForm) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch name {
	case domain.FieldStartDate:
		f.state.StartDate = value
	case domain.FieldEndDate:
		f.state.EndDate = value
	}
}

func (f *fakeForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.state = domain.FormState{}
}

func (f *fakeForm) SetBusy(busy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = busy
	f.busyCalls = append(f.busyCalls, busy)
}

func (f *fakeForm) isBusy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

var errNetwork = errors.New("connection refused")
