package session_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"walletlink/internal/domain"
)

type memPending struct {
	mu  sync.Mutex
	req *domain.PendingRequest
}

func (m *memPending) SavePending(req domain.PendingRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.req = &req
	return nil
}

func (m *memPending) LoadPending() (domain.PendingRequest, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.req == nil {
		return domain.PendingRequest{}, false, nil
	}
	return *m.req, true, nil
}

func (m *memPending) ClearPending() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.req = nil
	return nil
}

type memSessions struct {
	mu   sync.Mutex
	sess *domain.Session
}

func (m *memSessions) SaveSession(s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = &s
	return nil
}

func (m *memSessions) LoadSession() (domain.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return domain.Session{}, false, nil
	}
	return *m.sess, true, nil
}

func (m *memSessions) DeleteSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}

type memHistory struct {
	mu      sync.Mutex
	records []domain.TransactionRecord
}

func (m *memHistory) AppendTransaction(_ context.Context, rec domain.TransactionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *memHistory) all() []domain.TransactionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TransactionRecord(nil), m.records...)
}

type recordingNav struct {
	mu    sync.Mutex
	links []domain.Link
	fail  bool
}

func (n *recordingNav) Navigate(_ context.Context, link domain.Link) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("navigation blocked")
	}
	n.links = append(n.links, link)
	return nil
}

func (n *recordingNav) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.links)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
