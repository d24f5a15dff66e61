package watcher

import (
	"context"
	"net/url"
	"sync"

	"walletlink/internal/domain"
)

// MemoryLocation is an in-process address bar.
type MemoryLocation struct {
	mu       sync.Mutex
	current  *url.URL
	replaced int
}

var _ domain.Location = (*MemoryLocation)(nil)

// NewMemoryLocation returns a location showing u, which may be nil.
func NewMemoryLocation(u *url.URL) *MemoryLocation {
	return &MemoryLocation{current: cloneURL(u)}
}

// Navigate loads u, as a page load would.
func (m *MemoryLocation) Navigate(u *url.URL) {
	m.mu.Lock()
	m.current = cloneURL(u)
	m.mu.Unlock()
}

// Current returns a copy of the current address.
func (m *MemoryLocation) Current(context.Context) (*url.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneURL(m.current), nil
}

// Replace swaps the address without a navigation.
func (m *MemoryLocation) Replace(_ context.Context, u *url.URL) error {
	m.mu.Lock()
	m.current = cloneURL(u)
	m.replaced++
	m.mu.Unlock()
	return nil
}

// Replaced returns how many times the address was replaced.
func (m *MemoryLocation) Replaced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaced
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
