package store

import (
	"context"
	"encoding/json"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"walletlink/internal/domain"
)

const locationFilename = "location.json"

type locationFile struct {
	URL string `json:"url"`
}

// LocationFileStore is the CLI's address bar: the last URL "loaded" into the
// dapp, kept on disk so a later invocation sees it.
type LocationFileStore struct {
	path string
	mu   sync.Mutex
}

// NewLocationFileStore returns a LocationFileStore rooted at dir.
func NewLocationFileStore(dir string) *LocationFileStore {
	return &LocationFileStore{path: filepath.Join(dir, locationFilename)}
}

// Navigate loads u as the current address.
func (s *LocationFileStore) Navigate(u *url.URL) error {
	return s.Replace(context.Background(), u)
}

// Current returns the current address, or nil when none was loaded.
func (s *LocationFileStore) Current(context.Context) (*url.URL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path)
	if err != nil || b == nil {
		return nil, err
	}
	var f locationFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrap(err, "decode location")
	}
	if f.URL == "" {
		return nil, nil
	}
	u, err := url.Parse(f.URL)
	return u, errors.Wrap(err, "parse location")
}

// Replace swaps the current address without reprocessing it.
func (s *LocationFileStore) Replace(_ context.Context, u *url.URL) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var f locationFile
	if u != nil {
		f.URL = u.String()
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(s.path, b)
}

// Compile-time assertion that LocationFileStore implements domain.Location.
var _ domain.Location = (*LocationFileStore)(nil)
