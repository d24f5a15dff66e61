package store

import (
	"path/filepath"
	"sync"

	"walletlink/internal/domain"
)

const pendingFilename = "pending.json"

// PendingFileStore persists the outstanding correlation record, sealed when
// a passphrase is configured.
type PendingFileStore struct {
	path  string
	codec codec
	mu    sync.Mutex
}

// NewPendingFileStore returns a PendingFileStore rooted at dir.
func NewPendingFileStore(dir, passphrase string) *PendingFileStore {
	return &PendingFileStore{path: filepath.Join(dir, pendingFilename), codec: newCodec(passphrase)}
}

// SavePending replaces the stored record with req.
func (s *PendingFileStore) SavePending(req domain.PendingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.codec.marshal(req)
	if err != nil {
		return err
	}
	return writeFile(s.path, b)
}

// LoadPending returns the stored record; ok is false when there is none.
func (s *PendingFileStore) LoadPending() (domain.PendingRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path)
	if err != nil || b == nil {
		return domain.PendingRequest{}, false, err
	}
	var req domain.PendingRequest
	if err := s.codec.unmarshal(b, &req); err != nil {
		return domain.PendingRequest{}, false, err
	}
	return req, true, nil
}

// ClearPending removes the stored record.
func (s *PendingFileStore) ClearPending() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFile(s.path)
}

// Compile-time assertion that PendingFileStore implements domain.PendingStore.
var _ domain.PendingStore = (*PendingFileStore)(nil)
