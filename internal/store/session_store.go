package store

import (
	"path/filepath"
	"sync"

	"walletlink/internal/domain"
)

const sessionFilename = "session.json"

// SessionFileStore persists the connected wallet session, including the
// shared secret, sealed when a passphrase is configured.
type SessionFileStore struct {
	path  string
	codec codec
	mu    sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir, passphrase string) *SessionFileStore {
	return &SessionFileStore{path: filepath.Join(dir, sessionFilename), codec: newCodec(passphrase)}
}

// SaveSession writes the session record.
func (s *SessionFileStore) SaveSession(session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.codec.marshal(session)
	if err != nil {
		return err
	}
	return writeFile(s.path, b)
}

// LoadSession retrieves the stored session.
func (s *SessionFileStore) LoadSession() (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path)
	if err != nil || b == nil {
		return domain.Session{}, false, err
	}
	var session domain.Session
	if err := s.codec.unmarshal(b, &session); err != nil {
		return domain.Session{}, false, err
	}
	return session, true, nil
}

// DeleteSession removes the stored session.
func (s *SessionFileStore) DeleteSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFile(s.path)
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
