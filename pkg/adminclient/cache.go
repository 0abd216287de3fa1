package adminclient

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"gkk99-backend/internal/models"
)

// AuthState tracks what the client currently knows about its session.
// Transitions are driven solely by Login/Logout/Resume results, never by the
// mere presence of a cached token.
type AuthState int

const (
	StateUnknown AuthState = iota
	StateVerifying
	StateAuthenticated
	StateUnauthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// CachedSession is the locally persisted token plus account snapshot
type CachedSession struct {
	Token string         `json:"token"`
	User  models.Account `json:"user"`
}

// TokenStore persists the cached session between runs. Save overwrites the
// whole slot; there is never a partial merge.
type TokenStore interface {
	Load() (*CachedSession, error)
	Save(session *CachedSession) error
	Clear() error
}

// ErrNoSession indicates the store holds no cached session
var ErrNoSession = errors.New("no cached session")

// FileStore persists the cached session as a JSON file
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed token store
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*CachedSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var session CachedSession
	if err := json.Unmarshal(data, &session); err != nil {
		// Corrupt cache behaves like no cache
		return nil, ErrNoSession
	}
	if session.Token == "" {
		return nil, ErrNoSession
	}

	return &session, nil
}

func (s *FileStore) Save(session *CachedSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore keeps the cached session in memory, used by tests
type MemoryStore struct {
	mu      sync.Mutex
	session *CachedSession
}

// NewMemoryStore creates an in-memory token store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*CachedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, ErrNoSession
	}
	copied := *s.session
	return &copied, nil
}

func (s *MemoryStore) Save(session *CachedSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.session = &copied
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
