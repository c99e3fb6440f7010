// Package session is the client-local session store: the small set of
// identifiers and preferences that survive app restarts. Values live in the
// system keyring under a single service name. Read or write failures are
// logged and treated as "value absent" so a broken keyring never takes the
// app down.
package session

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/zalando/go-keyring"
)

// Service is the name the session keys are stored under in the system keyring.
const Service = "MyWatt"

// Persisted keys. All values are strings; booleans are stored stringified.
const (
	KeyName        = "name"
	KeyEmail       = "email"
	KeyUserID      = "userId"
	KeyRole        = "role"
	KeyHouseholdID = "householdId"
	KeyHouseID     = "houseId"
	KeyHouseName   = "house_name"
	KeyDarkMode    = "darkMode"
)

// allKeys is the full set cleared on sign-out.
var allKeys = []string{
	KeyName, KeyEmail, KeyUserID, KeyRole,
	KeyHouseholdID, KeyHouseID, KeyHouseName, KeyDarkMode,
}

// ErrNotFound is returned by a Backend when a key has never been set.
var ErrNotFound = errors.New("session: key not found")

// Backend is the persistent key-value store the session sits on. The
// production backend is the system keyring; tests use an in-memory one.
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// keyringBackend stores values in the system keyring under Service.
type keyringBackend struct{}

func (keyringBackend) Get(key string) (string, error) {
	v, err := keyring.Get(Service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

func (keyringBackend) Set(key, value string) error {
	return keyring.Set(Service, key, value)
}

func (keyringBackend) Delete(key string) error {
	err := keyring.Delete(Service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// MemoryBackend is an in-memory Backend for tests.
type MemoryBackend struct {
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	delete(m.values, key)
	return nil
}

// Store provides typed access to the persisted session values.
type Store struct {
	backend Backend
	log     *slog.Logger
}

// New returns a Store backed by the system keyring.
func New() *Store {
	return NewWithBackend(keyringBackend{})
}

// NewWithBackend returns a Store over the given backend.
func NewWithBackend(b Backend) *Store {
	return &Store{backend: b, log: slog.Default()}
}

// Get returns the value for key, or "" if the key is unset or the backend
// failed. Backend failures are logged, never surfaced.
func (s *Store) Get(key string) string {
	v, err := s.backend.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("session read failed", "key", key, "error", err)
		}
		return ""
	}
	return v
}

// Set stores value under key. Backend failures are logged, never surfaced.
func (s *Store) Set(key, value string) {
	if err := s.backend.Set(key, value); err != nil {
		s.log.Warn("session write failed", "key", key, "error", err)
	}
}

// Remove deletes key from the store.
func (s *Store) Remove(key string) {
	if err := s.backend.Delete(key); err != nil {
		s.log.Warn("session delete failed", "key", key, "error", err)
	}
}

// Clear removes every session key. Used on sign-out and account deletion.
func (s *Store) Clear() {
	for _, key := range allKeys {
		s.Remove(key)
	}
}

func (s *Store) Name() string        { return s.Get(KeyName) }
func (s *Store) Email() string       { return s.Get(KeyEmail) }
func (s *Store) UserID() string      { return s.Get(KeyUserID) }
func (s *Store) Role() string        { return s.Get(KeyRole) }
func (s *Store) HouseholdID() string { return s.Get(KeyHouseholdID) }
func (s *Store) HouseID() string     { return s.Get(KeyHouseID) }
func (s *Store) HouseName() string   { return s.Get(KeyHouseName) }

func (s *Store) SetName(v string)   { s.Set(KeyName, v) }
func (s *Store) SetEmail(v string)  { s.Set(KeyEmail, v) }
func (s *Store) SetUserID(v string) { s.Set(KeyUserID, v) }
func (s *Store) SetRole(v string)   { s.Set(KeyRole, v) }

// SelectHouse records the active house. The backend keys houses and
// households by the same id, so both session keys are written together.
func (s *Store) SelectHouse(houseID, name string) {
	s.Set(KeyHouseID, houseID)
	s.Set(KeyHouseholdID, houseID)
	s.Set(KeyHouseName, name)
}

// DarkMode reports the persisted theme preference. Absent means light.
func (s *Store) DarkMode() bool {
	v, err := strconv.ParseBool(s.Get(KeyDarkMode))
	return err == nil && v
}

func (s *Store) SetDarkMode(on bool) {
	s.Set(KeyDarkMode, strconv.FormatBool(on))
}
