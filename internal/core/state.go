// Package core holds the session and funds state of the wagering
// client: the user roster, the active session, the transaction ledger
// and the administrator configuration. The roster is the single source
// of truth for user records; the session is a lookup key into it, so
// session and roster can never disagree.
package core

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ahmed2844ah-star/bokogaming/internal/domain"
)

// Mirror is the durable local store the roster and theme are written
// through to after every mutation.
type Mirror interface {
	SaveRoster([]domain.User) error
	LoadRoster() []domain.User
	SaveTheme(theme string) error
	LoadTheme() string
}

// State owns all mutable application state. Handlers run concurrently,
// so every operation takes the mutex; each read-modify-write is atomic
// and no intermediate state is observable.
type State struct {
	mu     sync.Mutex
	mirror Mirror
	log    *logrus.Logger

	users        []domain.User        // authoritative roster, identities unique
	currentID    string               // active session user id, empty when signed out
	transactions []domain.Transaction // append-only ledger, newest first
	settings     domain.AdminSettings
	theme        string
}

// New loads the persisted roster and theme and returns a ready State.
func New(mirror Mirror, log *logrus.Logger) *State {
	s := &State{
		mirror:       mirror,
		log:          log,
		users:        mirror.LoadRoster(),
		transactions: []domain.Transaction{},
		settings:     domain.DefaultSettings(),
		theme:        mirror.LoadTheme(),
	}
	log.WithField("users", len(s.users)).Info("State loaded")
	return s
}

// SignIn makes u the active session user. If the roster has no record
// with u's identity one is inserted; an existing record is left
// untouched, so login callers must pass the roster's own record.
func (s *State) SignIn(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = u.ID
	s.insertIfAbsent(u)
}

// SignOut clears the active session. The roster is untouched.
func (s *State) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = ""
}

// CurrentUser returns the active session user's roster record.
func (s *State) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(s.currentID)
}

// UpsertPresence inserts u into the roster unless a record with the
// same identity already exists. Idempotent on repeated registration.
func (s *State) UpsertPresence(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertIfAbsent(u)
}

// Replace overwrites the roster record sharing u's identity. A missing
// identity is a no-op: callers always replace an entity they just read.
func (s *State) Replace(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			s.persistRoster()
			return
		}
	}
}

// Users returns a snapshot of the roster.
func (s *State) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// FindByUsername returns the roster record with the given display name.
func (s *State) FindByUsername(username string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

// FindByID returns the roster record with the given identity.
func (s *State) FindByID(id string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id)
}

// Theme returns the persisted theme preference.
func (s *State) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme stores and persists the theme preference.
func (s *State) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	if err := s.mirror.SaveTheme(theme); err != nil {
		s.log.Warn("Failed to persist theme: ", err)
	}
}

// lookup finds a roster record by id. Callers hold the mutex.
func (s *State) lookup(id string) (domain.User, bool) {
	if id == "" {
		return domain.User{}, false
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// insertIfAbsent appends u unless the identity is taken, persisting on
// change. Callers hold the mutex.
func (s *State) insertIfAbsent(u domain.User) {
	for _, existing := range s.users {
		if existing.ID == u.ID {
			return
		}
	}
	s.users = append(s.users, u)
	s.persistRoster()
}

// persistRoster mirrors the roster write-through after a mutation.
// Callers hold the mutex. Persistence failure is logged, not raised:
// the in-memory state stays consistent and remains authoritative.
func (s *State) persistRoster() {
	if err := s.mirror.SaveRoster(s.users); err != nil {
		s.log.Warn("Failed to persist roster: ", err)
	}
}
