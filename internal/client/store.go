// Package client is the in-process API consumer: a shared state container,
// fetch actions against the REST API, and the view/guard data flow the
// frontend renders from.
package client

import "sync"

// UserInfo is the client-side view of the authenticated user.
type UserInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// AuthState tracks the session. Loading starts true and settles once the
// first auth check (or login) completes.
type AuthState struct {
	Loading       bool
	Authenticated bool
	Token         string
	User          *UserInfo
}

// ProfileState tracks the profile data the views render from.
type ProfileState struct {
	Loading  bool
	Profile  *Profile
	Profiles []Profile
}

// Store is the single shared state tree for a client session. All reads
// and writes go through it; views never mutate state directly.
type Store struct {
	mu      sync.RWMutex
	auth    AuthState
	profile ProfileState
}

// NewStore returns a store in its initial state: auth unresolved, no
// profile data loaded.
func NewStore() *Store {
	return &Store{
		auth:    AuthState{Loading: true},
		profile: ProfileState{Loading: true},
	}
}

// Auth returns a snapshot of the auth slice.
func (s *Store) Auth() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

// ProfileSlice returns a snapshot of the profile slice.
func (s *Store) ProfileSlice() ProfileState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Reset returns the store to its initial state, e.g. on logout or account
// deletion.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = AuthState{Loading: true}
	s.profile = ProfileState{Loading: true}
}

func (s *Store) setAuth(a AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = a
}

func (s *Store) setProfileLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Loading = true
}

func (s *Store) setProfile(p *Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Loading = false
	s.profile.Profile = p
}

func (s *Store) setProfiles(list []Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Loading = false
	s.profile.Profiles = list
}
