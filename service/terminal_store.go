package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pos-storefront/models"
)

// Terminal is one storefront page session: a page controller, its view and its cart.
// Hold the lock for the whole interaction so one page handles one event at a time.
type Terminal struct {
	ID         string
	Controller *PageController
	View       *PageView

	mu       sync.Mutex
	loaded   bool
	lastSeen time.Time
}

// Lock serialises interactions on the terminal
func (t *Terminal) Lock() { t.mu.Lock() }

// Unlock releases the terminal
func (t *Terminal) Unlock() { t.mu.Unlock() }

// NeedsCatalog reports whether the startup catalog load has not run yet; caller holds the lock
func (t *Terminal) NeedsCatalog() bool { return !t.loaded }

// MarkCatalogLoaded records that the startup load ran; caller holds the lock
func (t *Terminal) MarkCatalogLoaded() { t.loaded = true }

// TerminalStore keeps the live terminals keyed by id
type TerminalStore struct {
	client BackendClientInterface
	now    func() time.Time

	mu        sync.Mutex
	terminals map[string]*Terminal
}

// NewTerminalStore creates a new TerminalStore whose terminals use client
func NewTerminalStore(client BackendClientInterface) *TerminalStore {
	return &TerminalStore{
		client:    client,
		now:       time.Now,
		terminals: make(map[string]*Terminal),
	}
}

// Create opens a new terminal with an empty cart
func (s *TerminalStore) Create() *Terminal {
	view := NewPageView()
	t := &Terminal{
		ID:         uuid.NewString(),
		Controller: NewPageController(s.client, models.NewCart(), view),
		View:       view,
	}

	s.mu.Lock()
	t.lastSeen = s.now()
	s.terminals[t.ID] = t
	s.mu.Unlock()
	return t
}

// Get returns the terminal with id and refreshes its idle timer
func (s *TerminalStore) Get(id string) (*Terminal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.terminals[id]
	if ok {
		t.lastSeen = s.now()
	}
	return t, ok
}

// Remove drops a terminal and its cart
func (s *TerminalStore) Remove(id string) {
	s.mu.Lock()
	delete(s.terminals, id)
	s.mu.Unlock()
}

// Sweep drops terminals idle for longer than ttl and returns how many were dropped
func (s *TerminalStore) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, t := range s.terminals {
		if t.lastSeen.Before(cutoff) {
			delete(s.terminals, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live terminals
func (s *TerminalStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.terminals)
}
