package handlers

import "sync"

// snapshot is the last-known-good copy of a fetched collection. Every fetch
// takes a ticket before issuing its request and may only install its result
// if no later fetch has installed one, so concurrent refreshes resolve
// last-issued-wins instead of last-resolved-wins. Reads never block on a
// fetch; a failed fetch leaves the previous snapshot in place.
//
// Slices returned by get (and installed by fetches) are never written again:
// patch publishes a fresh slice, so renderers may iterate what they were
// handed without holding any lock.
type snapshot[T any] struct {
	mu   sync.Mutex
	next uint64
	done uint64
	data []T
	ok   bool
}

// begin registers an outgoing fetch and returns its ticket.
func (s *snapshot[T]) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// install stores data for the given ticket. It reports false when a later
// fetch already installed its result, in which case data is discarded.
func (s *snapshot[T]) install(ticket uint64, data []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket < s.done {
		return false
	}
	s.done = ticket
	s.data = data
	s.ok = true
	return true
}

// get returns the current snapshot, if one has ever been installed.
func (s *snapshot[T]) get() ([]T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.ok
}

// patch applies f to a copy of the current snapshot and publishes the result.
// Used for local write-through after a confirmed single-field update; a no-op
// before the first successful fetch. f receives private memory, so in-place
// element writes are safe.
func (s *snapshot[T]) patch(f func([]T) []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ok {
		return
	}
	fresh := make([]T, len(s.data))
	copy(fresh, s.data)
	s.data = f(fresh)
}
