package utils

import "sync"

// URLTracker counts how often each URL was seen
type URLTracker struct {
	mu   sync.Mutex
	seen map[string]int
}

// NewURLTracker creates a new tracker
func NewURLTracker() *URLTracker {
	return &URLTracker{seen: make(map[string]int)}
}

// Add returns true if the URL is new (not seen before), false if duplicate
func (t *URLTracker) Add(url string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[url]++
	return t.seen[url] == 1
}

// Count returns the number of distinct tracked URLs
func (t *URLTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// Duplicates returns the number of Add calls that repeated a known URL
func (t *URLTracker) Duplicates() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.seen {
		n += c - 1
	}
	return n
}
