package urlstate

import (
	"fmt"
	"net/url"
	"sync"
)

// DefaultKey is the query parameter that holds the encoded state.
const DefaultKey = "state"

// Mode selects how a [Location] records a new value.
type Mode int

const (
	// ModeReplace rewrites the current history entry.
	ModeReplace Mode = iota

	// ModePush adds a new history entry.
	ModePush
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	if m == ModePush {
		return "push"
	}
	return "replace"
}

// Location is the addressable place the encoded state lives, such as the
// query string of a browser address bar.
type Location interface {
	// Get returns the current value of key, or "" if it is not set.
	Get(key string) string

	// Navigate sets key to value using mode.
	Navigate(key, value string, mode Mode)
}

// MemoryLocation is an in-memory [Location] with a history stack.
//
// It is safe for concurrent use.
type MemoryLocation struct {
	mu      sync.RWMutex
	history []url.Values
}

// NewMemoryLocation creates a location whose single history entry is parsed
// from rawQuery (without the leading "?").
func NewMemoryLocation(rawQuery string) (*MemoryLocation, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}
	return &MemoryLocation{history: []url.Values{values}}, nil
}

// Get implements [Location].
func (l *MemoryLocation) Get(key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current().Get(key)
}

// Navigate implements [Location].
func (l *MemoryLocation) Navigate(key, value string, mode Mode) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := cloneValues(l.current())
	next.Set(key, value)

	if mode == ModePush {
		l.history = append(l.history, next)
		return
	}
	l.history[len(l.history)-1] = next
}

// Query returns the encoded query string of the current entry.
func (l *MemoryLocation) Query() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current().Encode()
}

// Len returns the number of history entries.
func (l *MemoryLocation) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.history)
}

// Back drops the current history entry. It reports false when there is no
// earlier entry to return to.
func (l *MemoryLocation) Back() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.history) < 2 {
		return false
	}
	l.history = l.history[:len(l.history)-1]
	return true
}

func (l *MemoryLocation) current() url.Values {
	return l.history[len(l.history)-1]
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
