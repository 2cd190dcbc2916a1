// Package ids mints identifiers: random UUIDs for entities and
// lexicographically sortable ULIDs for time-ordered records.
package ids

import (
	mathrand "math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Source mints identifiers.
type Source interface {
	// NewID returns an opaque entity identifier.
	NewID() string
	// NewSortableID returns an identifier that sorts by creation time.
	NewSortableID() string
}

// Random is the production Source.
type Random struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewRandom returns a Random source seeded from the current time.
func NewRandom() *Random {
	return &Random{
		entropy: ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0),
	}
}

// NewID returns a random UUID string.
func (r *Random) NewID() string {
	return uuid.NewString()
}

// NewSortableID returns a monotonic ULID string.
func (r *Random) NewSortableID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), r.entropy).String()
}

// Sequence is a deterministic Source yielding prefix-1, prefix-2, ...
// Both methods share one counter.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

// NewSequence returns a Sequence with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	return s.prefix + "-" + strconv.FormatInt(s.n.Add(1), 10)
}

// NewSortableID returns the next identifier in the sequence.
func (s *Sequence) NewSortableID() string {
	return s.NewID()
}
