// Package dataset holds the hospitals dataset as an immutable snapshot that
// request handlers read without locking.
package dataset

import (
	"sync/atomic"
	"time"

	"github.com/mr1hm/go-health-hotspots/internal/models"
)

// Snapshot is never modified after it is published to a Store.
type Snapshot struct {
	Hospitals []models.Hospital
	Source    string
	LoadedAt  time.Time
	Dropped   int // rows discarded for unusable coordinates
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Hospitals)
}

func (s *Snapshot) Empty() bool {
	return s.Len() == 0
}

type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	if initial == nil {
		initial = &Snapshot{}
	}
	s.current.Store(initial)
	return s
}

// Snapshot returns the current snapshot. It is never nil.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Swap publishes next and returns the snapshot it replaced.
func (s *Store) Swap(next *Snapshot) *Snapshot {
	if next == nil {
		next = &Snapshot{}
	}
	return s.current.Swap(next)
}
