// Package scheduler decides which birds a learner practices next and how
// each answer changes the learner's mastery level.
package scheduler

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/metrics"
)

var (
	ErrEmptyCollection     = errors.New("collection is empty")
	ErrItemNotInCollection = errors.New("item is not in the collection")
	ErrStoreUnavailable    = errors.New("mastery store unavailable")
)

// Scheduler is safe for concurrent use.
type Scheduler struct {
	repo     learning.MasteryRepository
	clock    func() time.Time
	location *time.Location
	metrics  *metrics.Manager

	rngMu sync.Mutex
	rng   *rand.Rand

	locks keyedMutex
}

type Option func(*Scheduler)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRand sets the source used to break priority ties.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scheduler) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithLocation sets the time zone that decides calendar days for streaks.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

func New(repo learning.MasteryRepository, opts ...Option) *Scheduler {
	s := &Scheduler{
		repo:     repo,
		clock:    time.Now,
		location: time.Local,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		locks:    keyedMutex{locks: make(map[lockKey]*refLock)},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) now() time.Time {
	return s.clock().UTC()
}

func (s *Scheduler) shuffle(n int, swap func(i, j int)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng.Shuffle(n, swap)
}

type lockKey struct {
	learnerID int64
	itemID    int64
}

type refLock struct {
	mu   sync.Mutex
	refs int
}

// keyedMutex serializes work per key; entries are dropped once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[lockKey]*refLock
}

func (k *keyedMutex) lock(key lockKey) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
