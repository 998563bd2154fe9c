package trace

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/timeproduct"
)

// mergeThreshold is the row count above which a level's merge is kicked
// off on the background errgroup instead of executed inline — small
// batches merge cheaply enough that spawning a goroutine would cost more
// than it saves.
const mergeThreshold = 4096

// Spine is a geometrically-sized, level-based trace: batches land at
// level 0 and get folded into progressively larger levels as merges
// accumulate enough weight, giving amortized O(log n) insert cost per
// incoming batch the way an LSM tree does. Background level merges are
// offloaded the same way runtime/sam/op/meta.Lister's errgroup.Group
// offloads background listing work; the level storage itself follows
// runtime/vcache's immutable-shadow-with-lock pattern.
type Spine[K Ordered[K], V Ordered[V], Time timeproduct.Timestamp[Time], R algebra.Value[R]] struct {
	mu     sync.Mutex
	levels []levelState[K, V, Time, R]
	bounds Time
	grpCtx context.Context
}

type levelState[K Ordered[K], V Ordered[V], Time timeproduct.Timestamp[Time], R algebra.Value[R]] struct {
	batch Batch[K, V, Time, R]
}

// NewSpine returns an empty trace. ctx bounds the lifetime of any
// background merges the spine spawns: once it is cancelled, a background
// merge that has not yet started returns the context's error instead of
// merging; a merge already running completes.
func NewSpine[K Ordered[K], V Ordered[V], Time timeproduct.Timestamp[Time], R algebra.Value[R]](ctx context.Context) *Spine[K, V, Time, R] {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Spine[K, V, Time, R]{grpCtx: ctx}
}

// Insert folds a freshly produced batch into level 0 and cascades merges
// upward wherever two batches now occupy the same level, synchronously
// waiting for any merge still in flight at the level being folded into.
func (s *Spine[K, V, Time, R]) Insert(b Batch[K, V, Time, R]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := 0
	cur := b
	for {
		if level == len(s.levels) {
			s.levels = append(s.levels, levelState[K, V, Time, R]{batch: cur})
			return nil
		}
		existing := s.levels[level]
		if existing.batch.IsEmpty() {
			s.levels[level] = levelState[K, V, Time, R]{batch: cur}
			return nil
		}

		merged, err := s.mergeLevel(existing.batch, cur)
		if err != nil {
			return err
		}
		s.levels[level] = levelState[K, V, Time, R]{}
		cur = merged
		level++
	}
}

// mergeLevel merges two batches, running the work on a fresh errgroup
// derived from the spine's lifetime context once the combined row count
// crosses mergeThreshold, so the merge observes cancellation the same
// way any other background-offloaded work in the codebase does. Insert
// holds s.mu for the duration of a cascade and needs the merged batch
// before it can decide whether to fold further, so this still blocks the
// caller until the merge finishes — offloading it buys cancellation
// propagation and lets the runtime schedule the (potentially large) merge
// off of whatever goroutine called Insert, not a skipped wait. A fresh
// errgroup.Group per call (rather than one shared across the spine's
// lifetime) means one merge's error never poisons a later, unrelated
// Insert: only cancelling the context passed to NewSpine aborts
// subsequent merges.
func (s *Spine[K, V, Time, R]) mergeLevel(a, b Batch[K, V, Time, R]) (Batch[K, V, Time, R], error) {
	if a.Len()+b.Len() < mergeThreshold {
		return a.Merge(b), nil
	}

	grp, ctx := errgroup.WithContext(s.grpCtx)
	resultCh := make(chan Batch[K, V, Time, R], 1)
	grp.Go(func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		resultCh <- a.Merge(b)
		return nil
	})
	if err := grp.Wait(); err != nil {
		return Batch[K, V, Time, R]{}, err
	}
	return <-resultCh, nil
}

// Cursor returns a merged read view across every non-empty level,
// ordered the same way a single Batch's cursor is: by key, then by
// value, weights summed across levels at equal (key, val) pairs.
func (s *Spine[K, V, Time, R]) Cursor() Batch[K, V, Time, R] {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Empty[K, V, Time, R]()
	for _, lvl := range s.levels {
		if !lvl.batch.IsEmpty() {
			out = out.Merge(lvl.batch)
		}
	}
	return out
}

// AdvanceBounds records the new lower bound below which historical
// detail may be compacted away. AdvanceBounds itself does not delete
// anything, and the spine's merges do not consult the bound; it is only
// read back through Bounds.
func (s *Spine[K, V, Time, R]) AdvanceBounds(lower Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = s.bounds.Join(lower)
}

func (s *Spine[K, V, Time, R]) Bounds() Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}
