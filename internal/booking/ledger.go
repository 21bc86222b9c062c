package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// saveTimeout bounds a single background save attempt.
const saveTimeout = 5 * time.Second

// Ledger is the authoritative, concurrency-safe collection of booking
// requests. A single mutex serializes all mutations so the transition
// validity check and the write are atomic together; readers take the
// shared side and always observe a consistent snapshot.
//
// In-memory state is authoritative immediately. Persistence is best
// effort: after each mutation the latest snapshot is handed to a single
// persister goroutine, so a crash loses at most the newest mutation and
// never corrupts earlier state.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]*BookingRequest

	store  Store
	logger *slog.Logger
	now    func() time.Time

	saves chan []BookingRequest
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// Open builds a ledger from persisted content. Absent, unreadable or
// structurally invalid content is not fatal: the ledger logs the problem
// and seeds itself from the provided default dataset instead. Pass a nil
// store for a purely in-memory ledger.
func Open(ctx context.Context, store Store, seed []BookingRequest, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{
		records: make(map[string]*BookingRequest),
		store:   store,
		logger:  logger,
		now:     time.Now,
		saves:   make(chan []BookingRequest, 1),
		done:    make(chan struct{}),
	}

	records := seed
	if store != nil {
		loaded, err := store.Load(ctx)
		switch {
		case err == nil:
			records = loaded
		case errors.Is(err, ErrStoreMissing):
			logger.Info("ledger store empty, seeding defaults", slog.Int("seed", len(seed)))
		default:
			logger.Warn("ledger store unreadable, seeding defaults", slog.Any("error", err))
		}
	}
	for _, rec := range records {
		cp := rec.Clone()
		l.records[cp.ID] = &cp
	}

	if store != nil {
		l.wg.Add(1)
		go l.persistLoop()
	}
	return l
}

// Close flushes any pending snapshot and stops the persister. The ledger
// stays readable afterwards; further mutations are no longer persisted.
func (l *Ledger) Close() {
	l.once.Do(func() { close(l.done) })
	l.wg.Wait()
}

// Create inserts a new request. The stored status is forced to pending
// regardless of what the caller supplied; pending is the only legal
// initial state. Fails with ErrDuplicateID or ErrInvalidRecord.
func (l *Ledger) Create(ctx context.Context, rec BookingRequest) (BookingRequest, error) {
	cp := rec.Clone()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = l.now().UTC()
	}
	cp.Status = StatusPending
	if err := cp.Validate(); err != nil {
		return BookingRequest{}, err
	}

	l.mu.Lock()
	if _, exists := l.records[cp.ID]; exists {
		l.mu.Unlock()
		return BookingRequest{}, fmt.Errorf("%w: %s", ErrDuplicateID, cp.ID)
	}
	l.records[cp.ID] = &cp
	l.enqueueSaveLocked()
	l.mu.Unlock()

	return cp.Clone(), nil
}

// Transition moves a request to target per the lifecycle table. On
// success the whole record is replaced atomically; concurrent readers
// never observe a record mid-transition. Fails with ErrNotFound or a
// TransitionError carrying id, current and attempted state.
func (l *Ledger) Transition(ctx context.Context, id string, target Status) (BookingRequest, error) {
	l.mu.Lock()
	cur, ok := l.records[id]
	if !ok {
		l.mu.Unlock()
		return BookingRequest{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !cur.Status.CanTransition(target) {
		err := &TransitionError{ID: id, From: cur.Status, To: target}
		l.mu.Unlock()
		return BookingRequest{}, err
	}
	next := cur.Clone()
	next.Status = target
	l.records[id] = &next
	l.enqueueSaveLocked()
	l.mu.Unlock()

	return next.Clone(), nil
}

// Get returns a copy of the record with the given id.
func (l *Ledger) Get(id string) (BookingRequest, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[id]
	if !ok {
		return BookingRequest{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec.Clone(), nil
}

// ListByFacility returns the facility's requests ordered by creation time
// ascending, id as tiebreak. Pass statuses to filter. The result is a
// snapshot of copies; callers cannot mutate ledger state through it.
func (l *Ledger) ListByFacility(facilityID int64, statuses ...Status) []BookingRequest {
	l.mu.RLock()
	out := make([]BookingRequest, 0)
	for _, rec := range l.records {
		if rec.FacilityID != facilityID {
			continue
		}
		if len(statuses) > 0 && !statusIn(rec.Status, statuses) {
			continue
		}
		out = append(out, rec.Clone())
	}
	l.mu.RUnlock()

	sortByCreation(out)
	return out
}

// CountPending counts the facility's pending requests. The count streams
// over the records without materializing a list; it is always derived
// from current ledger contents, never from a separate counter.
func (l *Ledger) CountPending(facilityID int64) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, rec := range l.records {
		if rec.FacilityID == facilityID && rec.Status == StatusPending {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of every record ordered by creation time.
func (l *Ledger) Snapshot() []BookingRequest {
	l.mu.RLock()
	out := make([]BookingRequest, 0, len(l.records))
	for _, rec := range l.records {
		out = append(out, rec.Clone())
	}
	l.mu.RUnlock()

	sortByCreation(out)
	return out
}

// enqueueSaveLocked hands the current snapshot to the persister. The
// one-slot channel keeps only the newest snapshot when saving falls
// behind; calling under the write lock guarantees snapshots are enqueued
// in mutation order.
func (l *Ledger) enqueueSaveLocked() {
	if l.store == nil {
		return
	}
	snap := make([]BookingRequest, 0, len(l.records))
	for _, rec := range l.records {
		snap = append(snap, rec.Clone())
	}
	sortByCreation(snap)

	select {
	case l.saves <- snap:
	default:
		// Drop the stale pending snapshot and replace it.
		select {
		case <-l.saves:
		default:
		}
		select {
		case l.saves <- snap:
		default:
		}
	}
}

func (l *Ledger) persistLoop() {
	defer l.wg.Done()
	for {
		select {
		case snap := <-l.saves:
			l.persist(snap)
		case <-l.done:
			select {
			case snap := <-l.saves:
				l.persist(snap)
			default:
			}
			return
		}
	}
}

func (l *Ledger) persist(snap []BookingRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := l.store.Save(ctx, snap); err != nil {
		l.logger.Warn("ledger save failed", slog.Any("error", err))
	}
}

func sortByCreation(records []BookingRequest) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}

func statusIn(s Status, set []Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}
