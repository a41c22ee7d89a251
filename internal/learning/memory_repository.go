package learning

import (
	"context"
	"sort"
	"sync"
	"time"
)

type recordKey struct {
	learnerID int64
	itemID    int64
}

// MemoryRepository keeps the catalog, records and attempts in process.
// It implements both ItemRepository and MasteryRepository and is safe for concurrent use.
type MemoryRepository struct {
	mu            sync.Mutex
	items         map[int64]Item
	records       map[recordKey]MasteryRecord
	attempts      []Attempt
	lastItemID    int64
	lastAttemptID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items:   make(map[int64]Item),
		records: make(map[recordKey]MasteryRecord),
	}
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (r *MemoryRepository) FindByScientificName(_ context.Context, scientificName string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ScientificName == scientificName {
			return &item, nil
		}
	}
	return nil, ErrItemNotFound
}

func (r *MemoryRepository) Create(_ context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastItemID++
	item.ID = r.lastItemID
	r.items[item.ID] = *item
	return nil
}

func (r *MemoryRepository) FindCollection(_ context.Context, learnerID int64) ([]CollectionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []CollectionEntry
	for key, record := range r.records {
		if key.learnerID != learnerID {
			continue
		}
		entries = append(entries, CollectionEntry{Item: r.items[key.itemID], Record: record})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Record.AddedAt.Equal(entries[j].Record.AddedAt) {
			return entries[i].Record.AddedAt.Before(entries[j].Record.AddedAt)
		}
		return entries[i].Item.ID < entries[j].Item.ID
	})
	return entries, nil
}

func (r *MemoryRepository) FindRecord(_ context.Context, learnerID, itemID int64) (*MasteryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[recordKey{learnerID, itemID}]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &record, nil
}

func (r *MemoryRepository) CreateRecord(_ context.Context, record *MasteryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey{record.LearnerID, record.ItemID}
	if _, ok := r.records[key]; ok {
		return ErrRecordExists
	}
	if _, ok := r.items[record.ItemID]; !ok {
		return ErrItemNotFound
	}
	r.records[key] = *record
	return nil
}

func (r *MemoryRepository) DeleteRecord(_ context.Context, learnerID, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey{learnerID, itemID}
	if _, ok := r.records[key]; !ok {
		return ErrRecordNotFound
	}
	delete(r.records, key)

	kept := r.attempts[:0]
	for _, a := range r.attempts {
		if a.LearnerID == learnerID && a.ItemID == itemID {
			continue
		}
		kept = append(kept, a)
	}
	r.attempts = kept
	return nil
}

// UpdateRecord holds the repository lock while fn runs, so fn must only use tx.
func (r *MemoryRepository) UpdateRecord(ctx context.Context, learnerID, itemID int64, fn func(ctx context.Context, tx RecordTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	key := recordKey{learnerID, itemID}
	record, ok := r.records[key]
	if !ok {
		return ErrRecordNotFound
	}

	tx := &memoryRecordTx{repo: r, record: record}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	r.records[key] = tx.record
	r.attempts = append(r.attempts, tx.pending...)
	r.lastAttemptID += int64(len(tx.pending))
	return nil
}

func (r *MemoryRepository) RecentAttempts(_ context.Context, learnerID int64, limit int) ([]Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return newestFirst(r.filterAttempts(func(a Attempt) bool { return a.LearnerID == learnerID }), limit), nil
}

func (r *MemoryRepository) FindAttempts(_ context.Context, learnerID int64) ([]Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempts := r.filterAttempts(func(a Attempt) bool { return a.LearnerID == learnerID })
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].CreatedAt.Before(attempts[j].CreatedAt)
	})
	return attempts, nil
}

func (r *MemoryRepository) CountAttempts(_ context.Context, learnerID int64, since time.Time) (AttemptCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count AttemptCount
	for _, a := range r.attempts {
		if a.LearnerID != learnerID || a.CreatedAt.Before(since) {
			continue
		}
		count.Total++
		if a.Correct {
			count.Correct++
		}
	}
	return count, nil
}

func (r *MemoryRepository) PracticeTimes(_ context.Context, learnerID int64) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempts := newestFirst(r.filterAttempts(func(a Attempt) bool { return a.LearnerID == learnerID }), 0)
	times := make([]time.Time, 0, len(attempts))
	for _, a := range attempts {
		times = append(times, a.CreatedAt)
	}
	return times, nil
}

func (r *MemoryRepository) BatchCreateAttempts(_ context.Context, attempts []Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range attempts {
		r.lastAttemptID++
		a.ID = r.lastAttemptID
		r.attempts = append(r.attempts, a)
	}
	return nil
}

func (r *MemoryRepository) filterAttempts(keep func(Attempt) bool) []Attempt {
	var attempts []Attempt
	for _, a := range r.attempts {
		if keep(a) {
			attempts = append(attempts, a)
		}
	}
	return attempts
}

// newestFirst sorts by creation time then ID, both descending. A limit of 0 keeps all.
func newestFirst(attempts []Attempt, limit int) []Attempt {
	sort.SliceStable(attempts, func(i, j int) bool {
		if !attempts[i].CreatedAt.Equal(attempts[j].CreatedAt) {
			return attempts[i].CreatedAt.After(attempts[j].CreatedAt)
		}
		return attempts[i].ID > attempts[j].ID
	})
	if limit > 0 && len(attempts) > limit {
		attempts = attempts[:limit]
	}
	return attempts
}

type memoryRecordTx struct {
	repo    *MemoryRepository
	record  MasteryRecord
	pending []Attempt
}

func (t *memoryRecordTx) Record() MasteryRecord {
	return t.record
}

func (t *memoryRecordTx) RecentAttempts(_ context.Context, limit int) ([]Attempt, error) {
	attempts := t.repo.filterAttempts(func(a Attempt) bool {
		return a.LearnerID == t.record.LearnerID && a.ItemID == t.record.ItemID
	})
	attempts = append(attempts, t.pending...)
	return newestFirst(attempts, limit), nil
}

func (t *memoryRecordTx) AppendAttempt(_ context.Context, attempt *Attempt) error {
	attempt.LearnerID = t.record.LearnerID
	attempt.ItemID = t.record.ItemID
	// The repository lock is held, so the ID assigned on commit is known.
	attempt.ID = t.repo.lastAttemptID + int64(len(t.pending)) + 1
	t.pending = append(t.pending, *attempt)
	return nil
}

func (t *memoryRecordTx) SaveRecord(_ context.Context, record MasteryRecord) error {
	record.LearnerID = t.record.LearnerID
	record.ItemID = t.record.ItemID
	t.record = record
	return nil
}
