package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rastha-be/models"

	"github.com/google/uuid"
)

// ErrPersistence marks a flush failure. The in-memory mutation has been
// applied and is kept; only durability is at risk.
var ErrPersistence = errors.New("snapshot flush failed")

// Data is the authoritative in-memory state. It is only ever touched
// while holding the store lock, through Update or View.
type Data struct {
	Complaints    map[string]*models.Complaint
	Contractors   map[string]*models.Contractor
	Personnel     map[string]*models.TrafficPersonnel
	Logs          []models.AdminLog
	Announcements []models.Announcement

	// ConcernVoters holds, per complaint id, the set of user ids that
	// currently have a concern raised on it.
	ConcernVoters map[string]map[string]bool

	NextToken int
}

// NewToken allocates the next TKN-#### complaint id.
func (d *Data) NewToken() string {
	id := fmt.Sprintf("TKN-%04d", d.NextToken)
	d.NextToken++
	return id
}

// AppendLog appends an audit ledger entry.
func (d *Data) AppendLog(role models.UserRole, action models.ActionType, details string) {
	d.Logs = append(d.Logs, models.AdminLog{
		ID:        uuid.NewString(),
		Action:    action,
		Role:      role,
		Timestamp: time.Now(),
		Details:   details,
	})
}

// Store owns the entity collections and their durability. All mutations
// go through Update, which serializes writers and flushes a snapshot
// before returning.
type Store struct {
	mu        sync.Mutex
	data      *Data
	persister Persister
}

// Persister is the durable key-value slot the store serializes into.
type Persister interface {
	// Load returns the last saved snapshot, or (nil, nil) when the slot
	// is empty.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// Open loads the store from the persister, back-filling older records.
// An empty slot is seeded with the reference contractor and traffic
// personnel rosters.
func Open(ctx context.Context, p Persister) (*Store, error) {
	snap, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading store snapshot: %w", err)
	}

	var data *Data
	if snap == nil {
		data = seedData()
	} else {
		data = snap.restore()
	}

	s := &Store{data: data, persister: p}
	if snap == nil {
		if err := p.Save(ctx, snapshotData(data)); err != nil {
			return nil, fmt.Errorf("writing initial snapshot: %w", err)
		}
	}
	return s, nil
}

// Update runs fn against the live data under the store lock and, when fn
// succeeds, synchronously flushes a snapshot. fn must not leave partial
// changes behind on error: validate first, then mutate.
//
// A flush failure keeps the mutation and returns an error wrapping
// ErrPersistence so callers can warn about durability.
func (s *Store) Update(ctx context.Context, fn func(d *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.data); err != nil {
		return err
	}
	if err := s.persister.Save(ctx, snapshotData(s.data)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// View runs fn against the live data under the store lock. fn must not
// mutate and must not retain references past its return; clone anything
// handed out.
func (s *Store) View(fn func(d *Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}
