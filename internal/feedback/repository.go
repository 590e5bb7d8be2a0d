// Package feedback keeps the student feedback log. The whole log is one JSON
// array stored under a fixed key in a domain.KeyValueStore, so any backend
// (memory, SQLite, Postgres, blob) can hold it.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyspace/pkg/domain"
)

// StorageKey is the key the feedback log is stored under.
const StorageKey = "study_space_feedback"

// Option customises a Repository.
type Option func(*Repository)

// WithClock overrides the timestamp source used for new entries.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides the identifier source used for new entries.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// Repository appends to and queries the feedback log. A mutex serialises the
// read-modify-write cycle of Save and Clear.
type Repository struct {
	mu    sync.Mutex
	store domain.KeyValueStore
	now   func() time.Time
	newID func() string
}

// NewRepository returns a Repository over store.
func NewRepository(store domain.KeyValueStore, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Validate checks the fields a submission must carry.
func Validate(fb domain.Feedback) error {
	if fb.Rating < domain.MinRating || fb.Rating > domain.MaxRating {
		return &domain.InvalidInputError{Field: "rating", Value: fb.Rating, Reason: fmt.Sprintf("must be between %d and %d", domain.MinRating, domain.MaxRating)}
	}
	required := []struct{ field, value string }{
		{"locationId", fb.LocationID},
		{"studentId", fb.StudentID},
		{"studentName", fb.StudentName},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &domain.InvalidInputError{Field: f.field, Reason: "is required"}
		}
	}
	return nil
}

// Save validates fb and appends it to the log. Empty ID and Timestamp are filled in.
func (r *Repository) Save(ctx context.Context, fb domain.Feedback) (domain.Feedback, error) {
	if err := Validate(fb); err != nil {
		return domain.Feedback{}, err
	}
	fb.Comment = strings.TrimSpace(fb.Comment)
	if fb.ID == "" {
		fb.ID = r.newID()
	}
	if fb.Timestamp.IsZero() {
		fb.Timestamp = r.now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := r.load(ctx)
	if err != nil {
		return domain.Feedback{}, err
	}
	entries = append(entries, fb)
	payload, err := json.Marshal(entries)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("encode feedback: %w", err)
	}
	if err := r.store.Set(ctx, StorageKey, payload); err != nil {
		return domain.Feedback{}, fmt.Errorf("store feedback: %w", err)
	}
	return fb, nil
}

// All returns every entry in insertion order.
func (r *Repository) All(ctx context.Context) ([]domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// ForLocation returns the entries for one location.
func (r *Repository) ForLocation(ctx context.Context, locationID string) ([]domain.Feedback, error) {
	return r.filter(ctx, func(fb domain.Feedback) bool { return fb.LocationID == locationID })
}

// ForStudent returns the entries submitted by one student.
func (r *Repository) ForStudent(ctx context.Context, studentID string) ([]domain.Feedback, error) {
	return r.filter(ctx, func(fb domain.Feedback) bool { return fb.StudentID == studentID })
}

// Clear removes the whole log.
func (r *Repository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear feedback: %w", err)
	}
	return nil
}

func (r *Repository) filter(ctx context.Context, keep func(domain.Feedback) bool) ([]domain.Feedback, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Feedback, 0, len(all))
	for _, fb := range all {
		if keep(fb) {
			out = append(out, fb)
		}
	}
	return out, nil
}

// load must be called with r.mu held. A corrupt payload is an error rather
// than an empty log so a bad write can never be silently overwritten.
func (r *Repository) load(ctx context.Context) ([]domain.Feedback, error) {
	payload, ok, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	if !ok || len(payload) == 0 {
		return []domain.Feedback{}, nil
	}
	var entries []domain.Feedback
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	if entries == nil {
		entries = []domain.Feedback{}
	}
	return entries, nil
}
