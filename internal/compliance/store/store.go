// Package store implements the company store: the single owner of the
// CompanyState aggregate. Every mutation is written to durable storage as a
// whole snapshot before it becomes visible, and the last snapshot is
// reloaded when the store is constructed.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	e "github.com/gartstein/corpsec/internal/compliance/errors"
	"github.com/gartstein/corpsec/internal/compliance/events"
	"github.com/gartstein/corpsec/internal/compliance/idgen"
	"github.com/gartstein/corpsec/internal/compliance/metrics"
	"github.com/gartstein/corpsec/internal/compliance/models"
	"go.uber.org/zap"
)

// DefaultKey is the storage key the snapshot lives under.
const DefaultKey = "companyData"

// Storage is the durable medium for snapshots. Load returns ErrNotFound
// when nothing has been stored under key yet.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, version int, payload []byte) error
}

// Validator checks a record before it is written.
type Validator interface {
	Structural(record any) error
}

// EventProducer receives a notification for every committed mutation.
type EventProducer interface {
	Produce(eventType events.EventType, entityID string, record any)
}

// Store owns the CompanyState. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	state   models.CompanyState
	storage Storage
	key     string

	logger    *zap.Logger
	clock     func() time.Time
	newID     func() string
	validator Validator
	producer  EventProducer
	metrics   *metrics.Store
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock sets the time source used to stamp new meetings.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithIDGenerator replaces idgen.New.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithValidator makes every write run the structural checks first.
// Without one the store accepts records as given.
func WithValidator(v Validator) Option {
	return func(s *Store) { s.validator = v }
}

func WithEventProducer(p EventProducer) Option {
	return func(s *Store) { s.producer = p }
}

func WithMetrics(m *metrics.Store) Option {
	return func(s *Store) { s.metrics = m }
}

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// New builds a Store and rehydrates it from storage. A missing or unreadable
// snapshot yields the empty state; only a failing storage medium is an error.
func New(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		logger:  zap.NewNop(),
		clock:   time.Now,
		newID:   idgen.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("company_store")

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.state = state
	return s, nil
}

func (s *Store) load(ctx context.Context) (models.CompanyState, error) {
	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			s.logger.Info("No snapshot found, starting empty", zap.String("key", s.key))
			return models.NewCompanyState(), nil
		}
		return models.CompanyState{}, fmt.Errorf("%w: load snapshot: %v", e.ErrPersistence, err)
	}

	state, err := decodeSnapshot(data)
	if err != nil {
		s.logger.Warn("Discarding unreadable snapshot",
			zap.Error(err),
			zap.String("key", s.key),
			zap.Int("bytes", len(data)),
		)
		return models.NewCompanyState(), nil
	}
	return state, nil
}

// State returns a copy of the whole aggregate.
func (s *Store) State() models.CompanyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// mutate applies fn to a copy of the current state, persists the result and
// only then makes it current. fn returns the identity of the affected record
// and the record to publish.
func (s *Store) mutate(
	ctx context.Context,
	event events.EventType,
	fn func(next *models.CompanyState) (string, any, error),
) (models.CompanyState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	id, record, err := fn(&next)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			s.metrics.IncNotFound(string(event))
			s.logger.Debug("Mutation matched no record",
				zap.String("operation", string(event)),
				zap.String("id", id),
			)
		}
		return s.state.Clone(), err
	}

	if err := s.persist(ctx, next); err != nil {
		s.metrics.IncPersistFailure()
		s.logger.Error("Failed to persist snapshot",
			zap.Error(err),
			zap.String("operation", string(event)),
			zap.String("id", id),
		)
		return s.state.Clone(), fmt.Errorf("%w: %v", e.ErrPersistence, err)
	}

	s.state = next
	s.metrics.IncMutation(string(event))
	if s.producer != nil {
		s.producer.Produce(event, id, record)
	}
	return next.Clone(), nil
}

func (s *Store) persist(ctx context.Context, state models.CompanyState) error {
	payload, err := encodeSnapshot(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.storage.Save(ctx, s.key, SchemaVersion, payload)
}

func (s *Store) check(record any) error {
	if s.validator == nil {
		return nil
	}
	return s.validator.Structural(record)
}

// rejected returns the current state together with err, for writes refused
// before any mutation is attempted.
func (s *Store) rejected(err error) (models.CompanyState, error) {
	return s.State(), err
}

// SetCompanyProfile replaces the profile. The existing identity is kept; a
// fresh one is assigned only when no profile existed.
func (s *Store) SetCompanyProfile(ctx context.Context, details models.CompanyProfile) (models.CompanyState, error) {
	if err := s.check(details); err != nil {
		return s.rejected(err)
	}
	return s.mutate(ctx, events.ProfileSet, func(next *models.CompanyState) (string, any, error) {
		if next.CompanyDetails != nil && next.CompanyDetails.ID != "" {
			details.ID = next.CompanyDetails.ID
		} else {
			details.ID = s.newID()
		}
		next.CompanyDetails = &details
		return details.ID, details, nil
	})
}

// Profile returns a copy of the profile, or nil when none has been set.
func (s *Store) Profile() *models.CompanyProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CompanyDetails.Clone()
}

// uniqueID draws identities until one is unused in items.
func uniqueID[T models.Record[T]](items []T, gen func() string) string {
	for {
		id := gen()
		if id == "" {
			continue
		}
		if _, taken := indexOf(items, id); !taken {
			return id
		}
	}
}

func indexOf[T models.Record[T]](items []T, id string) (int, bool) {
	for i, item := range items {
		if item.Identity() == id {
			return i, true
		}
	}
	return -1, false
}

// appendRecord assigns a fresh identity to rec and appends it.
func appendRecord[T models.Record[T]](items []T, rec T, gen func() string) ([]T, T) {
	rec = rec.WithIdentity(uniqueID(items, gen))
	return append(items, rec), rec
}

// replaceRecord swaps the first record matching id for rec, keeping id.
func replaceRecord[T models.Record[T]](items []T, id string, rec T) ([]T, T, error) {
	i, ok := indexOf(items, id)
	if !ok {
		return items, rec, fmt.Errorf("%w: id %q", e.ErrNotFound, id)
	}
	rec = rec.WithIdentity(id)
	items[i] = rec
	return items, rec, nil
}

// deleteRecord drops the first record matching id.
func deleteRecord[T models.Record[T]](items []T, id string) ([]T, T, error) {
	i, ok := indexOf(items, id)
	if !ok {
		var zero T
		return items, zero, fmt.Errorf("%w: id %q", e.ErrNotFound, id)
	}
	removed := items[i]
	return append(items[:i:i], items[i+1:]...), removed, nil
}

func lookup[T models.Record[T]](items []T, id string) (T, error) {
	i, ok := indexOf(items, id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %q", e.ErrNotFound, id)
	}
	return items[i], nil
}
