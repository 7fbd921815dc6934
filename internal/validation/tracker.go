package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/sumire/notifyschema/internal/domain"
)

// ChannelStore persists what is known about channel ids.
// Get returns domain.ErrNotFound for an unknown id.
type ChannelStore interface {
	Get(ctx context.Context, channelID string) (*domain.ChannelRecord, error)
	Put(ctx context.Context, rec domain.ChannelRecord) error
}

// ChannelTracker remembers the immutable fields of channels seen locally so a
// divergent redefinition fails before it reaches the device. The native layer
// stays authoritative; this is a fail-fast check.
type ChannelTracker struct {
	mu     sync.Mutex
	store  ChannelStore
	now    func() time.Time
	logger *slog.Logger
}

// NewChannelTracker creates a ChannelTracker over store.
func NewChannelTracker(store ChannelStore, logger *slog.Logger) *ChannelTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChannelTracker{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

// Admit compares the supplied immutable fields of ch with the record of its id
// and returns one violation per divergent field. When there are none and commit
// is set, the channel is recorded: immutable fields keep their creation values,
// everything else is last-write-wins.
func (t *ChannelTracker) Admit(ctx context.Context, ch domain.Channel, supplied []string, commit bool) (domain.ValidationErrors, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, err := t.store.Get(ctx, ch.ChannelID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load channel: %w", err)
	}

	var conflicts domain.ValidationErrors
	if existing != nil {
		for _, name := range supplied {
			recorded, requested, diverges := existing.Diverges(ch, name)
			if !diverges {
				continue
			}
			conflicts = append(conflicts, &domain.ValidationError{
				Code:     domain.CodeImmutableFieldConflict,
				Field:    name,
				Expected: recorded,
				Actual:   requested,
				Message:  fmt.Sprintf("channel %q was created with %s=%s and it cannot be changed", ch.ChannelID, name, recorded),
			})
		}
	}
	if len(conflicts) > 0 || !commit {
		return conflicts, nil
	}

	now := t.now()
	rec := domain.NewChannelRecord(ch, now)
	if existing != nil {
		rec = existing.WithDefinition(ch, now)
	}
	if err := t.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("record channel: %w", err)
	}

	t.logger.Debug("channel recorded", "channel_id", ch.ChannelID, "created", existing == nil)
	return nil, nil
}

// Lookup returns the record of a channel id.
func (t *ChannelTracker) Lookup(ctx context.Context, channelID string) (*domain.ChannelRecord, error) {
	return t.store.Get(ctx, channelID)
}

// MemoryChannelStore keeps channel records in process memory without expiry.
type MemoryChannelStore struct {
	items *cache.Cache
}

// NewMemoryChannelStore creates an empty MemoryChannelStore.
func NewMemoryChannelStore() *MemoryChannelStore {
	return &MemoryChannelStore{items: cache.New(cache.NoExpiration, 0)}
}

// Get returns the record of channelID.
func (s *MemoryChannelStore) Get(_ context.Context, channelID string) (*domain.ChannelRecord, error) {
	v, ok := s.items.Get(channelID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec, ok := v.(domain.ChannelRecord)
	if !ok {
		return nil, fmt.Errorf("channel %q: unexpected cache entry %T", channelID, v)
	}
	return &rec, nil
}

// Put stores rec under its channel id.
func (s *MemoryChannelStore) Put(_ context.Context, rec domain.ChannelRecord) error {
	s.items.Set(rec.ChannelID, rec, cache.NoExpiration)
	return nil
}

// Len reports the number of known channels.
func (s *MemoryChannelStore) Len() int {
	return s.items.ItemCount()
}
