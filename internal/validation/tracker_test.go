package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/notifyschema/internal/domain"
)

func ptr[T any](v T) *T { return &v }

type failingStore struct{ err error }

func (s failingStore) Get(context.Context, string) (*domain.ChannelRecord, error) {
	return nil, s.err
}

func (s failingStore) Put(context.Context, domain.ChannelRecord) error { return s.err }

func newClockedTracker(store ChannelStore, start time.Time) (*ChannelTracker, *time.Time) {
	now := start
	tr := NewChannelTracker(store, nil)
	tr.now = func() time.Time { return now }
	return tr, &now
}

func TestChannelTracker_Admit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryChannelStore()
	tr, now := newClockedTracker(store, created)

	first := domain.Channel{
		ChannelID:        "chat",
		Name:             "Chat",
		Importance:       ptr(domain.ImportanceHigh),
		EnableVibration:  ptr(false),
		VibrationPattern: []int64{100, 200},
	}
	conflicts, err := tr.Admit(ctx, first, []string{"importance", "enableVibration", "vibrationPattern"}, true)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	rec, err := tr.Lookup(ctx, "chat")
	require.NoError(t, err)
	assert.Equal(t, domain.ImportanceHigh, rec.Importance)
	assert.Equal(t, domain.VisibilityPrivate, rec.Visibility)
	assert.True(t, rec.EnableLights)
	assert.False(t, rec.EnableVibration)
	assert.Equal(t, []int64{100, 200}, rec.VibrationPattern)
	assert.Equal(t, created, rec.CreatedAt)

	*now = created.Add(time.Hour)
	second := domain.Channel{
		ChannelID:        "chat",
		Name:             "Chat",
		Importance:       ptr(domain.ImportanceLow),
		EnableVibration:  ptr(true),
		VibrationPattern: []int64{100, 200},
	}
	conflicts, err = tr.Admit(ctx, second, []string{"importance", "enableVibration", "vibrationPattern"}, true)
	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "importance", conflicts[0].Field)
	assert.Equal(t, "4", conflicts[0].Expected)
	assert.Equal(t, "2", conflicts[0].Actual)
	assert.Equal(t, "enableVibration", conflicts[1].Field)
	assert.Equal(t, "false", conflicts[1].Expected)
	assert.Equal(t, "true", conflicts[1].Actual)

	rec, err = tr.Lookup(ctx, "chat")
	require.NoError(t, err)
	assert.Equal(t, created, rec.UpdatedAt, "rejected definitions are not recorded")

	renamed := domain.Channel{ChannelID: "chat", Name: "Messages", Importance: ptr(domain.ImportanceDefault)}
	conflicts, err = tr.Admit(ctx, renamed, nil, true)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	rec, err = tr.Lookup(ctx, "chat")
	require.NoError(t, err)
	assert.Equal(t, domain.ImportanceHigh, rec.Importance, "immutable fields keep creation values")
	assert.Equal(t, "Messages", rec.Definition.Name)
	assert.Equal(t, created, rec.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), rec.UpdatedAt)
}

func TestChannelTracker_AdmitWithoutCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryChannelStore()
	tr := NewChannelTracker(store, nil)

	conflicts, err := tr.Admit(ctx, domain.Channel{ChannelID: "x", Name: "X"}, nil, false)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, 0, store.Len())

	_, err = tr.Lookup(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChannelTracker_StoreFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	tr := NewChannelTracker(failingStore{err: boom}, nil)

	_, err := tr.Admit(context.Background(), domain.Channel{ChannelID: "x"}, nil, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	_, isViolation := domain.Violations(err)
	assert.False(t, isViolation)
}

func TestChannelTracker_StoreFailureSurfacesFromValidate(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	v := newTestValidator(WithChannelTracker(NewChannelTracker(failingStore{err: boom}, nil)))

	_, err := v.ValidateChannel(context.Background(), map[string]any{"channelId": "x", "name": "X"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestMemoryChannelStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryChannelStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rec := domain.NewChannelRecord(domain.Channel{ChannelID: "a", Name: "A"}, time.Now())
	require.NoError(t, store.Put(ctx, rec))
	require.NoError(t, store.Put(ctx, rec))
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Definition.Name)

	got.Definition.Name = "changed"
	again, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", again.Definition.Name, "callers get a copy")
}
