package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": newSQLiteStore(t),
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(42, "tr", now)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, StepStatus, s.Step)
	assert.Equal(t, now, s.UpdatedAt)
	assert.NotEqual(t, s.ID, New(42, "tr", now).ID)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "status", StepStatus.String())
	assert.Equal(t, "birth_date", StepBirthDate.String())
	assert.Equal(t, "done", StepDone.String())
	assert.Equal(t, "unknown", Step(99).String())
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, 7)
			assert.ErrorIs(t, err, ErrNotFound)

			s := New(7, "en", now)
			s.Step = StepEntryDate
			s.Status = domain.Status4B
			s.Gender = domain.GenderFemale
			s.BirthDate = "01.01.1970"
			require.NoError(t, store.Put(ctx, s))

			got, err := store.Get(ctx, 7)
			require.NoError(t, err)
			assert.Equal(t, s.ID, got.ID)
			assert.Equal(t, "en", got.Language)
			assert.Equal(t, StepEntryDate, got.Step)
			assert.Equal(t, domain.Status4B, got.Status)
			assert.Equal(t, domain.GenderFemale, got.Gender)
			assert.Equal(t, "01.01.1970", got.BirthDate)
			assert.Empty(t, got.EntryDate)
			assert.True(t, now.Equal(got.UpdatedAt))

			s.Step = StepDays
			s.EntryDate = "01.02.1995"
			require.NoError(t, store.Put(ctx, s))
			got, err = store.Get(ctx, 7)
			require.NoError(t, err)
			assert.Equal(t, StepDays, got.Step)
			assert.Equal(t, "01.02.1995", got.EntryDate)

			require.NoError(t, store.Delete(ctx, 7))
			_, err = store.Get(ctx, 7)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.NoError(t, store.Delete(ctx, 7), "deleting a missing session is not an error")
		})
	}
}

func TestStore_PurgeIdle(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, New(1, "tr", base.Add(-time.Hour))))
			require.NoError(t, store.Put(ctx, New(2, "tr", base.Add(-10*time.Minute))))
			require.NoError(t, store.Put(ctx, New(3, "tr", base)))

			n, err := store.PurgeIdle(ctx, base.Add(-30*time.Minute))
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			_, err = store.Get(ctx, 1)
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = store.Get(ctx, 2)
			assert.NoError(t, err)

			n, err = store.PurgeIdle(ctx, base.Add(time.Second))
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, New(9, "tr", time.Now())))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.Get(ctx, 9)
	assert.NoError(t, err)
}

func TestMemoryStore_Len(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, New(1, "tr", time.Now())))
	require.NoError(t, store.Put(ctx, New(1, "tr", time.Now())))
	require.NoError(t, store.Put(ctx, New(2, "tr", time.Now())))
	assert.Equal(t, 2, store.Len())
}
