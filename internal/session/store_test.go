package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-dashboard/pkg/metrics"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	s := New()
	s.SetEmail("admin@hopital.fr")
	s.Resize(600)
	require.NoError(t, s.Put("gate/patient", map[string]int{"id": 2}))
	require.NoError(t, store.Save(ctx, s))
	assert.False(t, s.Dirty())

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@hopital.fr", got.Email)
	assert.True(t, got.Layout.Mobile)
	assert.False(t, got.Dirty())

	got.SetEmail("other@hopital.fr")
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@hopital.fr", again.Email, "stored copy is isolated from callers")

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// exerciseOverlap loads the same session twice, the way two requests in
// flight do, and saves both copies.
func exerciseOverlap(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	s := New()
	require.NoError(t, s.Put("gate/patient", map[string]int{"id": 2}))
	require.NoError(t, s.Put("collection/patient", []int{1, 2, 3}))
	require.NoError(t, store.Save(ctx, s))

	confirm, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	viewport, err := store.Get(ctx, s.ID)
	require.NoError(t, err)

	confirm.Delete("gate/patient")
	require.NoError(t, confirm.Put("collection/patient", []int{1, 3}))
	require.NoError(t, confirm.Put("collection/patient", []int{1, 3}))
	require.NoError(t, store.Save(ctx, confirm))

	viewport.Resize(600)
	// rewriting the value it loaded is not a change
	require.NoError(t, viewport.Put("gate/patient", map[string]int{"id": 2}))
	assert.Len(t, viewport.changed, 1)
	require.NoError(t, store.Save(ctx, viewport))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.Layout.Mobile)
	found, err := got.Get("gate/patient", &map[string]int{})
	require.NoError(t, err)
	assert.False(t, found, "the closed gate stays closed")
	var ids []int
	_, err = got.Get("collection/patient", &ids)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids, "the removal is kept")

	// a reset replaces the record
	viewport.Reset()
	require.NoError(t, store.Save(ctx, viewport))
	got, err = store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Data)
	assert.True(t, got.Layout.Mobile)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, Instrument("memory", NewMemoryStore(time.Hour), metrics.NewNop()))
}

func TestMemoryStoreOverlappingSaves(t *testing.T) {
	exerciseOverlap(t, NewMemoryStore(time.Hour))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestRedisStoreOverlappingSaves(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseOverlap(t, store)
}

func TestRedisStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s := New()
	require.NoError(t, store.Save(context.Background(), s))
	assert.True(t, mr.Exists(keyPrefix+s.ID))

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "not-a-url", time.Minute)
	assert.Error(t, err)
}
