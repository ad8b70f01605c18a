package collection

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-dashboard/internal/model"
)

type listerFunc[T any] func(ctx context.Context) ([]T, error)

func (f listerFunc[T]) List(ctx context.Context) ([]T, error) { return f(ctx) }

func TestLoadReplacesContents(t *testing.T) {
	c := New(model.Batiment{ID: 99})
	calls := 0
	src := listerFunc[model.Batiment](func(ctx context.Context) ([]model.Batiment, error) {
		calls++
		return []model.Batiment{{ID: 1, Nom: "A"}, {ID: 2, Nom: "B"}}, nil
	})

	require.NoError(t, c.Load(context.Background(), src, zerolog.Nop()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, c.Len())
	_, ok := c.Find(99)
	assert.False(t, ok)
}

func TestLoadFailureLeavesEmpty(t *testing.T) {
	c := New(model.Batiment{ID: 1})
	calls := 0
	boom := errors.New("connection refused")
	src := listerFunc[model.Batiment](func(ctx context.Context) ([]model.Batiment, error) {
		calls++
		return nil, boom
	})

	err := c.Load(context.Background(), src, zerolog.Nop())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Zero(t, c.Len())
}

func TestRemoveKeepsOrder(t *testing.T) {
	c := New(
		model.Patient{ID: 1, Nom: "A"},
		model.Patient{ID: 2, Nom: "B"},
		model.Patient{ID: 3, Nom: "C"},
		model.Patient{ID: 4, Nom: "D"},
	)
	before := c.Items()

	assert.True(t, c.Remove(3))
	assert.Equal(t, []int64{1, 2, 4}, ids(c.Items()))
	assert.Equal(t, int64(3), before[2].ID, "previous snapshot is not mutated")

	assert.False(t, c.Remove(42))
	assert.Equal(t, 3, c.Len())
}

func TestJSONRoundTrip(t *testing.T) {
	c := New(model.Service{ID: 1, Nom: "Urgences"}, model.Service{ID: 2, Nom: "Radio"})
	b, err := json.Marshal(c)
	require.NoError(t, err)

	var back Collection[model.Service]
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, c.Items(), back.Items())

	empty, err := json.Marshal(New[model.Service]())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func ids[T Identified](items []T) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.GetID())
	}
	return out
}
