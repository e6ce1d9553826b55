package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Model
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestMemoryCreateAssignsIdentity(t *testing.T) {
	repo := NewMemory[note]()
	ctx := context.Background()

	n := &note{Title: "first"}
	require.NoError(t, repo.Create(ctx, n))
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)

	got, err := repo.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
}

func TestMemoryListOrder(t *testing.T) {
	repo := NewMemory[note]()
	repo.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &note{Title: title}))
	}

	newest, err := repo.List(ctx, NewestFirst)
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, "c", newest[0].Title)
	assert.Equal(t, "a", newest[2].Title)

	oldest, err := repo.List(ctx, OldestFirst)
	require.NoError(t, err)
	assert.Equal(t, "a", oldest[0].Title)

	first, err := repo.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", first.Title)
}

func TestMemoryReturnsCopies(t *testing.T) {
	repo := NewMemory[note]()
	ctx := context.Background()

	n := &note{Title: "x", Tags: []string{"one"}}
	require.NoError(t, repo.Create(ctx, n))

	got, err := repo.Get(ctx, n.ID)
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := repo.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, again.Tags)
}

func TestMemorySaveKeepsCreatedAt(t *testing.T) {
	repo := NewMemory[note]()
	repo.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	n := &note{Title: "x"}
	require.NoError(t, repo.Create(ctx, n))
	created := n.CreatedAt

	n.Title = "y"
	n.CreatedAt = time.Time{}
	require.NoError(t, repo.Save(ctx, n))
	assert.Equal(t, created, n.CreatedAt)
	assert.True(t, n.UpdatedAt.After(created))

	missing := &note{Model: Model{ID: "nope"}}
	assert.ErrorIs(t, repo.Save(ctx, missing), ErrNotFound)
}

func TestMemoryDeleteAndCount(t *testing.T) {
	repo := NewMemory[note]()
	ctx := context.Background()

	n := &note{Title: "x"}
	require.NoError(t, repo.Create(ctx, n))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.Delete(ctx, n.ID))
	assert.ErrorIs(t, repo.Delete(ctx, n.ID), ErrNotFound)

	_, err = repo.Get(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.First(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
