package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-widget/controller"
)

func TestSessionStore(t *testing.T) {
	created := 0
	store := NewSessionStore(func() *controller.Controller {
		created++
		return controller.New(nil, false)
	})

	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	id, ctrl := store.Create()
	require.NotEmpty(t, id)
	assert.Equal(t, 1, created)

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Same(t, ctrl, got)

	_, ok = store.Get("unknown")
	assert.False(t, ok)

	stale, _ := store.Create()
	assert.Equal(t, 2, store.Len())

	now = now.Add(20 * time.Minute)
	store.Get(id)
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, store.PruneIdle(30*time.Minute))
	_, ok = store.Get(stale)
	assert.False(t, ok)
	_, ok = store.Get(id)
	assert.True(t, ok)
}
