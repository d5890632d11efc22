package detail

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/catalogctl/internal/api"
)

func TestFields_RelativeAge(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	item := api.NewItem("id", "1", "created_at", "2024-03-07T12:00:00Z", "name", "ops")

	fields := Fields(item, now)
	require.Len(t, fields, 3)
	assert.Equal(t, "created_at", fields[1].Key)
	assert.Equal(t, "3 days ago", fields[1].Age)
	assert.Empty(t, fields[2].Age)
}

func TestModel_LazyLoad(t *testing.T) {
	calls := 0
	loader := func(_ context.Context, id string) (api.Item, error) {
		calls++
		return api.NewItem("id", id, "name", "ops", "description", "full"), nil
	}

	m := New(context.Background(), api.NewItem("id", "7", "name", "ops"), loader, 10, 80)
	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.True(t, m.Loading())
	assert.Len(t, m.Fields(), 2, "row data shown while loading")

	m.Update(cmd())
	assert.False(t, m.Loading())
	assert.Equal(t, 1, calls)
	assert.Len(t, m.Fields(), 3)
	assert.Contains(t, m.View(), "full")
}

func TestModel_LoadErrorAndRetry(t *testing.T) {
	fail := true
	loader := func(_ context.Context, id string) (api.Item, error) {
		if fail {
			return api.Item{}, errors.New("unavailable")
		}
		return api.NewItem("id", id, "name", "loaded"), nil
	}

	m := New(context.Background(), api.NewItem("id", "7", "name", "row"), loader, 10, 80)
	m.Update(m.Init()())
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "Press 'r' to retry")
	assert.Contains(t, m.View(), "row")

	fail = false
	retry := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, retry)
	m.Update(retry())
	assert.NoError(t, m.Err())
	assert.Equal(t, "loaded", m.Fields()[1].Value)
}

func TestModel_IgnoresOtherRecords(t *testing.T) {
	m := New(context.Background(), api.NewItem("id", "7"), nil, 10, 80)
	assert.Nil(t, m.Init())

	m.Update(LoadedMsg{ID: "8", Item: api.NewItem("id", "8", "x", "y")})
	assert.Len(t, m.Fields(), 1)
}

func TestModel_Scrolling(t *testing.T) {
	kv := make([]interface{}, 0, 40)
	for i := 0; i < 20; i++ {
		kv = append(kv, string(rune('a'+i)), i)
	}
	m := New(context.Background(), api.NewItem(kv...), nil, 5, 80)

	assert.Equal(t, 0, m.VisibleFrom())
	assert.Equal(t, 5, m.VisibleTo())

	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 19, m.Selected())
	assert.Equal(t, 15, m.VisibleFrom())
	assert.Equal(t, 20, m.VisibleTo())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 18, m.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.Selected())
	assert.Equal(t, 0, m.VisibleFrom())
}
