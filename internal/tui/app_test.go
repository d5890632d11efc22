package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/catalogctl/internal/api"
)

func newTestApp(t *testing.T, initial string) (AppModel, *fakeCollection, *fakeCollection) {
	t.Helper()
	portfolios := &fakeCollection{count: 2}
	workflows := &fakeCollection{count: 4}
	opts := Options{Limit: 10}
	screens := []*ListModel{
		NewListModel(context.Background(), Resource{Name: "portfolios", Title: "Portfolios", Fetcher: portfolios}, opts),
		NewListModel(context.Background(), Resource{Name: "workflows", Title: "Approval processes", Fetcher: workflows}, opts),
	}
	app, err := NewAppModel(context.Background(), screens, initial)
	require.NoError(t, err)
	return app, portfolios, workflows
}

// drive feeds the messages produced by cmd back into the app.
func drive(app AppModel, cmd tea.Cmd) AppModel {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(fetchResultMsg); ok {
			next, follow := app.Update(msg)
			app = drive(next.(AppModel), follow)
		}
	}
	return app
}

func TestAppModel_LazyScreens(t *testing.T) {
	app, portfolios, workflows := newTestApp(t, "")
	app = drive(app, app.Init())

	assert.Equal(t, 1, portfolios.callCount())
	assert.Equal(t, 0, workflows.callCount())
	assert.Contains(t, app.View(), "Portfolios")

	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = drive(next.(AppModel), cmd)
	assert.Equal(t, "workflows", app.Active().Name())
	assert.Equal(t, 1, workflows.callCount())

	next, cmd = app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app = next.(AppModel)
	assert.Nil(t, cmd, "already loaded screens are not re-fetched")
	assert.Equal(t, "portfolios", app.Active().Name())
}

func TestAppModel_RoutesResultsToOwningScreen(t *testing.T) {
	app, _, _ := newTestApp(t, "workflows")
	app = drive(app, app.Init())

	wf := app.Active()
	require.Len(t, wf.Items(), 4)

	// A result addressed to the inactive portfolios screen must not touch workflows.
	next, _ := app.Update(fetchResultMsg{screen: "portfolios", requestID: 99, result: api.ListResult{}})
	app = next.(AppModel)
	assert.Len(t, app.Active().Items(), 4)
}

func TestNewAppModel_Errors(t *testing.T) {
	_, err := NewAppModel(context.Background(), nil, "")
	assert.Error(t, err)

	_, err = NewAppModel(context.Background(), []*ListModel{
		NewListModel(context.Background(), Resource{Name: "portfolios", Title: "Portfolios"}, Options{}),
	}, "bogus")
	assert.Error(t, err)
}
