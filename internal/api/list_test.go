package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_Query(t *testing.T) {
	tests := []struct {
		name   string
		col    Collection
		filter string
		page   Page
		want   map[string]string
	}{
		{
			name:   "catalog style",
			col:    Collection{Style: CatalogStyle},
			filter: "web",
			page:   Page{Limit: 50, Offset: 100},
			want: map[string]string{
				ParamNameContains: "web",
				ParamLimit:        "50",
				ParamOffset:       "100",
			},
		},
		{
			name:   "approval style",
			col:    Collection{Style: ApprovalStyle},
			filter: "ops",
			page:   Page{Limit: 20, Offset: 40},
			want: map[string]string{
				ParamName:     "ops",
				ParamPageSize: "20",
				ParamPage:     "3",
			},
		},
		{
			name: "approval style enforces minimum page size",
			col:  Collection{Style: ApprovalStyle},
			page: Page{Limit: 5, Offset: 0},
			want: map[string]string{
				ParamName:     "",
				ParamPageSize: "10",
				ParamPage:     "1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.col.Query(tt.filter, tt.page)
			assert.Len(t, q, len(tt.want))
			for k, v := range tt.want {
				assert.Equal(t, v, q.Get(k), k)
			}
		})
	}
}

func TestCollection_QueryFixedParams(t *testing.T) {
	c := &Client{inventoryBase: "http://inv/v1.0"}
	col := c.PlatformItemsCollection("12")

	q := col.Query("db", Page{Limit: 10})
	_, present := q[ParamArchivedNil]
	assert.True(t, present)
	assert.Equal(t, "", q.Get(ParamArchivedNil))
	assert.Equal(t, "db", q.Get(ParamNameContains))
	assert.Equal(t, "http://inv/v1.0/sources/12/service_offerings", col.URL)
}

func TestDecodeList(t *testing.T) {
	t.Run("envelope", func(t *testing.T) {
		res, err := decodeList([]byte(`{"data":[{"id":"1"},{"id":"2"}],"meta":{"count":123,"limit":50,"offset":50}}`),
			Page{Limit: 50, Offset: 50})
		require.NoError(t, err)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, Meta{Count: 123, Limit: 50, Offset: 50}, res.Meta)
	})

	t.Run("bare array", func(t *testing.T) {
		res, err := decodeList([]byte(` [{"id":"1"}]`), Page{Limit: 10, Offset: 20})
		require.NoError(t, err)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, Meta{Count: 21, Limit: 10, Offset: 20}, res.Meta)
	})

	t.Run("bare array full page leaves next page reachable", func(t *testing.T) {
		res, err := decodeList([]byte(`[{"id":"1"},{"id":"2"}]`), Page{Limit: 2, Offset: 0})
		require.NoError(t, err)
		assert.Equal(t, Meta{Count: 3, Limit: 2, Offset: 0}, res.Meta)
		assert.Greater(t, res.Meta.Count, res.Meta.Offset+res.Meta.Limit, "a further page exists")
	})

	t.Run("envelope without meta", func(t *testing.T) {
		res, err := decodeList([]byte(`{"data":[{"id":"1"}]}`), Page{Limit: 10, Offset: 30})
		require.NoError(t, err)
		assert.Equal(t, Meta{Count: 31, Limit: 10, Offset: 30}, res.Meta)
	})

	t.Run("missing limit filled from request", func(t *testing.T) {
		res, err := decodeList([]byte(`{"data":[],"meta":{"count":0}}`), Page{Limit: 25})
		require.NoError(t, err)
		assert.NotNil(t, res.Items)
		assert.Equal(t, 25, res.Meta.Limit)
	})

	t.Run("invalid body", func(t *testing.T) {
		_, err := decodeList([]byte(`<html>`), Page{Limit: 10})
		assert.Error(t, err)
	})
}
