package forms

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/catalogctl/internal/api"
)

func TestDecodePortfolio(t *testing.T) {
	in, err := DecodePortfolio(Values{"name": "  Ops  ", "description": "team portfolio"})
	require.NoError(t, err)
	assert.Equal(t, api.PortfolioInput{Name: "Ops", Description: "team portfolio"}, in)
}

func TestDecodePortfolio_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		values    Values
		wantField string
		wantMsg   string
	}{
		{name: "missing name", values: Values{"description": "x"}, wantField: FieldName, wantMsg: "is required"},
		{name: "blank name", values: Values{"name": "   "}, wantField: FieldName, wantMsg: "is required"},
		{
			name:      "name too long",
			values:    Values{"name": strings.Repeat("a", 65)},
			wantField: FieldName,
			wantMsg:   "must be at most 64 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePortfolio(tt.values)
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantMsg, verrs.For(tt.wantField))
		})
	}
}

func TestDecodeWorkflow_GroupRefs(t *testing.T) {
	tests := []struct {
		name   string
		values Values
		want   []api.GroupRef
	}{
		{
			name:   "no groups",
			values: Values{"name": "wf"},
			want:   []api.GroupRef{},
		},
		{
			name:   "blank text",
			values: Values{"name": "wf", "group_refs": " "},
			want:   []api.GroupRef{},
		},
		{
			name:   "comma separated text",
			values: Values{"name": "wf", "group_refs": "Ops=u-1, Finance=u-2,"},
			want:   []api.GroupRef{{Name: "Ops", UUID: "u-1"}, {Name: "Finance", UUID: "u-2"}},
		},
		{
			name: "selected options",
			values: Values{"name": "wf", "group_refs": []map[string]interface{}{
				{"label": "Ops", "value": "u-1"},
			}},
			want: []api.GroupRef{{Name: "Ops", UUID: "u-1"}},
		},
		{
			name:   "list of pairs",
			values: Values{"name": "wf", "group_refs": []string{"Ops=u-1"}},
			want:   []api.GroupRef{{Name: "Ops", UUID: "u-1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := DecodeWorkflow(tt.values)
			require.NoError(t, err)
			assert.Equal(t, "wf", in.Name)
			assert.Equal(t, tt.want, in.GroupRefs)
			assert.NotNil(t, in.GroupRefs)
		})
	}
}

func TestDecodeWorkflow_BadGroup(t *testing.T) {
	_, err := DecodeWorkflow(Values{"name": "wf", "group_refs": "Ops"})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.For(FieldGroupRefs), "name=uuid")
}

func TestDecodeWorkflow_IncompleteOption(t *testing.T) {
	_, err := DecodeWorkflow(Values{"name": "wf", "group_refs": []map[string]interface{}{{"label": "Ops"}}})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "contains an incomplete entry", verrs.For(FieldGroupRefs))
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := DecodePortfolio(Values{"name": "x", "color": "red"})
	require.Error(t, err)

	var verrs ValidationErrors
	assert.False(t, errors.As(err, &verrs))
}

func TestGroupRefs_Empty(t *testing.T) {
	refs := GroupRefs(nil)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
}

func TestValidationErrors(t *testing.T) {
	verrs := ValidationErrors{
		{Field: "name", Message: "is required"},
		{Field: "description", Message: "must be at most 1024 characters"},
		{Field: "name", Message: "second"},
	}

	assert.Equal(t, "is required", verrs.For("name"))
	assert.Equal(t, "", verrs.For("missing"))
	assert.Equal(t, []string{"description", "name"}, verrs.Fields())
	assert.Equal(t, "is required", verrs.Map()["name"])
	assert.Contains(t, verrs.Error(), "name is required")
}

func TestSchemas(t *testing.T) {
	assert.Equal(t, []string{FieldName, FieldDescription}, PortfolioSchema(false).Names())
	assert.Equal(t, "Edit portfolio", PortfolioSchema(true).Title)
	assert.Equal(t, []string{FieldName, FieldDescription, FieldGroupRefs}, WorkflowSchema(false).Names())
	assert.Equal(t, "Add approval process", WorkflowSchema(false).Title)
}

func TestFormatGroups_RoundTrip(t *testing.T) {
	refs := []api.GroupRef{{Name: "Ops", UUID: "u-1"}, {Name: "Finance", UUID: "u-2"}}
	text := FormatGroups(refs)
	assert.Equal(t, "Ops=u-1,Finance=u-2", text)

	in, err := DecodeWorkflow(Values{"name": "wf", "group_refs": text})
	require.NoError(t, err)
	assert.Equal(t, refs, in.GroupRefs)
}
