package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/catalogctl/internal/forms"
)

func TestFormModel_LongPrefillIsNotTruncated(t *testing.T) {
	long := strings.Repeat("x", 70)
	m := NewFormModel(forms.PortfolioSchema(true), "7", map[string]string{forms.FieldName: long})

	values := m.Values()
	assert.Equal(t, long, values[forms.FieldName])

	_, err := forms.DecodePortfolio(values)
	var verrs forms.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.NotEmpty(t, verrs.For(forms.FieldName))
}

func TestFormModel_TypingStopsAtLimit(t *testing.T) {
	m := NewFormModel(forms.PortfolioSchema(false), "", nil)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(strings.Repeat("y", 80))})

	assert.Len(t, m.Values()[forms.FieldName], 64)
}
