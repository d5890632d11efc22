package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_APIVersionTag(t *testing.T) {
	v, err := newValidator()
	require.NoError(t, err)

	type versioned struct {
		Version string `validate:"apiversion"`
	}
	assert.NoError(t, v.Struct(versioned{Version: "1.2"}))
	assert.Error(t, v.Struct(versioned{Version: "one"}))
}
