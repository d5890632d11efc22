package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/catalogctl/internal/config"
)

func TestConfigInit_Global(t *testing.T) {
	setupCLITest(t)

	out, err := runCLI(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	path := filepath.Join(os.Getenv(config.EnvHome), "config.yaml")
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	_, err = runCLI(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = runCLI(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_Project(t *testing.T) {
	setupCLITest(t)
	projectDir := filepath.Join(t.TempDir(), ".catalogctl")
	t.Setenv(config.EnvProjectDir, projectDir)
	t.Setenv(config.EnvToken, "secret")

	out, err := runCLI(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at")
	assert.Contains(t, out, "Created .gitignore")

	data, err := os.ReadFile(filepath.Join(projectDir, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.FileExists(t, filepath.Join(projectDir, ".gitignore"))
}

func TestConfigSetGetList(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "config", "set", "output.default_format", "json")
	require.NoError(t, err)
	_, err = runCLI(t, "config", "set", "pagination.default_limit", "25")
	require.NoError(t, err)

	out, err := runCLI(t, "config", "get", "output.default_format")
	require.NoError(t, err)
	assert.Equal(t, "json\n", out)

	out, err = runCLI(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "pagination.default_limit=25\n")
	assert.Contains(t, out, "api.catalog.version=1.0\n")
}

func TestConfigSet_RejectsInvalidValue(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "config", "set", "output.default_format", "xml")
	require.Error(t, err)

	_, err = runCLI(t, "config", "set", "api.catalog.version", "latest")
	require.Error(t, err)

	_, err = runCLI(t, "config", "set", "nope.key", "1")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, statErr := os.Stat(filepath.Join(os.Getenv(config.EnvHome), "config.yaml"))
	assert.True(t, os.IsNotExist(statErr), "nothing should be saved")
}

func TestConfigSet_TokenIsMasked(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "config", "set", "api.token", "s3cr3t")
	require.NoError(t, err)

	out, err := runCLI(t, "config", "get", "api.token")
	require.NoError(t, err)
	assert.Equal(t, "********\n", out)
}

func TestConfigSet_TokenRefusedInProject(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvProjectDir, t.TempDir())

	_, err := runCLI(t, "config", "set", "api.token", "s3cr3t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOGCTL_TOKEN")
}

func TestConfigValidate(t *testing.T) {
	setupCLITest(t)

	out, err := runCLI(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Catalog API: http://localhost:8080/api/catalog/v1.0")

	bad := "output:\n  default_format: xml\n"
	path := filepath.Join(os.Getenv(config.EnvHome), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o600))

	_, err = runCLI(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestConsole_RequiresTerminal(t *testing.T) {
	setupCLITest(t)
	if isTTY() {
		t.Skip("test output is a terminal")
	}

	_, err := runCLI(t, "console")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
