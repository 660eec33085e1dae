package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calltape.yaml")
	content := `recordings_dir: ./captures
index_path: ./captures/index.db
module: github.com/example/calc
module_root: .
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "./captures", cfg.RecordingsDir)
	assert.Equal(t, "./captures/index.db", cfg.IndexPath)
	assert.Equal(t, "github.com/example/calc", cfg.Module)
	assert.Equal(t, ".", cfg.ModuleRoot)
}

func TestLoadConfig_ExplicitMissingFileFails(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_DefaultMissingFileIsZero(t *testing.T) {
	// Run from a directory with no calltape.yaml
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calltape.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recordings_dir: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calltape.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recordings_dir: ./captures\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "./captures", cfg.RecordingsDir)
	assert.Empty(t, cfg.Module)
}
