package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexRebuild(t *testing.T) {
	dir := seedRecordings(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Dir: dir}
	cmd := NewIndexCommand(rootOpts)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Catalog rebuilt")
	assert.Contains(t, output, "4 (3 ok, 1 failed)")
	assert.Contains(t, output, "Identifiers: 3")

	// Default catalog location is inside the recordings directory
	_, err := os.Stat(filepath.Join(dir, "index.db"))
	assert.NoError(t, err)
}

func TestIndexExplicitPath(t *testing.T) {
	dir := seedRecordings(t)
	indexPath := filepath.Join(t.TempDir(), "catalog.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Dir: dir}
	cmd := NewIndexCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--index-path", indexPath})

	require.NoError(t, cmd.Execute())

	_, err := os.Stat(indexPath)
	assert.NoError(t, err)
}

func TestIndexListIdentifier(t *testing.T) {
	dir := seedRecordings(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Dir: dir}
	cmd := NewIndexCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--ident", "add"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "record_add_20240102150405000000.json")
	assert.Contains(t, output, "record_add_20240102150405000001.json")
	assert.NotContains(t, output, "divide")
}

func TestIndexJSON(t *testing.T) {
	dir := seedRecordings(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", Dir: dir}
	cmd := NewIndexCommand(rootOpts)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result IndexResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 4, result.Stats.Total)
	assert.Equal(t, 3, result.Stats.Succeeded)
	assert.Equal(t, 1, result.Stats.Failed)
}

func TestIndexPathFromConfig(t *testing.T) {
	dir := seedRecordings(t)
	indexPath := filepath.Join(t.TempDir(), "from_config.db")

	rootOpts := &RootOptions{
		Format: "text",
		Dir:    dir,
		Config: Config{IndexPath: indexPath},
	}
	cmd := NewIndexCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())

	_, err := os.Stat(indexPath)
	assert.NoError(t, err)
}
