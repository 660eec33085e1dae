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

func TestVerifyValidRecordings(t *testing.T) {
	dir := seedRecordings(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Dir: dir}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Verified 4 recording(s)")
	assert.Contains(t, output, "All recordings valid.")
}

func TestVerifyValidRecordingsJSON(t *testing.T) {
	dir := seedRecordings(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", Dir: dir}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestVerifyInvalidRecording(t *testing.T) {
	dir := seedRecordings(t)

	// A recording missing its function_name fails schema validation.
	bad := `{
		"metadata": {"record_id": "x", "caller_file": "f", "caller_name": "c"},
		"arguments": {"args": [], "kwargs": {}},
		"success": true,
		"result": null
	}`
	badPath := filepath.Join(dir, "record_bad_20240101000000000000.json")
	require.NoError(t, os.WriteFile(badPath, []byte(bad), 0o644))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Dir: dir}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "invalid record_bad_20240101000000000000.json")
	assert.Contains(t, output, "1 recording(s) failed validation")
}

func TestVerifyInvalidRecordingJSON(t *testing.T) {
	dir := seedRecordings(t)
	bad := `{"not": "a recording"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "record_bad_20240101000000000000.json"), []byte(bad), 0o644))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", Dir: dir}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_VERIFY", resp.Error.Code)
}

func TestVerifyEmptyDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Dir: t.TempDir()}
	cmd := NewVerifyCommand(rootOpts)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Verified 0 recording(s)")
}
