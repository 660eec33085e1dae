package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowRecording(t *testing.T) {
	dir := seedRecordings(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Dir: dir}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"record_Widget.resize_20240102150405000003.json"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Identifier: Widget.resize")
	assert.Contains(t, output, "Success:    true")
	assert.Contains(t, output, "caller")
}

func TestShowRecordingJSON(t *testing.T) {
	dir := seedRecordings(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", Dir: dir}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"record_divide_20240102150405000002.json"})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	assert.Contains(t, string(data), "division by zero")
}

func TestShowMissingRecording(t *testing.T) {
	rootOpts := &RootOptions{Format: "text", Dir: t.TempDir()}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"record_gone_20240101000000000000.json"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
