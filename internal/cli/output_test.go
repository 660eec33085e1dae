package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_Message(t *testing.T) {
	err := NewExitError(ExitFailure, "replay failed")
	assert.Equal(t, "replay failed", err.Error())
	assert.Equal(t, ExitFailure, err.Code)
}

func TestExitError_WrapsUnderlying(t *testing.T) {
	underlying := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to write recording", underlying)

	assert.Contains(t, err.Error(), "failed to write recording")
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, errors.Is(err, underlying))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "x")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))
}

func TestGetExitCode_WrappedExitError(t *testing.T) {
	inner := NewExitError(ExitCommandError, "store unreadable")
	wrapped := fmt.Errorf("outer context: %w", inner)
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestOutputJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, outputJSON(buf, map[string]int{"total": 3}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestOutputJSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, outputJSONError(buf, "E_VERIFY", "schema validation failed", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_VERIFY", resp.Error.Code)
	assert.Equal(t, "schema validation failed", resp.Error.Message)
}
