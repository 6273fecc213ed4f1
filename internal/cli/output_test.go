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

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("E005", "manifest not found", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
	assert.Equal(t, "manifest not found", resp.Error.Message)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("Wrote fst_segmentation.fst")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Wrote fst_segmentation.fst")
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Error("E103", "rules list is required and must be non-empty", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E103]")
	assert.Contains(t, buf.String(), "rules list is required")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "json",
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   true,
	}

	formatter.VerboseLog("compiled %d rule file(s)", 3)
	assert.Empty(t, out.String(), "verbose logs must not corrupt stdout")
	assert.Contains(t, errOut.String(), "compiled 3 rule file(s)")
}

func TestOutputFormatter_VerboseLogSilentByDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	formatter.VerboseLog("should not appear")
	assert.Empty(t, buf.String())
}

func TestExitError(t *testing.T) {
	plain := NewExitError(ExitCommandError, "store not found")
	assert.Equal(t, "store not found", plain.Error())
	assert.Nil(t, plain.Unwrap())

	inner := errors.New("disk full")
	wrapped := WrapExitError(ExitCommandError, "write artifact", inner)
	assert.Equal(t, "write artifact: disk full", wrapped.Error())
	assert.Equal(t, inner, wrapped.Unwrap())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "2 pair(s) failed")))

	// Non-ExitErrors default to the failure code.
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	// Wrapped ExitErrors still surface their code.
	wrapped := fmt.Errorf("context: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}
