package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat(""))
	assert.NoError(t, validateOutputFormat("json"))
	assert.NoError(t, validateOutputFormat("yaml"))
	assert.Error(t, validateOutputFormat("xml"))
}

func TestRequireFile(t *testing.T) {
	err := requireFile("", "file")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file selected")

	err = requireFile(filepath.Join(t.TempDir(), "missing.csv"), "file")
	assert.Error(t, err)

	err = requireFile(t.TempDir(), "file")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a file")

	path := filepath.Join(t.TempDir(), "tb.csv")
	require.NoError(t, os.WriteFile(path, []byte("account,debit,credit\n"), 0o600))
	assert.NoError(t, requireFile(path, "file"))
}

func TestFluxValidateFailsBeforeAnyRequest(t *testing.T) {
	o := &FluxOptions{ThresholdPct: 10}
	err := o.Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no analytics service address")

	o.ServerURL = "http://localhost:9640"
	err = o.Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file selected")

	path := filepath.Join(t.TempDir(), "tb.csv")
	require.NoError(t, os.WriteFile(path, []byte("account,debit,credit\n"), 0o600))
	o.FilePath = path
	o.ThresholdPct = -1
	err = o.Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")

	o.ThresholdPct = 15
	assert.NoError(t, o.Validate(nil))
}
