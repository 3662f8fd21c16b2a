package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("CONFIG_FILE", "")

	out, err := run(t, "token", "--user", "u-9", "--name", "Field Eng", "--role", "fse")
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(out), ".")), "a JWT has three parts")

	_, err = run(t, "token", "--user", "u-9", "--role", "janitor")
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PDF_TIMEOUT", "")
	dir := t.TempDir()
	in := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(in, []byte(`{
		"reportNumber": "ASC-CLI-1",
		"cinemaName": "Miraj Cinemas",
		"date": "2024-09-12",
		"opticals": [{"status": "Cleaned", "result": "OK"}]
	}`), 0o600))

	out, err := run(t, "render", "--file", in, "--renderer", "direct", "--out", dir)
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(dir, "ASCOMP_ASC-CLI-1_Miraj_Cinemas.pdf"), path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestImportDryRunCommand(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PDF_TIMEOUT", "")
	in := filepath.Join(t.TempDir(), "visits.csv")
	require.NoError(t, os.WriteFile(in, []byte("cinemaName,engineer_name,date\nGold Cinema,K. Rao,2024-04-04\n"), 0o600))

	out, err := run(t, "import", "--file", in, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": 1`)
}
