package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/envcheck"
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basic = "../../examples/basic"

// execute runs the root command. Flags keep their values between runs,
// so every call spells out the ones it depends on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// check runs the check command with every boolean flag reset.
func check(t *testing.T, dir string, flags ...string) (string, error) {
	t.Helper()
	args := []string{"check", "--dir", dir, "--no-fail=false", "--json=false", "--fix=false", "--watch=false"}
	return execute(t, append(args, flags...)...)
}

// missingWorkspace declares a required DATABASE_URL and sets only OTHER.
func missingWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "env.schema.yml"),
		[]byte("variables:\n  database_url:\n    type: string\n    description: Postgres DSN\n    required: true\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OTHER=1"), 0o644))
	return dir
}

func TestCheckCommand_OK(t *testing.T) {
	out, err := check(t, basic)
	require.NoError(t, err)
	assert.Contains(t, out, "unused LEGACY_FLAG")
	assert.Contains(t, out, "all required variables are set")
}

func TestCheckCommand_Missing(t *testing.T) {
	dir := missingWorkspace(t)

	out, err := check(t, dir)
	assert.ErrorIs(t, err, errMissing)
	assert.Contains(t, out, "missing DATABASE_URL")
}

func TestCheckCommand_NoFail(t *testing.T) {
	dir := missingWorkspace(t)

	out, err := check(t, dir, "--no-fail")
	require.NoError(t, err)
	assert.Contains(t, out, "1 required variable(s) missing")
}

func TestCheckCommand_JSON(t *testing.T) {
	out, err := check(t, missingWorkspace(t), "--json", "--no-fail")
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Missing, 1)
	assert.Equal(t, "DATABASE_URL", report.Missing[0].Name)
	require.Len(t, report.Unused, 1)
	assert.Equal(t, "OTHER", report.Unused[0].Name)
}

func TestCheckCommand_Fix(t *testing.T) {
	dir := missingWorkspace(t)

	out, err := check(t, dir, "--fix")
	require.NoError(t, err)
	assert.Contains(t, out, "added 1 variable(s) to "+filepath.Join(dir, ".env"))

	content, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "OTHER=1\n# Other\n# Postgres DSN\nDATABASE_URL=\n", string(content))

	// The appended entry counts as present.
	_, err = check(t, dir)
	require.NoError(t, err)

	out, err = check(t, dir, "--fix")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to add")
}

func TestExampleCommand_Stdout(t *testing.T) {
	out, err := execute(t, "example", "--dir", "../../examples/python", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "# Postgres connection string\nDATABASE_URL=\n")
	assert.Contains(t, out, "#WORKERS=4\n")
}

func TestExampleCommand_NoOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.example"), []byte("KEEP=1\n"), 0o644))

	_, err := execute(t, "example", "--dir", dir, "-o", ".env.example", "--force=false")
	assert.ErrorContains(t, err, "already exists")

	content, err := os.ReadFile(filepath.Join(dir, ".env.example"))
	require.NoError(t, err)
	assert.Equal(t, "KEEP=1\n", string(content))
}

func TestDescribeCommand(t *testing.T) {
	out, err := execute(t, "describe", "--dir", basic, "apiUrl")
	require.NoError(t, err)
	assert.Contains(t, out, "### apiUrl")
	assert.Contains(t, out, "**Type:** `string`")
	assert.Contains(t, out, "API endpoint URL")

	_, err = execute(t, "describe", "--dir", basic, "NOPE")
	assert.True(t, errors.Is(err, domain.ErrVariableNotFound), "err = %v", err)
}

func TestListCommand_JSON(t *testing.T) {
	out, err := execute(t, "list", "--dir", basic, "--json")
	require.NoError(t, err)

	var vars []domain.Variable
	require.NoError(t, json.Unmarshal([]byte(out), &vars))
	require.Len(t, vars, 3)

	byName := map[string]domain.Variable{}
	for _, v := range vars {
		byName[v.Name] = v
	}
	assert.Equal(t, domain.TypeString, byName["apiUrl"].Type)
	assert.True(t, byName["apiUrl"].Required())
	assert.Equal(t, "API", byName["apiUrl"].Group)
	assert.Equal(t, domain.TypeNumber, byName["port"].Type)
	assert.Equal(t, "3000", byName["port"].Default)
	assert.Equal(t, "build-time", byName["debug"].EnvType)
}

func TestListCommand_Table(t *testing.T) {
	out, err := execute(t, "list", "--dir", basic, "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "API\n")
	assert.Contains(t, out, "Settings\n")
	assert.Regexp(t, `apiUrl\s+string\s+required\s+API endpoint URL`, out)
	assert.Regexp(t, `debug\s+boolean\s+optional`, out)
}

func TestGraphCommand_Check(t *testing.T) {
	out, err := execute(t, "graph", "--dir", missingWorkspace(t), "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD\n")
	assert.Contains(t, out, "classDef missing")
	assert.Contains(t, out, "class DATABASE_URL missing;")

	out, err = execute(t, "graph", "--dir", basic, "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "class apiUrl present;")
	assert.NotContains(t, out, "missing;")
}

func TestGraphCommand_WithoutReport(t *testing.T) {
	out, err := execute(t, "graph", "--dir", basic, "--check=false")
	require.NoError(t, err)
	assert.Contains(t, out, "subgraph")
	assert.NotContains(t, out, "classDef")
}

func TestMCPCommand_UnknownTransport(t *testing.T) {
	_, err := execute(t, "mcp", "--dir", basic, "--transport", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown transport: carrier-pigeon")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "envcheck version "+envcheck.Version+"\n", out)
}
