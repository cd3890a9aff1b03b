package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examples = "../../examples"

// run executes the root command in process and captures its output.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// catalogConfig writes a config file that points at the example catalog.
func catalogConfig(t *testing.T) string {
	t.Helper()
	catalog, err := filepath.Abs(filepath.Join(examples, "types.hcl"))
	require.NoError(t, err)
	return writeFile(t, t.TempDir(), "mwe2.yaml", "catalog: "+catalog+"\n")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	for _, want := range []string{"mwe2 version:", "Git commit:", "Build date:", "Go version:"} {
		assert.Contains(t, stdout, want)
	}
}

func TestParseCommand(t *testing.T) {
	path := filepath.Join(examples, "Generate.mwe2")

	stdout, stderr, err := run(t, "parse", path)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "module org.example.Generate\n")
	assert.Contains(t, stdout, "component = Generator auto-inject {")

	reference, stderr, err := run(t, "parse", "--reference", path)
	require.NoError(t, err, stderr)
	assert.Equal(t, stdout, reference)

	tree, _, err := run(t, "parse", "--tree", path)
	require.NoError(t, err)
	assert.Contains(t, tree, `Module "org.example.Generate"`)
}

func TestParseCommandReportsSyntaxErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.mwe2", "module m\nRoot {\n  a = = b\n}\n")

	stdout, stderr, err := run(t, "parse", path)
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "bad.mwe2")

	_, stderr, err = run(t, "parse", "--reference", path)
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "line 3")
}

func TestCheckCommand(t *testing.T) {
	stdout, stderr, err := run(t, "--config", catalogConfig(t), "check", examples)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Checked 2 file(s)")
}

func TestCheckCommandFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mwe2", "module a\nRoot { x = missing }\n")

	_, stderr, err := run(t, "check", dir)
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "E0001")
	assert.Contains(t, stderr, "Check failed: 1 error(s)")
}

func TestFormatCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.mwe2", "module a var x='v' Root{b=x c=Child:named{}}")

	stdout, _, err := run(t, "fmt", path)
	require.NoError(t, err)
	want := "module a\n\nvar x = 'v'\n\nRoot {\n  b = x\n  c = Child : named {}\n}\n"
	assert.Equal(t, want, stdout)

	_, _, err = run(t, "fmt", "-w", path)
	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(written))
}

func TestFormatCommandKeepsComments(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.mwe2", "module a\n// note\nRoot {}\n")

	_, _, err := run(t, "fmt", "-w", path)
	assert.ErrorContains(t, err, "--drop-comments")

	_, _, err = run(t, "fmt", "-w", "--drop-comments", path)
	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "module a\n\nRoot {}\n", string(written))
}

func TestFormatCommandRefusesSyntaxErrors(t *testing.T) {
	source := "module a\nRoot { b = }\n"
	path := writeFile(t, t.TempDir(), "a.mwe2", source)

	_, _, err := run(t, "fmt", "-w", path)
	assert.ErrorIs(t, err, errDiagnostics)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, source, string(written))
}

func TestTokensCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.mwe2", "module a\nRoot { b = 'x y' }\n")

	stdout, _, err := run(t, "tokens", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1:1\tstructural")
	assert.Contains(t, stdout, `"module"`)
	assert.Contains(t, stdout, "string")
	assert.Contains(t, stdout, `" "`, "whitespace inside strings is content")
	assert.NotContains(t, stdout, `"\n"`)

	stdout, _, err = run(t, "tokens", "--hidden", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"\n"`)
}

func TestReplCommand(t *testing.T) {
	var stdout bytes.Buffer
	root := newRootCommand()
	root.SetOut(&stdout)
	root.SetIn(bytes.NewBufferString("module a Root {}\n"))
	root.SetArgs([]string{"--no-color", "repl"})

	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "module a\n\nRoot {}\n")
}
