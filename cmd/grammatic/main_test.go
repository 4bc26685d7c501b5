package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assignment = `
Assignment = ident "=" number { "," number } .
ident      = letter { letter | digit } .
number     = digit { digit } .
letter     = "a" … "z" | "_" .
digit      = "0" … "9" .
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := (&app{}).rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	e := cmd.Execute()
	return out.String(), e
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	g := writeFile(t, dir, "assign.ebnf", assignment)

	out, e := run(t, "check", g)
	require.NoError(t, e)
	assert.Contains(t, out, ": 5 productions, start: Assignment")

	out, e = run(t, "check", "--start", "number", g)
	require.Error(t, e)
	assert.Empty(t, out)

	_, e = run(t, "check", filepath.Join(dir, "missing.ebnf"))
	assert.Error(t, e)
}

func TestDescribe(t *testing.T) {
	g := writeFile(t, t.TempDir(), "assign.ebnf", assignment)

	out, e := run(t, "describe", g)
	require.NoError(t, e)
	assert.Equal(t, "Assignment = ident, '=', number, {',', number};\n", out)

	_, e = run(t, "describe", "--special", "python", g)
	assert.Error(t, e)
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	g := writeFile(t, dir, "assign.ebnf", assignment)
	first := writeFile(t, dir, "first.txt", "x1 = 12")
	second := writeFile(t, dir, "second.txt", "y = 3, 4")

	out, e := run(t, "parse", "--jobs", "1", g, first, second)
	require.NoError(t, e)
	assert.Contains(t, out, first+": match #1, 7 bytes\n")
	assert.Contains(t, out, second+": match #1, 8 bytes\n")
	assert.Contains(t, out, "ident 'x1'\n")
	assert.Contains(t, out, "number '4'\n")
	assert.Less(t, bytes.Index([]byte(out), []byte(first)), bytes.Index([]byte(out), []byte(second)))

	out, e = run(t, "parse", "--tokens", g, first)
	require.NoError(t, e)
	assert.Contains(t, out, "  'x1' '=' '12'\n")

	_, e = run(t, "parse", "--match", "best", g, first)
	assert.Error(t, e)

	_, e = run(t, "parse", g, filepath.Join(dir, "missing.txt"))
	assert.Error(t, e)
}

func TestExitCode(t *testing.T) {
	dir := t.TempDir()
	g := writeFile(t, dir, "assign.ebnf", assignment)
	bad := writeFile(t, dir, "bad.ebnf", `A = "x"`)
	input := writeFile(t, dir, "input.txt", "x = y")

	_, e := run(t, "check", bad)
	assert.Equal(t, 2, exitCode(e))

	_, e = run(t, "check", filepath.Join(dir, "missing.ebnf"))
	assert.Equal(t, 1, exitCode(e))

	_, e = run(t, "parse", g, input)
	assert.Equal(t, 3, exitCode(e))

	_, e = run(t, "parse", g, filepath.Join(dir, "missing.txt"))
	assert.Equal(t, 1, exitCode(e))
}
