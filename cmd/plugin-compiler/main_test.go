package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugin-compiler/internal/config"
	"plugin-compiler/internal/wire"
)

const foo = `type: Foo(FooLoader),
capability: "decoder" @ 50,
category: Video,
description: "Foo decoder",
#[prefix = "foo"]
params: {
    threads: i64 { default: 4, range: 1..=16, text: "Threads", long_text: "Decoding threads" },
}
`

const configYAML = `sources: ["*.desc"]
output:
  dir: out
  package: plugins
  formats: [go, ops, yaml, wire]
log:
  level: error
loaders:
  - name: FooLoader
    activate: foo_open
    deactivate: foo_close
`

// workspace writes a config and the given descriptors into a temp dir and
// returns the config path.
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.DefaultFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte(configYAML), 0o644))

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return cfgPath
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestCompile_WritesEveryFormat(t *testing.T) {
	cfgPath := workspace(t, map[string]string{"foo.desc": foo})

	_, stderr, err := run(t, "--config", cfgPath, "compile")
	require.NoError(t, err, stderr)

	out := filepath.Join(filepath.Dir(cfgPath), "out")

	goSrc, err := os.ReadFile(filepath.Join(out, "foo_module.go"))
	require.NoError(t, err)
	assert.Contains(t, string(goSrc), "type FooArgs struct")
	assert.Contains(t, string(goSrc), `"foo-threads"`)

	listing, err := os.ReadFile(filepath.Join(out, "foo.ops.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(listing), "SET_CLOSE_CALLBACK")

	_, err = os.Stat(filepath.Join(out, "foo.ops.yaml"))
	require.NoError(t, err)

	stream, err := os.Open(filepath.Join(out, "foo.pcop"))
	require.NoError(t, err)
	defer stream.Close()

	steps, err := wire.Decode(stream)
	require.NoError(t, err)
	assert.Len(t, steps, strings.Count(string(listing), "\n"))
}

func TestCompile_FormatOverride(t *testing.T) {
	cfgPath := workspace(t, map[string]string{"foo.desc": foo})
	out := t.TempDir()

	_, stderr, err := run(t, "--config", cfgPath, "compile", "--out", out, "--format", "ops")
	require.NoError(t, err, stderr)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "foo.ops.txt", entries[0].Name())
}

func TestCompile_ReportsDiagnostics(t *testing.T) {
	cfgPath := workspace(t, map[string]string{
		"foo.desc": foo,
		"bad.desc": `type: Bad(FooLoader), capability: "x" @ 1, category: Video`,
	})

	_, stderr, err := run(t, "--config", cfgPath, "compile")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "missing")
	assert.Contains(t, stderr, "description")
	assert.Contains(t, stderr, "1 of 2 descriptors failed")
}

func TestCheck(t *testing.T) {
	cfgPath := workspace(t, map[string]string{"foo.desc": foo})
	desc := filepath.Join(filepath.Dir(cfgPath), "foo.desc")

	stdout, _, err := run(t, "--config", cfgPath, "check", desc, "--dump")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok (0 warnings)")
	assert.Contains(t, stdout, "threads")
}

func TestCheck_StrictFlag(t *testing.T) {
	src := strings.Replace(foo, "category: Video", "category: Bogus", 1)
	cfgPath := workspace(t, map[string]string{"foo.desc": src})
	desc := filepath.Join(filepath.Dir(cfgPath), "foo.desc")

	stdout, _, err := run(t, "--config", cfgPath, "check", desc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok (1 warnings)")

	_, _, err = run(t, "--config", cfgPath, "--strict", "check", desc)
	assert.ErrorIs(t, err, errFailed)
}

func TestOps(t *testing.T) {
	cfgPath := workspace(t, map[string]string{"foo.desc": foo})
	desc := filepath.Join(filepath.Dir(cfgPath), "foo.desc")

	stdout, _, err := run(t, "--config", cfgPath, "ops", desc)
	require.NoError(t, err)
	assert.Contains(t, stdout, `SET_NAME("foo-rs")`)
	assert.Contains(t, stdout, `SET_OPEN_CALLBACK("Foo-open", FooLoader::foo_open)`)

	stdout, _, err = run(t, "--config", cfgPath, "ops", desc, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "module: foo-rs")

	_, _, err = run(t, "--config", cfgPath, "ops", desc, "--format", "xml")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	cfgPath := workspace(t, map[string]string{"foo.desc": foo})
	desc := filepath.Join(filepath.Dir(cfgPath), "foo.desc")

	stdout, _, err := run(t, "--config", cfgPath, "inspect", desc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "module Foo")
	assert.Contains(t, stdout, "foo-rs")
	assert.Contains(t, stdout, "foo-threads")
	assert.Contains(t, stdout, "Threads int64")
	assert.Contains(t, stdout, "1..=16")
}

func TestInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.DefaultFile)

	stdout, _, err := run(t, "--config", cfgPath, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote")

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.True(t, cfg.ImplicitLoaders)

	_, _, err = run(t, "--config", cfgPath, "init")
	assert.Error(t, err)

	_, _, err = run(t, "--config", cfgPath, "init", "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "plugin-compiler dev")
	assert.Contains(t, stdout, "protocol: 4.0.6")
}
