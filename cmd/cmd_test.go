package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig("test", strings.NewReader(`
prompt: "> "
history-file: /tmp/lispy_history
max-depth: 500
print: true
`))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Prompt:      "> ",
		HistoryFile: "/tmp/lispy_history",
		MaxDepth:    500,
		Print:       true,
	}, cfg)
}

func TestReadConfig_defaults(t *testing.T) {
	cfg, err := ReadConfig("empty", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = ReadConfig("partial", strings.NewReader("print: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Print)
	assert.Equal(t, lisp.DefaultMaxDepth, cfg.MaxDepth)
}

func TestReadConfig_errors(t *testing.T) {
	_, err := ReadConfig("unknown", strings.NewReader("colour: blue\n"))
	assert.Error(t, err)

	_, err = ReadConfig("negative", strings.NewReader("max-depth: -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRunSource(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	env, err := newEnv(cfg)
	require.NoError(t, err)
	env.Runtime.Stdout = &out

	err = runSource(env, "test", []byte(`(define sq (lambda (x) (* x x))) (sq 12) (print "done")`), true)
	require.NoError(t, err)
	assert.Equal(t, "()\n144\ndone\n()\n", out.String())

	out.Reset()
	err = runSource(env, "test", []byte(`(sq 2)`), false)
	require.NoError(t, err)
	assert.Empty(t, out.String())

	err = runSource(env, "test", []byte(`(sq undefined)`), false)
	assert.True(t, errors.Is(err, lisp.UnboundName))

	err = runSource(env, "test", []byte(`(sq 2`), false)
	assert.True(t, errors.Is(err, lisp.UnbalancedDelimiter))
}

func TestReadSource(t *testing.T) {
	var buf bytes.Buffer
	err := readSource(&buf, "test", "(a 'b [1 2.5]) ; comment\n\"s\"", false)
	require.NoError(t, err)
	assert.Equal(t, "(a 'b (1 2.5))\n\"s\"\n", buf.String())

	buf.Reset()
	err = readSource(&buf, "test", "(+ 1 2)", true)
	require.NoError(t, err)
	assert.Equal(t, "(\n+\n1\n2\n)\n", buf.String())

	err = readSource(&buf, "test", ")", false)
	assert.True(t, errors.Is(err, lisp.UnbalancedDelimiter))
}

func TestReadSourceArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.lisp")
	require.NoError(t, os.WriteFile(path, []byte("(+ 1 2)"), 0600))

	sources, err := readSourceArgs([]string{path}, false)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, path, sources[0].name)
	assert.Equal(t, "(+ 1 2)", string(sources[0].text))

	sources, err = readSourceArgs([]string{"(f)", "x"}, true)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "expr2", sources[1].name)

	_, err = readSourceArgs([]string{path + ".missing"}, false)
	assert.Error(t, err)
}
