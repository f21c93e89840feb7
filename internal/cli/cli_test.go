package cli

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"-namespace", "demo", "-script-type", "Decision", "-comments", "-out", "x.txt", "graph.json"}, out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "graph.json", cfg.GraphPath)
	assert.Equal(t, "demo", cfg.Namespace)
	assert.Equal(t, "decision", cfg.ScriptType)
	assert.True(t, cfg.EmitComments)
	assert.Equal(t, "x.txt", cfg.OutPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Equal(t, app.ModeCompile, cfg.Mode())
}

func TestParseModes(t *testing.T) {
	cfg, _, err := Parse([]string{"-serve-port", "8080"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, app.ModeServe, cfg.Mode())

	cfg, _, err = Parse([]string{"-watch", "http://localhost:3000", "-watch-namespace", "/editor"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, app.ModeWatch, cfg.Mode())
	assert.Equal(t, "/editor", cfg.WatchNamespace)

	cfg, _, err = Parse([]string{"-g", "short.json"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "short.json", cfg.GraphPath)
}

func TestParseUsage(t *testing.T) {
	for _, args := range [][]string{{}, {"-h"}} {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(args, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown flag", args: []string{"-nope"}, want: "flag provided but not defined"},
		{name: "log format", args: []string{"-log-format", "xml", "g.json"}, want: "invalid log-format"},
		{name: "log level", args: []string{"-log-level", "loud", "g.json"}, want: "invalid log-level"},
		{name: "script type", args: []string{"-script-type", "poem", "g.json"}, want: "unknown script type"},
		{name: "two modes", args: []string{"-serve-port", "8080", "g.json"}, want: "mutually exclusive"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
