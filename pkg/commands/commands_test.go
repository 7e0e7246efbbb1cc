package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/memories/pkg/authority/authoritytest"
	"tableflip.dev/memories/pkg/submit"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"open"},
		{"weeks"},
		{"write"},
		{"goals", "add"},
		{"goals", "rm"},
		{"unlinked", "add"},
		{"admin", "login"},
		{"ui"},
		{"info"},
		{"version"},
		{"completion"},
	} {
		cmd, _, err := root.Find(path)
		if assert.NoError(t, err, path) {
			assert.Equal(t, path[len(path)-1], cmd.Name())
		}
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("token"))
	assert.NotNil(t, root.PersistentFlags().Lookup("link"))
}

func TestReadStdin(t *testing.T) {
	got, err := readStdin(strings.NewReader("Cena con amigos\n"))
	require.NoError(t, err)
	assert.Equal(t, "Cena con amigos", got)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := New()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestWriteFromEnvConfig(t *testing.T) {
	color.NoColor = true
	srv := authoritytest.NewServer()
	t.Cleanup(srv.Close)
	srv.AddToken("ABC", "Gabriela")

	t.Setenv("MEMORIES_API", srv.URL)
	t.Setenv("MEMORIES_PATH", t.TempDir())

	out, err := run(t, "write", "--token", "ABC", "Fuimos", "a", "la", "playa")
	require.NoError(t, err)
	assert.Contains(t, out, submit.MsgSent)
	assert.Equal(t, 1, srv.Calls("POST /weekly-memory"))

	// The token was saved, so later commands need no flag.
	out, err = run(t, "weeks")
	require.NoError(t, err)
	assert.Contains(t, out, "Escribes como Gabriela")
	assert.Contains(t, out, "Fuimos a la playa")
}

func TestWriteRejectedLocally(t *testing.T) {
	srv := authoritytest.NewServer()
	t.Cleanup(srv.Close)
	srv.AddToken("ABC", "Gabriela")

	t.Setenv("MEMORIES_API", srv.URL)
	t.Setenv("MEMORIES_PATH", t.TempDir())

	_, err := run(t, "write", "--token", "ABC", strings.Repeat("a", 1001))
	require.Error(t, err)
	assert.Contains(t, err.Error(), submit.MsgTooLong)
	assert.Zero(t, srv.Calls("POST /weekly-memory"))
}
