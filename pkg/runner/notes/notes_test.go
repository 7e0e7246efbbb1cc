package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/memories/pkg/access"
	"tableflip.dev/memories/pkg/app"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/authority/authoritytest"
	"tableflip.dev/memories/pkg/store"
)

func TestNotes(t *testing.T) {
	color.NoColor = true
	srv := authoritytest.NewServer()
	defer srv.Close()
	srv.AddToken("ABC", "Gabriela")
	svc, err := app.New(store.StaticConfig{API: srv.URL}, store.NewMemory())
	require.NoError(t, err)
	ctx := context.Background()

	var out bytes.Buffer
	add := &Notes{Service: svc, Link: "ABC", Kind: authority.Goals, Action: Add, Text: "Aprender a bucear", JSON: true, Out: &out}
	require.NoError(t, add.Do(ctx))
	var note authority.Note
	require.NoError(t, json.Unmarshal(out.Bytes(), &note))
	assert.Equal(t, "Aprender a bucear", note.Text)

	out.Reset()
	list := &Notes{Service: svc, Kind: authority.Goals, Out: &out}
	require.NoError(t, list.Do(ctx))
	assert.Contains(t, out.String(), "Objetivos")
	assert.Contains(t, out.String(), "Aprender a bucear")

	out.Reset()
	rm := &Notes{Service: svc, Kind: authority.Goals, Action: Remove, ID: note.ID, Out: &out}
	require.NoError(t, rm.Do(ctx))
	assert.Contains(t, out.String(), "Eliminado")

	out.Reset()
	list = &Notes{Service: svc, Kind: authority.Goals, JSON: true, Out: &out}
	require.NoError(t, list.Do(ctx))
	assert.JSONEq(t, `[]`, out.String())
}

func TestNotesWithoutAccess(t *testing.T) {
	srv := authoritytest.NewServer()
	defer srv.Close()
	svc, err := app.New(store.StaticConfig{API: srv.URL}, store.NewMemory())
	require.NoError(t, err)

	n := &Notes{Service: svc, Kind: authority.Unlinked, Out: &bytes.Buffer{}}
	assert.ErrorIs(t, n.Do(context.Background()), access.ErrNoAccess)
}
