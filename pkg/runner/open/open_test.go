package open

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/memories/pkg/app"
	"tableflip.dev/memories/pkg/authority/authoritytest"
	"tableflip.dev/memories/pkg/board"
	"tableflip.dev/memories/pkg/store"
)

func newService(t *testing.T) (*authoritytest.Server, *app.Service, *store.Memory) {
	t.Helper()
	color.NoColor = true
	srv := authoritytest.NewServer()
	t.Cleanup(srv.Close)
	srv.AddToken("a b", "Gabriela")
	mem := store.NewMemory()
	svc, err := app.New(store.StaticConfig{API: srv.URL}, mem)
	require.NoError(t, err)
	return srv, svc, mem
}

func TestLegacyPathLink(t *testing.T) {
	_, svc, mem := newService(t)

	var out bytes.Buffer
	o := &Open{Service: svc, Link: "https://memories.example.org/token/a%20b", Out: &out}
	require.NoError(t, o.Do(context.Background()))

	assert.Contains(t, out.String(), "Escribes como Gabriela")
	assert.Contains(t, out.String(), "https://memories.example.org/?token=a+b")
	v, err := mem.Get(store.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "a b", v)
}

func TestInvalidShowsSplash(t *testing.T) {
	_, svc, mem := newService(t)
	require.NoError(t, mem.Set(store.TokenKey, "old"))
	svc.Keeper.Reload()

	var out bytes.Buffer
	o := &Open{Service: svc, Out: &out}
	require.NoError(t, o.Do(context.Background()))
	assert.Contains(t, out.String(), board.MsgSplash)
	_, err := mem.Get(store.TokenKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestJSON(t *testing.T) {
	_, svc, _ := newService(t)

	var out bytes.Buffer
	o := &Open{Service: svc, Link: "/?token=a%20b", JSON: true, Out: &out}
	require.NoError(t, o.Do(context.Background()))
	assert.JSONEq(t, `{"source":"query","access":"valid","author":"Gabriela"}`, out.String())
}
