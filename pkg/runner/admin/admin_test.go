package admin

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/memories/pkg/app"
	"tableflip.dev/memories/pkg/authority/authoritytest"
	"tableflip.dev/memories/pkg/store"
)

func TestLogin(t *testing.T) {
	srv := authoritytest.NewServer()
	defer srv.Close()
	srv.AddAdmin("root", "s3cret")
	mem := store.NewMemory()
	svc, err := app.New(store.StaticConfig{API: srv.URL}, mem)
	require.NoError(t, err)

	prompted := false
	l := &Login{
		Service:  svc,
		Username: "root",
		ReadPassword: func() (string, error) {
			prompted = true
			return "s3cret", nil
		},
		Out: &bytes.Buffer{},
	}
	require.NoError(t, l.Do(context.Background()))
	assert.True(t, prompted)

	v, err := mem.Get(store.AdminTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "admin-root", v)
	_, err = mem.Get(store.TokenKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoginEmptyPassword(t *testing.T) {
	srv := authoritytest.NewServer()
	defer srv.Close()
	svc, err := app.New(store.StaticConfig{API: srv.URL}, store.NewMemory())
	require.NoError(t, err)

	l := &Login{
		Service:      svc,
		Username:     "root",
		ReadPassword: func() (string, error) { return "", nil },
		Out:          &bytes.Buffer{},
	}
	assert.ErrorIs(t, l.Do(context.Background()), ErrNoPassword)
	assert.Equal(t, 0, srv.Calls("POST /admin/login"))
}
