package notes

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/memories/pkg/access"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/authority/authoritytest"
)

type staticState access.State

func (s staticState) State() access.State { return access.State(s) }

func newService(t *testing.T, kind authority.Kind, st access.State) (*authoritytest.Server, *Service) {
	t.Helper()
	srv := authoritytest.NewServer()
	t.Cleanup(srv.Close)
	srv.AddToken("ABC", "Gabriela")
	return srv, New(kind, authority.NewHTTPClient(srv.BaseURL(), 5*time.Second), staticState(st))
}

func TestLifecycle(t *testing.T) {
	for _, kind := range []authority.Kind{authority.Goals, authority.Unlinked} {
		t.Run(string(kind), func(t *testing.T) {
			_, s := newService(t, kind, access.Valid("Gabriela"))
			ctx := context.Background()

			n, err := s.Add(ctx, "ABC", "  Viajar a Lisboa \n")
			require.NoError(t, err)
			assert.Equal(t, "Viajar a Lisboa", n.Text)

			list, err := s.List(ctx, "ABC")
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, n.ID, list[0].ID)

			require.NoError(t, s.Remove(ctx, "ABC", n.ID))
			list, err = s.List(ctx, "ABC")
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestRejected(t *testing.T) {
	tests := map[string]struct {
		state access.State
		text  string
		err   error
	}{
		"no access": {state: access.Invalid(), text: "x", err: ErrAccess},
		"blank":     {state: access.Valid("Gabriela"), text: "   ", err: ErrEmpty},
		"too long":  {state: access.Valid("Gabriela"), text: strings.Repeat("x", 1001), err: ErrLength},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			srv, s := newService(t, authority.Goals, tc.state)
			_, err := s.Add(context.Background(), "ABC", tc.text)
			assert.True(t, errors.Is(err, tc.err), "got %v", err)
			assert.Equal(t, 0, srv.Calls("POST /goals"))
		})
	}
}

func TestListWithoutAccess(t *testing.T) {
	srv, s := newService(t, authority.Unlinked, access.Unknown())
	_, err := s.List(context.Background(), "ABC")
	assert.True(t, errors.Is(err, ErrAccess))
	assert.Equal(t, 0, srv.Calls("GET /unlinked"))

	err = s.Remove(context.Background(), "ABC", 1)
	assert.True(t, errors.Is(err, ErrAccess))
}

func TestRemoveMissing(t *testing.T) {
	_, s := newService(t, authority.Goals, access.Valid("Gabriela"))
	err := s.Remove(context.Background(), "ABC", 42)
	var aerr *authority.Error
	require.True(t, errors.As(err, &aerr), "got %v", err)
	assert.Equal(t, 404, aerr.Status)
}
