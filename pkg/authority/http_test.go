package authority_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/authority/authoritytest"
	"tableflip.dev/memories/pkg/week"
)

func newClient(t *testing.T) (*authoritytest.Server, authority.Client) {
	t.Helper()
	srv := authoritytest.NewServer()
	t.Cleanup(srv.Close)
	return srv, authority.NewHTTPClient(srv.BaseURL(), 5*time.Second)
}

func TestWeeks(t *testing.T) {
	srv, c := newClient(t)
	srv.SetWeeks(
		authority.WeekRecord{Week: week.MustParse("2026-01-05"), Status: authority.Pending},
		authority.WeekRecord{Week: week.MustParse("2025-12-29"), Status: authority.Written, Author: "Ana", Text: "Fin de año"},
	)

	records, err := c.Weeks(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2025-12-29", records[0].Week.String())
	assert.Equal(t, authority.Written, records[0].Status)
	assert.Equal(t, "Ana", records[0].Author)
	assert.Equal(t, "Fin de año", records[0].Text)

	assert.Equal(t, "2026-01-05", records[1].Week.String())
	assert.Equal(t, authority.Pending, records[1].Status)
	assert.Empty(t, records[1].Author)
}

func TestToken(t *testing.T) {
	srv, c := newClient(t)
	srv.AddToken("ABC", "Gabriela")

	author, err := c.Token(context.Background(), "ABC")
	require.NoError(t, err)
	assert.Equal(t, "Gabriela", author)

	_, err = c.Token(context.Background(), "nope")
	var aerr *authority.Error
	require.True(t, errors.As(err, &aerr), "got %v", err)
	assert.Equal(t, http.StatusNotFound, aerr.Status)
	assert.Equal(t, "invalid or expired token", aerr.Detail)
}

func TestTokenRedirect(t *testing.T) {
	srv, c := newClient(t)
	srv.AddToken("ABC", "Gabriela")
	srv.SetRedirect("https://memories.example.org")

	author, err := c.Token(context.Background(), "ABC")
	require.NoError(t, err)
	assert.Equal(t, "Gabriela", author)
}

func TestTokenEscaping(t *testing.T) {
	srv, c := newClient(t)
	srv.AddToken("a b+c", "Luis")

	author, err := c.Token(context.Background(), "a b+c")
	require.NoError(t, err)
	assert.Equal(t, "Luis", author)
}

func TestTokenMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()
	u, _ := url.Parse(srv.URL)

	_, err := authority.NewHTTPClient(u, 0).Token(context.Background(), "ABC")
	assert.True(t, errors.Is(err, authority.ErrMalformed), "got %v", err)
}

func TestSubmitWeekly(t *testing.T) {
	srv, c := newClient(t)
	srv.AddToken("ABC", "Gabriela")
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	srv.SetNow(func() time.Time { return now })

	require.NoError(t, c.SubmitWeekly(context.Background(), "ABC", "Hola"))
	rec, ok := srv.Week(week.MustParse("2026-01-05"))
	require.True(t, ok)
	assert.Equal(t, authority.Written, rec.Status)
	assert.Equal(t, "Gabriela", rec.Author)
	assert.Equal(t, "Hola", rec.Text)

	err := c.SubmitWeekly(context.Background(), "ABC", "Otra vez")
	var aerr *authority.Error
	require.True(t, errors.As(err, &aerr), "got %v", err)
	assert.Equal(t, http.StatusConflict, aerr.Status)
	assert.Equal(t, "Week already written", aerr.Detail)
}

func TestSubmitWeeklyErrors(t *testing.T) {
	tests := map[string]struct {
		token    string
		writable bool
		status   int
		detail   string
	}{
		"missing token": {
			token:    "",
			writable: true,
			status:   http.StatusUnauthorized,
			detail:   "Missing token",
		},
		"unknown token": {
			token:    "XYZ",
			writable: true,
			status:   http.StatusUnauthorized,
			detail:   "Invalid token",
		},
		"not writable": {
			token:    "ABC",
			writable: false,
			status:   http.StatusForbidden,
			detail:   "Not writable now",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			srv, c := newClient(t)
			srv.AddToken("ABC", "Gabriela")
			srv.SetWritable(tc.writable)

			err := c.SubmitWeekly(context.Background(), tc.token, "Hola")
			var aerr *authority.Error
			require.True(t, errors.As(err, &aerr), "got %v", err)
			assert.Equal(t, tc.status, aerr.Status)
			assert.Equal(t, tc.detail, aerr.Detail)
		})
	}
}

func TestNotes(t *testing.T) {
	srv, c := newClient(t)
	srv.AddToken("ABC", "Gabriela")
	ctx := context.Background()

	first, err := c.AddNote(ctx, authority.Goals, "ABC", "Correr 10k")
	require.NoError(t, err)
	assert.Equal(t, "Correr 10k", first.Text)
	assert.Equal(t, "Gabriela", first.Author)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := c.AddNote(ctx, authority.Goals, "ABC", "Leer más")
	require.NoError(t, err)

	notes, err := c.Notes(ctx, authority.Goals, "ABC")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)

	unlinked, err := c.Notes(ctx, authority.Unlinked, "ABC")
	require.NoError(t, err)
	assert.Empty(t, unlinked)

	require.NoError(t, c.DeleteNote(ctx, authority.Goals, "ABC", first.ID))
	notes, err = c.Notes(ctx, authority.Goals, "ABC")
	require.NoError(t, err)
	require.Len(t, notes, 1)

	err = c.DeleteNote(ctx, authority.Goals, "ABC", first.ID)
	var aerr *authority.Error
	require.True(t, errors.As(err, &aerr), "got %v", err)
	assert.Equal(t, http.StatusNotFound, aerr.Status)

	_, err = c.Notes(ctx, authority.Kind("diary"), "ABC")
	assert.Error(t, err)
}

func TestAdminLogin(t *testing.T) {
	srv, c := newClient(t)
	srv.AddAdmin("admin", "secret")

	token, err := c.AdminLogin(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin-admin", token)

	_, err = c.AdminLogin(context.Background(), "admin", "wrong")
	var aerr *authority.Error
	require.True(t, errors.As(err, &aerr), "got %v", err)
	assert.Equal(t, http.StatusUnauthorized, aerr.Status)
}

func TestErrorDetailList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": [{"msg": "field required"}]}`))
	}))
	defer srv.Close()
	u, _ := url.Parse(srv.URL)

	err := authority.NewHTTPClient(u, 0).SubmitWeekly(context.Background(), "ABC", "")
	var aerr *authority.Error
	require.True(t, errors.As(err, &aerr), "got %v", err)
	assert.Equal(t, http.StatusUnprocessableEntity, aerr.Status)
	assert.Contains(t, aerr.Detail, "field required")
}
