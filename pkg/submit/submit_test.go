package submit

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/memories/pkg/access"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/authority/authoritytest"
	"tableflip.dev/memories/pkg/week"
)

const weeklyRoute = "POST /weekly-memory"

type staticState access.State

func (s staticState) State() access.State { return access.State(s) }

func setup(t *testing.T, st access.State) (*authoritytest.Server, *Submitter, *clock.Mock, *int32) {
	t.Helper()
	srv := authoritytest.NewServer()
	t.Cleanup(srv.Close)
	srv.AddToken("ABC", "Gabriela")
	srv.SetNow(func() time.Time { return time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC) })

	var refreshed int32
	mock := clock.NewMock()
	s := New(authority.NewHTTPClient(srv.BaseURL(), 5*time.Second), staticState(st), func(context.Context) {
		atomic.AddInt32(&refreshed, 1)
	}, mock)
	return srv, s, mock, &refreshed
}

func TestRejectedLocally(t *testing.T) {
	tests := map[string]struct {
		state access.State
		text  string
		err   error
		msg   string
	}{
		"unknown access": {
			state: access.Unknown(),
			text:  "Hola",
			err:   ErrAccess,
			msg:   MsgAccess,
		},
		"invalid access": {
			state: access.Invalid(),
			text:  "",
			err:   ErrAccess,
			msg:   MsgAccess,
		},
		"empty": {
			state: access.Valid("Gabriela"),
			text:  "",
			err:   ErrEmpty,
			msg:   MsgEmpty,
		},
		"whitespace": {
			state: access.Valid("Gabriela"),
			text:  "  \n ",
			err:   ErrEmpty,
			msg:   MsgEmpty,
		},
		"1001 characters": {
			state: access.Valid("Gabriela"),
			text:  strings.Repeat("x", 1001),
			err:   ErrTooLong,
			msg:   MsgTooLong,
		},
		"1001 code points": {
			state: access.Valid("Gabriela"),
			text:  strings.Repeat("é", 1001),
			err:   ErrTooLong,
			msg:   MsgTooLong,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			srv, s, _, refreshed := setup(t, tc.state)
			d := &Draft{Text: tc.text}

			err := s.SubmitDraft(context.Background(), "ABC", d)
			require.True(t, errors.Is(err, tc.err), "got %v", err)
			assert.Equal(t, tc.msg, Message(err))
			assert.Equal(t, tc.text, d.Text)
			assert.Equal(t, 0, srv.Calls(weeklyRoute))
			assert.Empty(t, s.Toast().Text())
			s.Wait()
			assert.Zero(t, atomic.LoadInt32(refreshed))
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	srv, s, mock, refreshed := setup(t, access.Valid("Gabriela"))
	d := &Draft{Week: week.MustParse("2025-12-29"), Text: strings.Repeat("é", 1000)}

	err := s.SubmitDraft(context.Background(), "ABC", d)
	require.NoError(t, err)
	assert.Equal(t, MsgSent, Message(err))
	assert.Empty(t, d.Text)
	assert.True(t, d.Week.IsZero())
	assert.Equal(t, 1, srv.Calls(weeklyRoute))

	rec, ok := srv.Week(week.MustParse("2026-01-05"))
	require.True(t, ok)
	assert.Equal(t, authority.Written, rec.Status)

	s.Wait()
	assert.EqualValues(t, 1, atomic.LoadInt32(refreshed))

	assert.Equal(t, MsgSaved, s.Toast().Text())
	mock.Add(2999 * time.Millisecond)
	assert.Equal(t, MsgSaved, s.Toast().Text())
	mock.Add(time.Millisecond)
	require.Eventually(t, func() bool { return s.Toast().Text() == "" }, time.Second, 5*time.Millisecond)
}

func TestSubmitFailureKeepsText(t *testing.T) {
	srv, s, _, refreshed := setup(t, access.Valid("Gabriela"))
	srv.SetWritable(false)
	d := &Draft{Text: "Hola"}

	err := s.SubmitDraft(context.Background(), "ABC", d)
	require.True(t, errors.Is(err, ErrSend), "got %v", err)
	assert.Equal(t, "Not writable now", Message(err))
	assert.Equal(t, "Hola", d.Text)
	assert.Equal(t, 1, srv.Calls(weeklyRoute))
	assert.Empty(t, s.Toast().Text())
	s.Wait()
	assert.Zero(t, atomic.LoadInt32(refreshed))
}

func TestResubmitWrittenWeekIsSent(t *testing.T) {
	srv, s, _, _ := setup(t, access.Valid("Gabriela"))
	require.NoError(t, s.Submit(context.Background(), "ABC", "Primero"))

	err := s.Submit(context.Background(), "ABC", "Segundo")
	assert.Equal(t, 2, srv.Calls(weeklyRoute))
	assert.Equal(t, "Week already written", Message(err))
	s.Wait()
}

func TestMessageGeneric(t *testing.T) {
	assert.Equal(t, MsgFailed, Message(errors.New("connection refused")))
	assert.Equal(t, MsgFailed, Message(&authority.Error{Status: 500}))
}

func TestToastRestart(t *testing.T) {
	mock := clock.NewMock()
	toast := NewToast(mock, ToastDuration)

	toast.Show("uno")
	mock.Add(2 * time.Second)
	toast.Show("dos")
	mock.Add(2 * time.Second)
	// The first timer was stopped; only the second one may clear.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "dos", toast.Text())

	mock.Add(time.Second)
	require.Eventually(t, func() bool { return toast.Text() == "" }, time.Second, 5*time.Millisecond)
}

func TestDraftCounter(t *testing.T) {
	d := &Draft{Text: "año"}
	assert.Equal(t, "3 / 1000", d.Counter())
}
