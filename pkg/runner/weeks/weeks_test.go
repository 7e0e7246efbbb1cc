package weeks

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/memories/pkg/app"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/authority/authoritytest"
	"tableflip.dev/memories/pkg/store"
	"tableflip.dev/memories/pkg/week"
)

func newService(t *testing.T, now time.Time) (*authoritytest.Server, *app.Service) {
	t.Helper()
	color.NoColor = true
	srv := authoritytest.NewServer()
	t.Cleanup(srv.Close)
	svc, err := app.New(store.StaticConfig{API: srv.URL}, store.NewMemory())
	require.NoError(t, err)
	mock := clock.NewMock()
	mock.Set(now)
	svc.Clock = mock
	return srv, svc
}

func TestGreeting(t *testing.T) {
	srv, svc := newService(t, time.Date(2026, 1, 14, 8, 0, 0, 0, time.UTC))
	srv.AddToken("ABC", "Gabriela")

	var out bytes.Buffer
	w := &Weeks{Service: svc, Link: "https://memories.example.org/?token=ABC", Out: &out}
	require.NoError(t, w.Do(context.Background()))
	assert.Contains(t, out.String(), "Escribes como Gabriela")
	assert.Contains(t, out.String(), "Semana actual")
}

func TestWrittenWeekJSON(t *testing.T) {
	srv, svc := newService(t, time.Date(2026, 1, 10, 20, 0, 0, 0, time.UTC))
	srv.SetWeeks(authority.WeekRecord{
		Week:   week.MustParse("2026-01-05"),
		Status: authority.Written,
		Author: "Jaime",
		Text:   "Hola",
	})

	var out bytes.Buffer
	w := &Weeks{Service: svc, JSON: true, Out: &out}
	require.NoError(t, w.Do(context.Background()))

	var got struct {
		Access  string `json:"access"`
		Current string `json:"current_week"`
		Form    bool   `json:"form"`
		Weeks   []struct {
			Week     string `json:"week_monday"`
			Status   string `json:"status"`
			Author   string `json:"author"`
			Text     string `json:"text"`
			Editable bool   `json:"editable"`
		} `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "invalid", got.Access)
	assert.Equal(t, "2026-01-05", got.Current)
	assert.False(t, got.Form)
	require.NotEmpty(t, got.Weeks)
	first := got.Weeks[0]
	assert.Equal(t, "2026-01-05", first.Week)
	assert.Equal(t, "written", first.Status)
	assert.Equal(t, "Jaime", first.Author)
	assert.Equal(t, "Hola", first.Text)
	assert.False(t, first.Editable)
}

func TestCalendar(t *testing.T) {
	_, svc := newService(t, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC))

	var out bytes.Buffer
	w := &Weeks{Service: svc, Calendar: true, Out: &out}
	require.NoError(t, w.Do(context.Background()))
	assert.True(t, strings.HasPrefix(out.String(), "Recuerdos 2026"), out.String())
}
