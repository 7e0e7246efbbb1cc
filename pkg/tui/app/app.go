// Package app is the terminal weeks screen.
package app

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"tableflip.dev/memories/pkg/access"
	appsvc "tableflip.dev/memories/pkg/app"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/board"
	"tableflip.dev/memories/pkg/store"
	"tableflip.dev/memories/pkg/submit"
	"tableflip.dev/memories/pkg/token"
	"tableflip.dev/memories/pkg/tui/components/panel"
	"tableflip.dev/memories/pkg/tui/components/weeklist"
	"tableflip.dev/memories/pkg/tui/theme"
)

// RefreshEvery is how often the week list is pulled again.
const RefreshEvery = time.Minute

type focus int

const (
	focusList focus = iota
	focusForm
)

// messages
type validatedMsg struct {
	token   string
	state   access.State
	applied bool
}
type weeksMsg struct {
	records []authority.WeekRecord
	err     error
}
type submittedMsg struct{ err error }
type storeMsg struct{ event store.Event }
type tickMsg time.Time
type toastMsg struct{}

// eventMsg carries a message that arrived on the background channel.
type eventMsg struct{ msg tea.Msg }

// Model is the weeks screen.
type Model struct {
	svc  *appsvc.Service
	ctx  context.Context
	log  *logrus.Entry
	link *url.URL
	tok  string

	validator *access.Validator
	board     *board.Board
	submitter *submit.Submitter
	events    chan tea.Msg

	focus   focus
	form    textarea.Model
	current panel.Model
	list    weeklist.Model
	help    help.Model
	keys    keyMap
	th      theme.Theme

	status  string
	sending bool
	width   int
	height  int
}

// New builds the screen for the token in link, or the persisted token.
func New(ctx context.Context, svc *appsvc.Service, link string) Model {
	th := theme.Default()

	ta := textarea.New()
	ta.Placeholder = "Escribe aquí vuestro recuerdo de la semana..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(6)

	m := Model{
		svc:       svc,
		ctx:       ctx,
		log:       logrus.WithField("component", "tui"),
		validator: svc.NewValidator(),
		board:     board.New(svc.Now(), nil, access.Unknown(), board.Options{Since: svc.Since}),
		events:    make(chan tea.Msg, 16),
		focus:     focusList,
		form:      ta,
		current:   panel.New(th.Panel),
		list:      weeklist.New(th.Weeks),
		help:      help.New(),
		keys:      defaultKeys(),
		th:        th,
	}
	m.list.SetFocused(true)

	u, err := token.ParseLink(link)
	if err != nil {
		m.status = err.Error()
	}
	m.link = u
	res := token.Resolve(u, svc.Keeper.Stored())
	m.tok = res.Token
	if res.Canonical != nil {
		m.status = "Enlace: " + res.Canonical.String()
	}

	events, done := m.events, ctx.Done()
	m.submitter = svc.NewSubmitter(m.validator, func(ctx context.Context) {
		records, err := svc.Weeks(ctx)
		select {
		case events <- weeksMsg{records: records, err: err}:
		case <-done:
		}
	})
	return m
}

// Close drops validation answers still in flight.
func (m Model) Close() {
	m.validator.Close()
}

// Init validates the token, loads the weeks and starts listening for
// background events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.validate(m.tok),
		m.loadWeeks(),
		m.watch(),
		listen(m.events),
		tick(),
	)
}

func (m Model) validate(tok string) tea.Cmd {
	v, ctx := m.validator, m.ctx
	return func() tea.Msg {
		st, applied := v.Validate(ctx, tok)
		return validatedMsg{token: tok, state: st, applied: applied}
	}
}

func (m Model) loadWeeks() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		records, err := svc.Weeks(ctx)
		return weeksMsg{records: records, err: err}
	}
}

func (m Model) submit(text string) tea.Cmd {
	sub, ctx, tok := m.submitter, m.ctx, m.tok
	return func() tea.Msg {
		return submittedMsg{err: sub.Submit(ctx, tok, text)}
	}
}

// watch forwards local store changes, such as a token saved by another
// process, into the event channel.
func (m Model) watch() tea.Cmd {
	svc, ctx, events, log := m.svc, m.ctx, m.events, m.log
	return func() tea.Msg {
		ch, err := svc.Watch(ctx)
		if err != nil {
			log.WithError(err).Debug("store watch unavailable")
			return nil
		}
		go func() {
			for ev := range ch {
				select {
				case events <- storeMsg{event: ev}:
				case <-ctx.Done():
					return
				}
			}
		}()
		return nil
	}
}

// listen returns a tea.Cmd that blocks until a background event arrives.
func listen(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{msg: msg}
	}
}

func tick() tea.Cmd {
	return tea.Tick(RefreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case eventMsg:
		next, cmd := m.Update(msg.msg)
		return next, tea.Batch(cmd, listen(m.events))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()

	case validatedMsg:
		if msg.applied && msg.token == m.tok {
			m.board.SetState(msg.state)
			m.syncBoard()
			if msg.state.IsValid() && m.focus == focusList && !m.form.Focused() {
				cmds = append(cmds, m.setFocus(focusForm))
			}
		}

	case weeksMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("load weeks")
			m.status = "Error al cargar las semanas"
			break
		}
		m.board.Update(m.svc.Now(), msg.records, m.board.State())
		m.syncBoard()

	case submittedMsg:
		m.sending = false
		m.status = submit.Message(msg.err)
		if msg.err == nil {
			m.form.Reset()
			m.board.CancelEdit()
			m.syncBoard()
			cmds = append(cmds, tea.Tick(submit.ToastDuration+50*time.Millisecond, func(time.Time) tea.Msg { return toastMsg{} }))
		}

	case storeMsg:
		if msg.event.Key == store.TokenKey {
			m.svc.Keeper.Reload()
			res := token.Resolve(m.link, m.svc.Keeper.Stored())
			if res.Token != m.tok {
				m.tok = res.Token
				m.board.SetState(access.Unknown())
				m.syncBoard()
				cmds = append(cmds, m.validate(res.Token))
			}
		}

	case tickMsg:
		m.board.SetNow(m.svc.Now())
		m.syncBoard()
		cmds = append(cmds, m.loadWeeks(), tick())

	case toastMsg:
		// Redraw only; the toast clears itself.

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusForm {
			cmds = append(cmds, m.updateForm(msg))
		} else {
			cmds = append(cmds, m.updateList(msg))
		}
		return m, tea.Batch(cmds...)

	default:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.sending {
			return nil
		}
		m.sending = true
		m.status = "Enviando..."
		return m.submit(m.form.Value())
	case key.Matches(msg, m.keys.Cancel):
		if _, ok := m.board.Editing(); ok {
			m.board.CancelEdit()
			m.form.Reset()
			m.syncBoard()
		}
		return m.setFocus(focusList)
	case key.Matches(msg, m.keys.Focus):
		return m.setFocus(focusList)
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return cmd
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.list.Up()
	case key.Matches(msg, m.keys.Down):
		m.list.Down()
	case key.Matches(msg, m.keys.Top):
		m.list.Top()
	case key.Matches(msg, m.keys.Bottom):
		m.list.Bottom()
	case key.Matches(msg, m.keys.Refresh):
		return m.loadWeeks()
	case key.Matches(msg, m.keys.Focus):
		if m.board.CurrentFormVisible() {
			return m.setFocus(focusForm)
		}
	case key.Matches(msg, m.keys.Open):
		r, ok := m.list.Selected()
		if !ok {
			return nil
		}
		switch m.board.Select(r.Week) {
		case board.Editing:
			m.form.Reset()
			m.status = ""
			m.syncBoard()
			return m.setFocus(focusForm)
		case board.Explained:
			m.status = m.board.Message()
		}
	}
	return nil
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.list.SetFocused(f == focusList)
	m.current.SetFocused(f == focusForm)
	if f == focusForm {
		return m.form.Focus()
	}
	m.form.Blur()
	return nil
}

// syncBoard copies board state into the widgets.
func (m *Model) syncBoard() {
	m.list.SetRows(m.board.Rows())
	editing, _ := m.board.Editing()
	m.list.SetEditing(editing)
	if !m.board.CurrentFormVisible() && m.focus == focusForm {
		m.setFocus(focusList)
	}
	m.applySizes()
}

func (m *Model) applySizes() {
	if m.width == 0 {
		return
	}
	w := m.width
	if w > 100 {
		w = 100
	}
	m.form.SetWidth(w - 4)
	m.current.SetWidth(w)
	// Rough split: the form block takes about a dozen lines.
	m.list.SetSize(w, m.height-16)
	m.help.Width = w
}

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder
	now := m.board.Now()
	b.WriteString(m.th.Title.Render("Recuerdos " + strconv.Itoa(now.Year())))
	b.WriteString("\n\n")

	st := m.board.State()
	switch {
	case st.IsUnknown():
		b.WriteString(m.th.Panel.Muted.Render("Comprobando acceso…"))
		b.WriteString("\n\n")
	case !st.IsValid():
		b.WriteString(m.th.Banner.Render(board.MsgSplash))
		b.WriteString("\n\n")
	}

	view, _ := m.currentPanel()
	b.WriteString(view)
	b.WriteString("\n\n")
	b.WriteString(m.list.View())
	b.WriteString("\n\n")

	status := m.th.Footer.Status.Render(m.status)
	if t := m.submitter.Toast().Text(); t != "" {
		status += "  " + m.th.Toast.Render(t)
	}
	b.WriteString(status)
	b.WriteString("\n")

	bindings := m.keys.listHelp()
	if m.focus == focusForm {
		bindings = m.keys.formHelp()
	}
	b.WriteString(m.th.Footer.Help.Render(m.help.ShortHelpView(bindings)))
	return b.String()
}

func (m Model) currentPanel() (string, int) {
	p := m.current
	target := m.board.Now()
	title := "Semana actual"
	if w, ok := m.board.Editing(); ok {
		target = w
		title = "Semana de " + w.String()
	}
	lines := []string{m.th.Panel.Muted.Render(target.String())}
	if m.board.CurrentFormVisible() {
		lines = append(lines,
			m.board.Greeting(),
			"",
			m.form.View(),
			m.th.Panel.Muted.Render(counter(m.form.Value())),
		)
	} else {
		lines = append(lines, m.th.Panel.Muted.Render(board.MsgReadOnly))
	}
	p.SetContent(title, lines...)
	return p.View()
}

func counter(text string) string {
	d := submit.Draft{Text: text}
	return d.Counter()
}
