// Package tui is the interactive terminal front end: the two task lists,
// an add-task input, a search input, in-place editing, keyboard reordering
// and a toast line for operation outcomes.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskorg/internal/notify"
	"taskorg/internal/remote"
	"taskorg/internal/tasks"
)

// ToastTTL is how long a notification stays on screen.
const ToastTTL = 3 * time.Second

const (
	msgCopied     = "Copied to clipboard."
	msgCopyFailed = "Failed to copy task!"
	msgHidden     = "Recently Deleted hidden until the next reload."
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeSearch
	modeEdit
)

type op string

const (
	opLoad    op = "load"
	opCreate  op = "create"
	opDelete  op = "delete"
	opRestore op = "restore"
	opRename  op = "rename"
	opPurge   op = "purge"
	opClear   op = "clear"
)

// opDoneMsg reports a finished controller operation.
type opDoneMsg struct {
	op  op
	err error
}

// toastExpiredMsg hides the toast with the given sequence number.
type toastExpiredMsg struct {
	seq int
}

type toast struct {
	tasks.Notification
	seq int
}

// Model is the bubbletea model of the interactive UI.
type Model struct {
	ctx    context.Context
	ctrl   *tasks.Controller
	inbox  *inbox
	logger *slog.Logger
	copyFn func(string) error

	keys   keyMap
	help   help.Model
	input  textinput.Model
	search textinput.Model
	edit   textinput.Model

	mode   mode
	focus  tasks.List
	cursor [2]int

	toast    *toast
	toastSeq int

	width  int
	height int
}

// New creates a model over a remote store. Outcomes are shown as toasts and
// logged on logger. opts are passed on to the controller.
func New(ctx context.Context, rs remote.Store, logger *slog.Logger, opts ...tasks.Option) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	box := &inbox{}
	opts = append([]tasks.Option{
		tasks.WithLogger(logger),
		tasks.WithNotifier(notify.Multi(box, notify.NewLog(logger))),
	}, opts...)
	ctrl := tasks.NewController(rs, opts...)

	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = "+ "

	search := textinput.New()
	search.Placeholder = "Search tasks"
	search.Prompt = "/ "

	edit := textinput.New()
	edit.Prompt = "✎ "

	return Model{
		ctx:    ctx,
		ctrl:   ctrl,
		inbox:  box,
		logger: logger,
		copyFn: clipboard.WriteAll,
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  input,
		search: search,
		edit:   edit,
		focus:  tasks.ActiveList,
	}
}

// Run starts the interactive UI and blocks until it exits.
func Run(ctx context.Context, rs remote.Store, logger *slog.Logger, opts ...tasks.Option) error {
	p := tea.NewProgram(New(ctx, rs, logger, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Controller returns the controller behind the model.
func (m Model) Controller() *tasks.Controller {
	return m.ctrl
}

func (m Model) Init() tea.Cmd {
	return m.run(opLoad, m.ctrl.Load)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 4
		m.search.Width = msg.Width - 4
		m.edit.Width = msg.Width - 8
		return m, nil

	case opDoneMsg:
		return m.handleDone(msg)

	case toastExpiredMsg:
		if m.toast != nil && m.toast.seq == msg.seq {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.cursor[m.focus]--
		m.clamp()
	case key.Matches(msg, m.keys.Down):
		m.cursor[m.focus]++
		m.clamp()
	case key.Matches(msg, m.keys.Switch):
		if m.focus == tasks.ActiveList {
			m.focus = tasks.DeletedList
		} else {
			m.focus = tasks.ActiveList
		}
		m.clamp()
	case key.Matches(msg, m.keys.MoveUp):
		m.reorder(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m.reorder(1)
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Reload):
		return m, m.run(opLoad, m.ctrl.Load)
	case key.Matches(msg, m.keys.Clear):
		return m, m.run(opClear, m.ctrl.ClearDeleted)
	case key.Matches(msg, m.keys.Hide):
		if m.ctrl.HideDeleted() > 0 {
			m.clamp()
			cmd := m.showToast(tasks.Notification{Severity: tasks.SeverityInfo, Message: msgHidden})
			return m, cmd
		}
	case key.Matches(msg, m.keys.Copy):
		if t, ok := m.selected(); ok {
			cmd := m.copy(t.Name)
			return m, cmd
		}
	default:
		return m.updateSelection(msg)
	}
	return m, nil
}

// updateSelection handles the keys that act on the selected task.
func (m Model) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	ctx, id := m.ctx, t.ID

	if m.focus == tasks.ActiveList {
		switch {
		case key.Matches(msg, m.keys.Edit):
			if err := m.ctrl.BeginEdit(id); err != nil {
				return m, nil
			}
			m.mode = modeEdit
			m.edit.SetValue(t.Name)
			m.edit.CursorEnd()
			return m, m.edit.Focus()
		case key.Matches(msg, m.keys.Delete):
			return m, m.run(opDelete, func(context.Context) error { return m.ctrl.SoftDelete(ctx, id) })
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Restore):
		return m, m.run(opRestore, func(context.Context) error { return m.ctrl.Restore(ctx, id) })
	case key.Matches(msg, m.keys.Purge):
		return m, m.run(opPurge, func(context.Context) error { return m.ctrl.Purge(ctx, id) })
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		name := m.input.Value()
		ctx := m.ctx
		return m, m.run(opCreate, func(context.Context) error { return m.ctrl.Create(ctx, name) })
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetInput(m.input.Value())
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.SetValue("")
		m.ctrl.SetSearch("")
		fallthrough
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.search.Blur()
		m.clamp()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetSearch(m.search.Value())
	m.clamp()
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.CancelEdit()
		m.mode = modeBrowse
		m.edit.Blur()
		return m, nil
	case tea.KeyEnter:
		return m, m.run(opRename, m.ctrl.CommitEdit)
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.ctrl.SetDraft(m.edit.Value())
	return m, cmd
}

func (m Model) handleDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Debug("operation finished with error", "op", msg.op, "err", msg.err)
	}
	st := m.ctrl.State()

	switch msg.op {
	case opCreate:
		m.input.SetValue(st.Input)
	case opRename:
		if st.Editing == nil {
			m.mode = modeBrowse
			m.edit.Blur()
		} else {
			m.edit.SetValue(st.Editing.Draft)
		}
	}
	if m.mode == modeEdit && st.Editing == nil {
		// The edited task left the active list.
		m.mode = modeBrowse
		m.edit.Blur()
	}
	m.clamp()

	notes := m.inbox.drain()
	if len(notes) == 0 {
		return m, nil
	}
	cmd := m.showToast(notes[len(notes)-1])
	return m, cmd
}

// run executes f off the UI goroutine and reports completion.
func (m Model) run(o op, f func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: o, err: f(ctx)}
	}
}

func (m *Model) showToast(n tasks.Notification) tea.Cmd {
	m.toastSeq++
	seq := m.toastSeq
	m.toast = &toast{Notification: n, seq: seq}
	return tea.Tick(ToastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m *Model) copy(name string) tea.Cmd {
	if err := m.copyFn(name); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		return m.showToast(tasks.Notification{Severity: tasks.SeverityError, Message: msgCopyFailed})
	}
	return m.showToast(tasks.Notification{Severity: tasks.SeveritySuccess, Message: msgCopied})
}

// reorder moves the selected task past its visible neighbour in direction
// dir (-1 up, +1 down).
func (m *Model) reorder(dir int) {
	entries := m.entries(m.focus)
	cur := m.cursor[m.focus]
	next := cur + dir
	if cur < 0 || cur >= len(entries) || next < 0 || next >= len(entries) {
		return
	}
	moved := m.ctrl.Reorder(tasks.ReorderEvent{
		SourceList: m.focus,
		Source:     entries[cur].Index,
		DestList:   m.focus,
		Dest:       entries[next].Index,
	})
	if moved {
		m.cursor[m.focus] = next
	}
}

func (m Model) entries(l tasks.List) []tasks.Entry {
	v := m.ctrl.View()
	if l == tasks.DeletedList {
		return v.Deleted
	}
	return v.Tasks
}

func (m Model) selected() (tasks.Task, bool) {
	entries := m.entries(m.focus)
	cur := m.cursor[m.focus]
	if cur < 0 || cur >= len(entries) {
		return tasks.Task{}, false
	}
	return entries[cur].Task, true
}

// clamp keeps both cursors inside their filtered lists.
func (m *Model) clamp() {
	v := m.ctrl.View()
	for l, n := range map[tasks.List]int{tasks.ActiveList: len(v.Tasks), tasks.DeletedList: len(v.Deleted)} {
		if m.cursor[l] >= n {
			m.cursor[l] = n - 1
		}
		if m.cursor[l] < 0 {
			m.cursor[l] = 0
		}
	}
}
