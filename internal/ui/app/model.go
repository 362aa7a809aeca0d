package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"formnav/internal/modules/bridge/dto"
	bridgein "formnav/internal/modules/bridge/port/in"
	"formnav/internal/ui/components"
	"formnav/internal/ui/theme"
	bookmarksview "formnav/internal/ui/views/bookmarks"
)

const requestTimeout = 15 * time.Second

// Bridge is the only thing the panel talks to. It may be in-process or a
// remote JSON-RPC client.
type Bridge interface {
	Handle(ctx context.Context, req dto.Request) (dto.Response, error)
}

type localBridge struct {
	usecase   bridgein.Usecase
	sessionID string
}

// NewLocalBridge runs requests against an in-process bridge under one
// session.
func NewLocalBridge(usecase bridgein.Usecase) Bridge {
	return localBridge{usecase: usecase, sessionID: usecase.OpenSession("tui")}
}

func (b localBridge) Handle(ctx context.Context, req dto.Request) (dto.Response, error) {
	return b.usecase.Handle(ctx, b.sessionID, req), nil
}

// ─── messages ────────────────────────────────────────────────────────────────

type responseMsg struct {
	action string
	resp   dto.Response
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Navigate key.Binding
	Add      key.Binding
	Capture  key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Sync     key.Binding
	Refresh  key.Binding
	Toggle   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Navigate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "navigate")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Capture:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "capture live page")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Sync:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "retry save")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Toggle:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "toggle panel")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Add, k.Edit, k.Delete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.Add, k.Capture, k.Edit, k.Delete},
		{k.Sync, k.Refresh, k.Toggle},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the bookmark panel. Confirmation of deletes and add/edit mode live
// here; the bridge only ever sees finished requests.
type Model struct {
	bridge  Bridge
	pageURL string
	launch  bool

	view     bookmarksview.Model
	form     components.Form
	keys     keyMap
	help     help.Model
	showHelp bool

	pendingDelete *dto.Bookmark
	status        string
	statusErr     bool
	width         int
	height        int
}

// NewModel navigates relative to pageURL. With launch set, navigation opens
// the target instead of only reporting it.
func NewModel(bridge Bridge, pageURL string, launch bool) Model {
	return Model{
		bridge:  bridge,
		pageURL: pageURL,
		launch:  launch,
		view:    bookmarksview.New(pageURL),
		form:    components.NewForm(),
		keys:    defaultKeys(),
		help:    help.New(),
		status:  "loading…",
	}
}

func (m Model) Init() tea.Cmd {
	return m.send(dto.Request{Action: "list"})
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form.Visible() {
		if _, isResp := msg.(responseMsg); !isResp {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(tea.WindowSizeMsg{Width: m.width, Height: max(m.height-2, 1)})
		return m, cmd

	case responseMsg:
		return m.applyResponse(msg)

	case components.FormSubmitMsg:
		m.status = "saving…"
		tag := &dto.SaveTag{Kind: msg.Kind}
		if msg.Kind == dto.SaveKindEdit {
			index := msg.Index
			tag.Index = &index
		}
		return m, m.send(dto.Request{
			Action:   "save",
			Save:     tag,
			Label:    msg.Label,
			Fragment: msg.Fragment,
		})

	case components.FormCancelMsg:
		m.setStatus("cancelled", false)
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.pendingDelete != nil {
			return m.confirmDelete(msg)
		}
		if m.view.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Navigate):
			if b, ok := m.view.Selected(); ok {
				index := b.Index
				return m, m.send(dto.Request{Action: "navigate", URL: m.pageURL, Index: &index, Launch: m.launch})
			}
			return m, nil
		case key.Matches(msg, m.keys.Add):
			return m, m.form.OpenAdd("", "")
		case key.Matches(msg, m.keys.Capture):
			m.status = "capturing…"
			return m, m.send(dto.Request{Action: "capture", Live: true})
		case key.Matches(msg, m.keys.Edit):
			if b, ok := m.view.Selected(); ok {
				return m, m.form.OpenEdit(b.Index, b.Label, b.Fragment)
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if b, ok := m.view.Selected(); ok {
				m.pendingDelete = &b
				m.setStatus(fmt.Sprintf("delete %q? y/n", b.Label), true)
			}
			return m, nil
		case key.Matches(msg, m.keys.Sync):
			return m, m.send(dto.Request{Action: "sync"})
		case key.Matches(msg, m.keys.Refresh):
			return m, m.send(dto.Request{Action: "list"})
		case key.Matches(msg, m.keys.Toggle):
			return m, m.send(dto.Request{Action: "togglePanel"})
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) confirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.pendingDelete
	m.pendingDelete = nil
	switch msg.String() {
	case "y", "Y":
		index := target.Index
		m.status = "deleting…"
		return m, m.send(dto.Request{Action: "remove", Index: &index})
	default:
		m.setStatus("kept "+target.Label, false)
		return m, nil
	}
}

func (m Model) applyResponse(msg responseMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus("bridge: "+msg.err.Error(), true)
		return m, nil
	}
	resp := msg.resp
	var cmd tea.Cmd
	if resp.Bookmarks != nil {
		cmd = m.view.SetBookmarks(resp.Bookmarks)
	}
	if !resp.OK() {
		m.setStatus(resp.Code+": "+resp.Error, true)
		return m, cmd
	}

	switch msg.action {
	case "list":
		m.setStatus(fmt.Sprintf("%d bookmarks", len(resp.Bookmarks)), false)
	case "save":
		m.setStatus("saved", false)
	case "remove":
		m.setStatus("deleted", false)
	case "sync":
		m.setStatus("in sync with storage", false)
	case "togglePanel":
		if resp.Visible != nil && *resp.Visible {
			m.setStatus("panel shown", false)
		} else {
			m.setStatus("panel hidden", false)
		}
	case "navigate":
		if resp.Launched {
			m.setStatus("opened "+resp.Target, false)
		} else {
			m.setStatus("target "+resp.Target, false)
		}
	case "capture":
		if resp.Capturable == nil || !*resp.Capturable {
			m.setStatus("this page has no bookmarkable location", true)
			return m, cmd
		}
		return m, tea.Batch(cmd, m.form.OpenAdd(resp.Label, resp.Fragment))
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).
		Render(theme.Hot.Render(" formnav ") + theme.Muted.Render(m.pageURL))
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.form.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.form.View())
	default:
		content = m.view.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderStatusBar() string {
	left := theme.OK.Render(m.status)
	if m.statusErr {
		left = theme.Error.Render(m.status)
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) send(req dto.Request) tea.Cmd {
	bridge := m.bridge
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := bridge.Handle(ctx, req)
		return responseMsg{action: req.Action, resp: resp, err: err}
	}
}
