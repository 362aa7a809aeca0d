package bookmarks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bridgedto "formnav/internal/modules/bridge/dto"
	"formnav/internal/ui/theme"
)

type bookmarkItem struct {
	bookmark bridgedto.Bookmark
}

func (i bookmarkItem) Title() string       { return i.bookmark.Label }
func (i bookmarkItem) Description() string { return i.bookmark.Fragment }
func (i bookmarkItem) FilterValue() string { return i.bookmark.Label }

type Model struct {
	list    list.Model
	pageURL string
	width   int
	height  int
}

// New renders bookmarks relative to pageURL, the location navigation starts
// from.
func New(pageURL string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Bookmarks"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{list: l, pageURL: pageURL}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.list.SetSize(m.listWidth(), m.height)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SetBookmarks replaces the list while keeping the cursor in range.
func (m *Model) SetBookmarks(items []bridgedto.Bookmark) tea.Cmd {
	cursor := m.list.Index()
	listItems := make([]list.Item, len(items))
	for i, b := range items {
		listItems[i] = bookmarkItem{bookmark: b}
	}
	cmd := m.list.SetItems(listItems)
	if cursor >= len(listItems) {
		cursor = len(listItems) - 1
	}
	if cursor >= 0 {
		m.list.Select(cursor)
	}
	return cmd
}

func (m Model) Selected() (bridgedto.Bookmark, bool) {
	if item, ok := m.list.SelectedItem().(bookmarkItem); ok {
		return item.bookmark, true
	}
	return bridgedto.Bookmark{}, false
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the list's search filter is open, in which case
// global keys must yield.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) View() string {
	listW := m.listWidth()
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := theme.Pane.
		Width(max(detailW-2, 10)).
		Height(max(m.height-2, 1)).
		Render(m.renderDetail())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) listWidth() int {
	return m.width * 5 / 10
}

func (m Model) renderDetail() string {
	b, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No bookmarks yet. Press a to add one or c to capture the live page.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(b.Label) + "\n\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("index:    "), b.Index))
	sb.WriteString(theme.Muted.Render("fragment: ") + b.Fragment + "\n")
	if m.pageURL != "" {
		sb.WriteString(theme.Muted.Render("from:     ") + m.pageURL + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: navigate  e: edit  d: delete"))
	return sb.String()
}
