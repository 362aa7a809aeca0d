package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"formnav/internal/ui/theme"
)

// FormSubmitMsg carries the tagged save request built by the form.
type FormSubmitMsg struct {
	Kind     string
	Index    int
	Label    string
	Fragment string
}

// FormCancelMsg is emitted when the user presses esc.
type FormCancelMsg struct{}

var hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)

// Form edits one bookmark. Kind is "add" or "edit"; Index is only meaningful
// for edits.
type Form struct {
	label    textinput.Model
	fragment textinput.Model
	kind     string
	index    int
	focus    int
	visible  bool
	width    int
}

func NewForm() Form {
	label := textinput.New()
	label.Placeholder = "Form 1041 - Estates and Trusts"
	label.CharLimit = 200
	label.Prompt = "label:    "

	fragment := textinput.New()
	fragment.Placeholder = "/71/22/0/0,0,0,0,0"
	fragment.CharLimit = 512
	fragment.Prompt = "fragment: "

	return Form{label: label, fragment: fragment}
}

func (f Form) Visible() bool { return f.visible }

// OpenAdd shows an empty add form, optionally prefilled from a capture.
func (f *Form) OpenAdd(label, fragment string) tea.Cmd {
	return f.open("add", 0, label, fragment)
}

func (f *Form) OpenEdit(index int, label, fragment string) tea.Cmd {
	return f.open("edit", index, label, fragment)
}

func (f *Form) SetWidth(w int) { f.width = w }

func (f *Form) open(kind string, index int, label, fragment string) tea.Cmd {
	f.kind, f.index = kind, index
	f.visible = true
	f.label.SetValue(label)
	f.fragment.SetValue(fragment)
	f.focus = 0
	f.fragment.Blur()
	return f.label.Focus()
}

func (f *Form) close() {
	f.visible = false
	f.label.Blur()
	f.fragment.Blur()
}

func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if !f.visible {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			f.close()
			return f, func() tea.Msg { return FormCancelMsg{} }
		case "tab", "shift+tab", "up", "down":
			return f, f.toggleFocus()
		case "enter":
			if f.focus == 0 {
				return f, f.toggleFocus()
			}
			submit := FormSubmitMsg{
				Kind:     f.kind,
				Index:    f.index,
				Label:    strings.TrimSpace(f.label.Value()),
				Fragment: strings.TrimSpace(f.fragment.Value()),
			}
			f.close()
			return f, func() tea.Msg { return submit }
		}
	}
	var cmd tea.Cmd
	if f.focus == 0 {
		f.label, cmd = f.label.Update(msg)
	} else {
		f.fragment, cmd = f.fragment.Update(msg)
	}
	return f, cmd
}

func (f *Form) toggleFocus() tea.Cmd {
	if f.focus == 0 {
		f.focus = 1
		f.label.Blur()
		return f.fragment.Focus()
	}
	f.focus = 0
	f.fragment.Blur()
	return f.label.Focus()
}

func (f Form) View() string {
	if !f.visible {
		return ""
	}
	title := "Add bookmark"
	if f.kind == "edit" {
		title = "Edit bookmark"
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	sb.WriteString(f.label.View() + "\n")
	sb.WriteString(f.fragment.View() + "\n\n")
	sb.WriteString(hintStyle.Render("tab: switch field  enter: next/save  esc: cancel"))

	w := f.width
	if w < 20 {
		w = 64
	}
	return theme.Dialog.Width(w - 2).Render(sb.String())
}
