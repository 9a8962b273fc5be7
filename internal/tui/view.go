package tui

import (
	"fmt"
	"strings"

	"taskorg/internal/output"
	"taskorg/internal/tasks"
)

func (m Model) View() string {
	var b strings.Builder
	st := m.ctrl.State()
	v := m.ctrl.View()

	b.WriteString(titleStyle.Render("taskorg"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.mode == modeSearch || v.Search != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	m.renderSection(&b, tasks.ActiveList, fmt.Sprintf("%s (%d)", output.ActiveTitle, len(st.Tasks)), v.Tasks, st.Editing)
	m.renderSection(&b, tasks.DeletedList, fmt.Sprintf("%s (%d)", output.DeletedTitle, len(st.Deleted)), v.Deleted, nil)

	if m.toast != nil {
		b.WriteString("\n")
		b.WriteString(toastStyle(m.toast.Severity).Render(m.toast.Message))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderSection(b *strings.Builder, l tasks.List, title string, entries []tasks.Entry, editing *tasks.Edit) {
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
	if len(entries) == 0 {
		empty := "No tasks."
		if m.search.Value() != "" {
			empty = "No matching tasks."
		}
		b.WriteString(mutedStyle.Render("  " + empty))
		b.WriteString("\n")
		return
	}

	for i, e := range entries {
		selected := m.focus == l && m.cursor[l] == i
		marker := "  "
		if selected {
			marker = "› "
		}

		if m.mode == modeEdit && editing != nil && editing.ID == e.Task.ID {
			b.WriteString(marker)
			b.WriteString(m.edit.View())
			b.WriteString("\n")
			continue
		}

		line := e.Task.Name
		if l == tasks.DeletedList {
			line = deletedStyle.Render(line)
		}
		if selected {
			line = selectedStyle.Render(e.Task.Name)
		}
		if m.ctrl.Pending(e.Task.ID) {
			line += mutedStyle.Render(" …")
		}
		b.WriteString(marker)
		b.WriteString(line)
		b.WriteString("\n")
	}
}
