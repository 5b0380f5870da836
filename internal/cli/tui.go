package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gvexport/pkg/format"
)

// =============================================================================
// FormatListModel - Interactive format selection
// =============================================================================

// FormatListModel is the bubbletea model for interactive format selection.
// Typing narrows the list to formats whose name, token or description
// contains the filter text.
type FormatListModel struct {
	Formats  []format.Format // every selectable format
	Filter   string
	Cursor   int // index into Visible()
	Offset   int
	Height   int
	Selected *format.Format
}

// NewFormatListModel creates a picker over formats, starting on the
// catalog default when it is present.
func NewFormatListModel(formats []format.Format) FormatListModel {
	m := FormatListModel{Formats: formats, Height: 15}
	for i, f := range formats {
		if f == format.Default {
			m.Cursor = i
			m.scroll()
			break
		}
	}
	return m
}

// Visible returns the formats matching the current filter.
func (m FormatListModel) Visible() []format.Format {
	if m.Filter == "" {
		return m.Formats
	}
	needle := strings.ToLower(m.Filter)
	var out []format.Format
	for _, f := range m.Formats {
		if strings.Contains(f.String(), needle) ||
			strings.Contains(f.Token(), needle) ||
			strings.Contains(strings.ToLower(f.Description()), needle) {
			out = append(out, f)
		}
	}
	return out
}

func (m FormatListModel) Init() tea.Cmd {
	return nil
}

func (m FormatListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				m.scroll()
			}
		case tea.KeyDown:
			if m.Cursor < len(m.Visible())-1 {
				m.Cursor++
				m.scroll()
			}
		case tea.KeyEnter:
			visible := m.Visible()
			if len(visible) == 0 {
				return m, nil
			}
			f := visible[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.Filter != "" {
				_, size := utf8.DecodeLastRuneInString(m.Filter)
				m.Filter = m.Filter[:len(m.Filter)-size]
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll()
	}
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *FormatListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m FormatListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Output Format"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString(StyleHighlight.Render("filter: " + m.Filter))
	}
	b.WriteString("\n")

	visible := m.Visible()
	end := min(m.Offset+m.Height, len(visible))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, f.String(), "-T" + f.Token(), f.Description()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Flag", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return StyleDim
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(visible) == 0 {
		b.WriteString(StyleWarning.Render("  no format matches"))
	} else {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(visible))))
	}

	return b.String()
}
