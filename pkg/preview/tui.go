package preview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/smartformat/pkg/feed"
)

// ViewMode represents the current view mode
type ViewMode int

// View modes for the preview TUI
const (
	ListViewMode ViewMode = iota
	DetailViewMode
	XMLViewMode
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model represents the Bubble Tea model for the preview TUI
type Model struct {
	items         []feed.Article
	cursor        int
	viewMode      ViewMode
	feedTitle     string
	width         int
	height        int
	selectedIndex int // Index of the item currently being viewed in detail
}

// NewModel creates a new preview model
func NewModel(items []feed.Article, feedTitle string) Model {
	return Model{
		items:         items,
		viewMode:      ListViewMode,
		feedTitle:     feedTitle,
		selectedIndex: -1,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.viewMode {
		case ListViewMode:
			return m.updateListView(msg)
		case DetailViewMode, XMLViewMode:
			return m.updateDetailView(msg)
		}
	}

	return m, nil
}

// updateListView handles key presses in list view mode
func (m Model) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "home", "g":
		m.cursor = 0

	case "end", "G":
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
		}

	case "enter":
		m.selectedIndex = m.cursor
		m.viewMode = DetailViewMode

	case "x":
		m.selectedIndex = m.cursor
		m.viewMode = XMLViewMode
	}

	return m, nil
}

// updateDetailView handles key presses in detail/XML view modes
func (m Model) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.viewMode = ListViewMode

	case "x":
		// Toggle between detail and XML views
		if m.viewMode == DetailViewMode {
			m.viewMode = XMLViewMode
		} else {
			m.viewMode = DetailViewMode
		}
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	switch m.viewMode {
	case ListViewMode:
		return m.renderListView()
	case DetailViewMode:
		return m.renderDetailView()
	case XMLViewMode:
		return m.renderXMLView()
	}
	return ""
}

// renderListView renders the list view
func (m Model) renderListView() string {
	var b strings.Builder

	header := fmt.Sprintf("Feed Preview - %s (%d items)", m.feedTitle, len(m.items))
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	// Items list
	visibleStart := 0
	visibleEnd := len(m.items)

	// Calculate visible range if height is set
	if m.height > 0 {
		maxVisible := m.height - 6 // Account for header, footer, and padding
		if maxVisible < len(m.items) {
			// Keep cursor in the middle of the screen when possible
			visibleStart = m.cursor - maxVisible/2
			if visibleStart < 0 {
				visibleStart = 0
			}
			visibleEnd = visibleStart + maxVisible
			if visibleEnd > len(m.items) {
				visibleEnd = len(m.items)
				visibleStart = visibleEnd - maxVisible
				if visibleStart < 0 {
					visibleStart = 0
				}
			}
		}
	}

	for i := visibleStart; i < visibleEnd; i++ {
		item := m.items[i]
		line := FormatCompactListItem(i, item)

		if i == m.cursor {
			b.WriteString(selectedStyle.Render("→ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	footer := "↑/↓ or j/k: navigate • g/G: first/last • enter: view details • x: XML view • q: quit"
	b.WriteString(footerStyle.Render(footer))

	return b.String()
}

// renderDetailView renders the detail view
func (m Model) renderDetailView() string {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return "No item selected"
	}

	item := m.items[m.selectedIndex]
	content := FormatDetailedItem(item)

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n")

	footer := "esc: back to list • x: toggle XML view • q: quit"
	b.WriteString(footerStyle.Render(footer))

	return b.String()
}

// renderXMLView renders the XML view
func (m Model) renderXMLView() string {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return "No item selected"
	}

	item := m.items[m.selectedIndex]
	content := FormatXMLItem(item)

	var b strings.Builder

	b.WriteString(headerStyle.Render("XML Item Preview"))
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n")

	footer := "esc: back to list • x: toggle detail view • q: quit"
	b.WriteString(footerStyle.Render(footer))

	return b.String()
}

// Run starts the Bubble Tea program over the writer's articles
func Run(w *feed.Writer) error {
	items := w.Articles()
	if len(items) == 0 {
		fmt.Println("No items to preview")
		return nil
	}

	title, _ := w.Channel().Get("title")
	p := tea.NewProgram(NewModel(items, title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
