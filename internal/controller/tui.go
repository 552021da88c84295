package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"labgrade.dev/pkg/labgrade/internal/adapter"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI with a Bubble Tea pager for saved reports. Everything
// else is printed by the embedded SimpleUI.
type TUI struct {
	*SimpleUI

	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, simple *SimpleUI) *TUI {
	return &TUI{SimpleUI: simple, output: output}
}

// ViewReport opens the feedback document in a scrollable pager. Reports that
// fit on the screen are printed directly.
func (p *TUI) ViewReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := styleFeedback(adapter.RenderFeedback(report))
	model := newPagerModel(fmt.Sprintf("%s  %s/%s", report.Lab,
		adapter.FormatMarks(report.Totals.Total), adapter.FormatMarks(report.Totals.TotalMax)), content)

	if f, ok := p.output.(*os.File); ok {
		_, height, err := term.GetSize(f.Fd())
		if err == nil && !model.needsPagination(height) {
			_, err := fmt.Fprint(p.output, content)
			return err
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// styleFeedback colours checklist lines and headings of a feedback document.
func styleFeedback(doc string) string {
	lines := strings.Split(doc, "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "#"):
			lines[i] = headingStyle.Render(line)
		case strings.Contains(trimmed, "✅"):
			lines[i] = passStyle.Render(line)
		case strings.Contains(trimmed, "❌"), strings.Contains(trimmed, "Missing:"):
			lines[i] = failStyle.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}

// pagerModel is the Bubble Tea model of the report pager.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
	quitting bool
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{title: title, content: content}
}

func (pm pagerModel) needsPagination(height int) bool {
	return lipgloss.Height(pm.content) > height-pm.chromeHeight()
}

func (pm pagerModel) chromeHeight() int {
	return lipgloss.Height(pm.header()) + lipgloss.Height(pm.footer())
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-pm.chromeHeight(), 1)

		if !pm.ready {
			pm.viewport = viewport.New(msg.Width, height)
			pm.viewport.SetContent(pm.content)
			pm.ready = true
		} else {
			pm.viewport.Width = msg.Width
			pm.viewport.Height = height
		}

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			pm.quitting = true
			return pm, tea.Quit
		}
	}

	var cmd tea.Cmd

	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	if !pm.ready {
		return "\n  Loading report..."
	}

	return pm.header() + "\n" + pm.viewport.View() + "\n" + pm.footer()
}

func (pm pagerModel) header() string {
	return titleStyle.Render(pm.title)
}

func (pm pagerModel) footer() string {
	percent := 0.0
	if pm.ready {
		percent = pm.viewport.ScrollPercent() * 100
	}

	return helpStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll • q quit", percent))
}
