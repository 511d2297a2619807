// Command klondiff-tui is an interactive pager: a scrollable viewer over
// the same hunk data cmd/klondiff renders statically, with a live
// matcher-strategy switch.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/klondiff/klondiff/internal/cliapp"
	"github.com/klondiff/klondiff/internal/matcher"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "5", Dark: "5"}).
			Padding(0, 1)

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "8"}).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "8"}).
			Background(lipgloss.AdaptiveColor{Light: "0", Dark: "0"})

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
			Foreground(lipgloss.AdaptiveColor{Light: "7", Dark: "7"})

	contentStyle = lipgloss.NewStyle().Padding(1, 2)

	oldLineStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "1"})
	newLineStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "2"})
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "6", Dark: "6"})
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "8"})
)

type model struct {
	fileA, fileB string
	linesA       []string
	linesB       []string
	kind         cliapp.MatcherKind
	result       cliapp.Result
	err          error

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func newModel(fileA, fileB string, kind cliapp.MatcherKind) (model, error) {
	m := model{fileA: fileA, fileB: fileB, kind: kind}
	if err := m.reload(); err != nil {
		return model{}, err
	}
	return m, nil
}

func (m *model) reload() error {
	if m.linesA == nil {
		a, err := readFile(m.fileA)
		if err != nil {
			return err
		}
		b, err := readFile(m.fileB)
		if err != nil {
			return err
		}
		m.linesA, m.linesB = a, b
	}
	res, err := cliapp.Diff(cliapp.Options{Matcher: m.kind, Context: 3}, m.linesA, m.linesB)
	if err != nil {
		return err
	}
	m.result = res
	return nil
}

func readFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return strings.SplitAfter(string(data), "\n"), nil
}

func (m model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		verticalMargin := 2

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.YPosition = 1
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}
		m.updateViewportContent()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "1":
			m.kind = cliapp.Difflib
			if err := m.reload(); err != nil {
				m.err = err
			}
			m.updateViewportContent()
		case "2":
			m.kind = cliapp.Patience
			if err := m.reload(); err != nil {
				m.err = err
			}
			m.updateViewportContent()
		case "3":
			m.kind = cliapp.Klondike
			if err := m.reload(); err != nil {
				m.err = err
			}
			m.updateViewportContent()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) updateViewportContent() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, h := range m.result.Hunks {
		first, last := h.Ops[0], h.Ops[len(h.Ops)-1]
		b.WriteString(metaStyle.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			first.I1+1, last.I2-first.I1, first.J1+1, last.J2-first.J1)))
		b.WriteString("\n")
		for _, op := range h.Ops {
			switch op.Tag {
			case matcher.Equal:
				for i := op.I1; i < op.I2; i++ {
					b.WriteString("  " + strings.TrimRight(m.linesA[i], "\n") + "\n")
				}
			case matcher.Replace, matcher.Delete:
				for i := op.I1; i < op.I2; i++ {
					b.WriteString(oldLineStyle.Render("- "+strings.TrimRight(m.linesA[i], "\n")) + "\n")
				}
				if op.Tag == matcher.Replace {
					for j := op.J1; j < op.J2; j++ {
						b.WriteString(newLineStyle.Render("+ "+strings.TrimRight(m.linesB[j], "\n")) + "\n")
					}
				}
			case matcher.Insert:
				for j := op.J1; j < op.J2; j++ {
					b.WriteString(newLineStyle.Render("+ "+strings.TrimRight(m.linesB[j], "\n")) + "\n")
				}
			}
		}
	}
	m.viewport.SetContent(contentStyle.Render(b.String()))
}

func (m model) View() string {
	if m.err != nil {
		return oldLineStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	header := lipgloss.JoinHorizontal(
		lipgloss.Left,
		titleStyle.Render("klondiff"),
		counterStyle.Render(fmt.Sprintf("%s vs %s — %s (%d hunks)", m.fileA, m.fileB, m.kind, len(m.result.Hunks))),
	)
	headerStyled := statusBarStyle.Width(m.width).Render(header)

	footer := helpStyle.Render(
		keyStyle.Render("[1]") + " difflib  " +
			keyStyle.Render("[2]") + " patience  " +
			keyStyle.Render("[3]") + " klondike  " +
			keyStyle.Render("[q]") + " quit",
	)
	footerStyled := statusBarStyle.Width(m.width).Render(footer)

	return lipgloss.JoinVertical(lipgloss.Left, headerStyled, m.viewport.View(), footerStyled)
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s file_a file_b\n", os.Args[0])
		os.Exit(2)
	}

	def := cliapp.DefaultMatcherFor(os.Args[0])
	m, err := newModel(os.Args[1], os.Args[2], def)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
