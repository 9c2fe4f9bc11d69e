package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aigkit/pkg/aiger"
	apperrors "github.com/matzehuels/aigkit/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command, an interactive circuit viewer.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore <circuit>",
		Short: "Interactively toggle inputs and watch the outputs",
		Long: `Interactively toggle inputs and watch the outputs.

Opens a terminal view with one row per input. Flipping a bit
re-evaluates the whole circuit immediately, which makes it easy to
probe how a circuit responds without writing vectors by hand. Only
combinational circuits are supported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(args[0])
		},
	}
}

// runExplore validates the circuit and hands it to the TUI.
func (c *CLI) runExplore(path string) error {
	file, err := readFile(path)
	if err != nil {
		return err
	}
	if len(file.Graph.Latches()) > 0 {
		return apperrors.New(apperrors.ErrCodeUnsupported, "explore requires a combinational circuit")
	}

	model, err := newExploreModel(file)
	if err != nil {
		return classify(err)
	}

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	return nil
}

// =============================================================================
// ExploreModel - Interactive input toggling
// =============================================================================

// exploreModel is the bubbletea model for the explore command.
type exploreModel struct {
	file    *aiger.File
	inputs  []uint32
	values  []bool
	outputs []bool
	cursor  int
	height  int
	offset  int
}

// newExploreModel builds the model and runs the first evaluation, so a
// broken circuit fails before the terminal switches modes.
func newExploreModel(file *aiger.File) (exploreModel, error) {
	m := exploreModel{
		file:   file,
		inputs: file.Graph.Inputs(),
		height: 15,
	}
	m.values = make([]bool, len(m.inputs))
	if err := m.recompute(); err != nil {
		return exploreModel{}, err
	}
	return m, nil
}

// recompute re-evaluates the circuit under the current input assignment.
func (m *exploreModel) recompute() error {
	values, err := m.file.Graph.Eval(m.values)
	if err != nil {
		return err
	}
	outs, err := m.file.Graph.OutputValues(values)
	if err != nil {
		return err
	}
	m.outputs = outs
	return nil
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.inputs)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ", "enter", "t":
			if len(m.inputs) > 0 {
				m.values[m.cursor] = !m.values[m.cursor]
				_ = m.recompute()
			}
		case "r":
			for i := range m.values {
				m.values[i] = false
			}
			_ = m.recompute()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10 - len(m.outputs)
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Circuit"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  r reset  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.inputs) {
		end = len(m.inputs)
	}

	for i := m.offset; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-16s %s", cursor, inputName(m.file, i), bitText(m.values[i]))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 28)))
	b.WriteString("\n")

	for i, v := range m.outputs {
		line := fmt.Sprintf("  %-16s %s", outputName(m.file, i), bitText(v))
		b.WriteString(listNormalStyle.Render(line))
		b.WriteString("\n")
	}

	if len(m.inputs) > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.inputs))))
	}

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// bitText renders a single bit, bright when set.
func bitText(v bool) string {
	if v {
		return StyleSuccess.Render("1")
	}
	return listDimStyle.Render("0")
}

// inputName returns the symbol table name of the i-th input, or the
// AIGER positional name when the file carries no symbol for it.
func inputName(f *aiger.File, i int) string {
	if name, ok := f.Symbols.Inputs[i]; ok {
		return name
	}
	return fmt.Sprintf("i%d", i)
}

func outputName(f *aiger.File, i int) string {
	if name, ok := f.Symbols.Outputs[i]; ok {
		return name
	}
	return fmt.Sprintf("o%d", i)
}
