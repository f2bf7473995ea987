package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensecharts/pkg/dataset"
	"github.com/matzehuels/licensecharts/pkg/errors"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// DatasetListModel - Interactive dataset selection
// =============================================================================

// DatasetListModel is the bubbletea model for interactive dataset selection.
// Datasets without a chart are listed but cannot be selected.
type DatasetListModel struct {
	Datasets []dataset.Dataset
	Cursor   int
	Selected *dataset.Dataset
	Height   int
	Offset   int
}

// NewDatasetListModel creates a list positioned on the first chart dataset.
func NewDatasetListModel(all []dataset.Dataset) DatasetListModel {
	m := DatasetListModel{Datasets: all, Height: 10}
	for i, ds := range all {
		if ds.Chart != "" {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m DatasetListModel) Init() tea.Cmd {
	return nil
}

func (m DatasetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Datasets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Datasets) == 0 {
				return m, nil
			}
			ds := m.Datasets[m.Cursor]
			if ds.Chart == "" {
				return m, nil
			}
			m.Selected = &ds
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 3)
	}
	return m, nil
}

func (m DatasetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Dataset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Datasets))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		ds := m.Datasets[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		chart := string(ds.Chart)
		if chart == "" {
			chart = "—"
		}
		rows = append(rows, []string{cursor, ds.Name, chart, ds.Description})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Dataset", "Chart", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Datasets) {
				return lipgloss.NewStyle()
			}
			drawable := m.Datasets[idx].Chart != ""
			current := idx == m.Cursor

			base := lipgloss.NewStyle()
			switch {
			case !drawable:
				return base.Foreground(colorDim).Bold(current)
			case current && col != 3:
				return base.Foreground(colorGreen).Bold(true)
			case current:
				return base.Foreground(colorGray).Bold(true)
			case col == 3:
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorGreen)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Datasets))))

	return b.String()
}

// =============================================================================
// pick command
// =============================================================================

// pickCommand lets the user choose a dataset and renders it.
func (c *CLI) pickCommand() *cobra.Command {
	var opts chartOpts

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a dataset interactively and render it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := NewDatasetListModel(dataset.All())
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "run dataset picker")
			}
			ds := final.(DatasetListModel).Selected
			if ds == nil {
				printInfo("Nothing selected")
				return nil
			}
			if err := c.runChart(cmd.Context(), ds.Chart, ds.Name, opts); err != nil {
				return err
			}
			printNextStep("Render again", fmt.Sprintf("%s %s %s", appName, ds.Chart, ds.Name))
			return nil
		},
	}
	opts.addRenderFlags(cmd)
	return cmd
}
