package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensecharts/pkg/dataset"
)

// datasetsCommand creates the command listing the known datasets.
func (c *CLI) datasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"ls"},
		Short:   "List the datasets of the data service",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(datasetTable(dataset.All()))
			return nil
		},
	}
}

// datasetTable renders the datasets as a bordered table.
func datasetTable(all []dataset.Dataset) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(all))
	for i, ds := range all {
		chart := string(ds.Chart)
		if chart == "" {
			chart = "—"
		}
		rows[i] = []string{ds.Name, chart, "/" + ds.Endpoint, ds.Description}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Dataset", "Chart", "Endpoint", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorTeal)
			case col == 1 && all[row].Chart == "":
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
	return t.Render()
}
