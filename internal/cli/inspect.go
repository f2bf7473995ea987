package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensecharts/pkg/pipeline"
	"github.com/matzehuels/licensecharts/pkg/render/scene"
	"github.com/matzehuels/licensecharts/pkg/render/sink"
)

// inspectCommand creates the inspect command, which lays out a chart and
// summarizes its scene without writing files.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		opts  chartOpts
		chart string
	)

	cmd := &cobra.Command{
		Use:   "inspect <dataset|file>",
		Short: "Summarize the scene of a chart",
		Long: `Lay out a chart and print its frame size, primitive counts, timings and
any intersection labels that name no set. Nothing is written to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := scene.Chart(chart)
			if chart != "" {
				var err error
				if kind, err = scene.ParseChart(chart); err != nil {
					return err
				}
			}
			return c.runInspect(cmd.Context(), kind, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&chart, "chart", "", "chart kind for files: stacked (default) or upset")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (default from config)")
	opts.addFieldFlags(cmd)
	opts.addFetchFlags(cmd)
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, chart scene.Chart, input string, opts chartOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts.formats = string(sink.FormatJSON)
	popts := buildOptions(cfg, chart, input, opts)

	runner, err := c.newRunner(ctx, cfg, opts.noCache, opts.refresh)
	if err != nil {
		return err
	}
	defer runner.Close()
	runner.Logger = c.quietLogger()

	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(res.Name))
	printKeyValue("Chart", string(res.Chart))
	printKeyValue("Frame", fmt.Sprintf("%g × %g", res.Scene.Width, res.Scene.Height))
	printKeyValue("Items", strconv.Itoa(res.Stats.Items))
	printKeyValue("Data", formatBytes(res.Stats.Bytes)+" "+StyleDim.Render(res.DataHash[:12]))
	printKeyValue("Run", res.RunID)
	printNewline()
	fmt.Println(sceneTable(res))
	printUnknown(res)
	return nil
}

// sceneTable renders primitive counts per kind and stage timings.
func sceneTable(res *pipeline.Result) string {
	counts := res.Scene.Counts()
	rows := make([][]string, 0, len(scene.Kinds)+1)
	for _, k := range scene.Kinds {
		rows = append(rows, []string{string(k), strconv.Itoa(counts[k])})
	}
	rows = append(rows, []string{"total", strconv.Itoa(len(res.Scene.Primitives))})

	timings := []string{
		res.Stats.FetchTime.Round(time.Microsecond).String(),
		res.Stats.LayoutTime.Round(time.Microsecond).String(),
		res.Stats.RenderTime.Round(time.Microsecond).String(),
	}
	stages := []string{"fetch", "layout", "render"}
	for i := range rows {
		if i < len(stages) {
			rows[i] = append(rows[i], stages[i], timings[i])
		} else {
			rows[i] = append(rows[i], "", "")
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Primitive", "Count", "Stage", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1 || col == 3:
				return lipgloss.NewStyle().Foreground(colorTeal).Align(lipgloss.Right)
			case row == len(rows)-1:
				return lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}
