package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensecharts/pkg/config"
	"github.com/matzehuels/licensecharts/pkg/dataset"
	"github.com/matzehuels/licensecharts/pkg/pipeline"
	"github.com/matzehuels/licensecharts/pkg/render/scene"
	"github.com/matzehuels/licensecharts/pkg/source"
)

// chartOpts holds the flags shared by the stacked, upset and inspect commands.
type chartOpts struct {
	output     string  // output file (single format) or base path (multiple)
	formats    string  // comma-separated output formats
	width      float64 // frame width; 0 uses the config
	height     float64 // frame height; 0 uses the config
	x, y, z    string  // stacked field overrides
	xLabel     string
	yLabel     string
	legend     bool
	noTitles   bool
	background string
	scale      float64 // PNG scale factor
	noCache    bool
	refresh    bool
}

// addRenderFlags registers the output and styling flags.
func (o *chartOpts) addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&o.width, "width", 0, "frame width (default from config)")
	cmd.Flags().Float64Var(&o.height, "height", 0, "frame height (default from config)")
	cmd.Flags().BoolVar(&o.legend, "legend", false, "draw a legend of the series colors")
	cmd.Flags().BoolVar(&o.noTitles, "no-titles", false, "omit hover titles")
	cmd.Flags().StringVar(&o.background, "background", "", "background fill color")
	cmd.Flags().Float64Var(&o.scale, "scale", pipeline.DefaultPNGScale, "PNG scale factor")
	o.addFetchFlags(cmd)
}

// addFetchFlags registers the cache flags.
func (o *chartOpts) addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached datasets and artifacts")
}

// addFieldFlags registers the stacked field and label flags.
func (o *chartOpts) addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.x, "x", "x", "", "category field (default from dataset)")
	cmd.Flags().StringVarP(&o.y, "y", "y", "", "value field (default from dataset)")
	cmd.Flags().StringVarP(&o.z, "z", "z", "", "series field (default from dataset)")
	cmd.Flags().StringVar(&o.xLabel, "x-label", "", "x axis label")
	cmd.Flags().StringVar(&o.yLabel, "y-label", "", "y axis label")
}

// stackedCommand creates the stacked bar chart command.
func (c *CLI) stackedCommand() *cobra.Command {
	var opts chartOpts

	cmd := &cobra.Command{
		Use:   "stacked <dataset|file>",
		Short: "Render a stacked bar chart",
		Long: `Render a stacked bar chart from a dataset of the data service or from a
local JSON, YAML or TOML file of records.

Datasets supply their own fields and labels; files need --x, --y and --z.`,
		Example: `  licensecharts stacked license-age -f svg,png
  licensecharts stacked licenses.yaml -x year -y count -z status -o out.svg`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: datasetCompletion(scene.ChartStacked),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runChart(cmd.Context(), scene.ChartStacked, args[0], opts)
		},
	}
	opts.addRenderFlags(cmd)
	opts.addFieldFlags(cmd)
	return cmd
}

// upsetCommand creates the UpSet plot command.
func (c *CLI) upsetCommand() *cobra.Command {
	var opts chartOpts

	cmd := &cobra.Command{
		Use:   "upset <dataset|file>",
		Short: "Render an UpSet plot of set intersections",
		Long: `Render an UpSet plot from a dataset of the data service or from a local
file holding "sets" and "intersections".

The frame width follows from the number of intersections; --width is ignored.`,
		Example:           `  licensecharts upset license-overlap -f svg,pdf -o overlap`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: datasetCompletion(scene.ChartUpSet),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runChart(cmd.Context(), scene.ChartUpSet, args[0], opts)
		},
	}
	opts.addRenderFlags(cmd)
	return cmd
}

// datasetCompletion completes dataset names that draw chart.
func datasetCompletion(chart scene.Chart) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var names []string
		for _, ds := range dataset.ForChart(chart) {
			names = append(names, ds.Name+"\t"+ds.Description)
		}
		return names, cobra.ShellCompDirectiveDefault
	}
}

// runChart renders one chart and writes its artifacts.
func (c *CLI) runChart(ctx context.Context, chart scene.Chart, input string, opts chartOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	popts := buildOptions(cfg, chart, input, opts)

	runner, err := c.newRunner(ctx, cfg, opts.noCache, opts.refresh)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, res.Name, popts.Formats)
	written, err := writeArtifacts(res.Artifacts, paths, popts.Formats)
	if err != nil {
		return err
	}
	prog.done("Rendered " + res.Name)

	if toStdout(written) {
		return nil
	}
	printSuccess("Rendered %s chart of %s", res.Chart, StyleHighlight.Render(res.Name))
	printStats(res)
	for _, path := range written {
		printFile(path)
	}
	printUnknown(res)
	return nil
}

// buildOptions turns flags and config into pipeline options. Flags win over
// the config file.
func buildOptions(cfg config.Config, chart scene.Chart, input string, opts chartOpts) pipeline.Options {
	theme := cfg.Theme()
	popts := pipeline.Options{
		Chart:      string(chart),
		X:          opts.x,
		Y:          opts.y,
		Z:          opts.z,
		XLabel:     opts.xLabel,
		YLabel:     opts.yLabel,
		Width:      opts.width,
		Height:     opts.height,
		Formats:    parseFormats(opts.formats),
		Legend:     opts.legend,
		NoTitles:   opts.noTitles,
		Background: opts.background,
		PNGScale:   opts.scale,
		Refresh:    opts.refresh,
		Theme:      &theme,
	}
	if source.IsFile(input) {
		popts.File = input
	} else {
		popts.Dataset = input
	}
	if chart == scene.ChartStacked {
		if popts.Width == 0 {
			popts.Width = cfg.Stacked.Width
		}
		if popts.Height == 0 {
			popts.Height = cfg.Stacked.Height
		}
	}
	return popts
}

func toStdout(paths []string) bool {
	for _, p := range paths {
		if p == stdoutPath {
			return true
		}
	}
	return false
}

// printUnknown warns about intersection labels that name no set.
func printUnknown(res *pipeline.Result) {
	if len(res.Unknown) == 0 {
		return
	}
	labels := make([]string, len(res.Unknown))
	for i, u := range res.Unknown {
		labels[i] = fmt.Sprintf("%s (column %d)", u.Label, u.Column+1)
	}
	printWarning("Unknown sets: %s", strings.Join(labels, ", "))
}

// quietLogger returns a copy of the CLI logger that only reports warnings,
// unless debug logging is on. Used where a spinner owns the terminal.
func (c *CLI) quietLogger() *log.Logger {
	l := c.Logger.With()
	if l.GetLevel() > log.DebugLevel && l.GetLevel() < log.WarnLevel {
		l.SetLevel(log.WarnLevel)
	}
	return l
}
