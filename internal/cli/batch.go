package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/licensecharts/pkg/dataset"
	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/pipeline"
)

// renderCommand creates the batch render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts chartOpts
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "render [dataset...]",
		Short: "Render several chart datasets concurrently",
		Long: `Render the named chart datasets, or every dataset that draws a chart,
into a directory. Each dataset is written as <dir>/<dataset>.<format>.`,
		Example: `  licensecharts render -d charts -f svg,png
  licensecharts render license-age licensees`,
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return chartDatasetNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = chartDatasetNames()
			}
			return c.runBatch(cmd.Context(), args, dir, opts)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "draw a legend of the series colors")
	cmd.Flags().BoolVar(&opts.noTitles, "no-titles", false, "omit hover titles")
	cmd.Flags().StringVar(&opts.background, "background", "", "background fill color")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultPNGScale, "PNG scale factor")
	opts.addFetchFlags(cmd)
	return cmd
}

// chartDatasetNames lists the datasets that draw a chart.
func chartDatasetNames() []string {
	var names []string
	for _, ds := range dataset.All() {
		if ds.Chart != "" {
			names = append(names, ds.Name)
		}
	}
	return names
}

// runBatch renders every dataset in names and writes what succeeded. The
// joined error reports the datasets that failed.
func (c *CLI) runBatch(ctx context.Context, names []string, dir string, opts chartOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	all := make([]pipeline.Options, len(names))
	for i, name := range names {
		ds, err := dataset.Lookup(name)
		if err != nil {
			return err
		}
		if ds.Chart == "" {
			return errors.New(errors.ErrCodeInvalidChart, "dataset %q has no chart", name)
		}
		all[i] = buildOptions(cfg, ds.Chart, name, opts)
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache, opts.refresh)
	if err != nil {
		return err
	}
	defer runner.Close()
	runner.Logger = c.quietLogger()

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %d datasets...", len(names)))
	spinner.Start()
	results, runErr := runner.RenderAll(ctx, all)
	spinner.Stop()

	rendered := 0
	for i, res := range results {
		if res == nil {
			printError("%s", names[i])
			continue
		}
		paths := outputPaths("", res.Name, all[i].Formats)
		for f, p := range paths {
			paths[f] = filepath.Join(dir, p)
		}
		written, err := writeArtifacts(res.Artifacts, paths, all[i].Formats)
		if err != nil {
			return err
		}
		rendered++
		printSuccess("%s", StyleHighlight.Render(res.Name))
		printStats(res)
		for _, path := range written {
			printFile(path)
		}
		printUnknown(res)
	}

	if runErr != nil {
		printDetail("%d of %d datasets rendered", rendered, len(names))
		return runErr
	}
	return nil
}
