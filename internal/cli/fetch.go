package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/licensecharts/pkg/dataset"
)

// fetchCommand creates the fetch command, which relays a dataset body.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		opts   chartOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "fetch <dataset>",
		Short: "Download a dataset from the data service",
		Long: `Download a dataset and write its JSON body unmodified to stdout or to a
file. Bodies are cached like those fetched for charts.`,
		Example: `  licensecharts fetch states
  licensecharts fetch license-age -o license-age.json`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return dataset.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	opts.addFetchFlags(cmd)
	return cmd
}

func (c *CLI) runFetch(ctx context.Context, name, output string, opts chartOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache, opts.refresh)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	data, err := runner.FetchDataset(ctx, name)
	if err != nil {
		return err
	}
	if err := writeFile(output, data); err != nil {
		return err
	}
	prog.done("Fetched " + name)

	if output != "" && output != stdoutPath {
		printSuccess("Fetched %s", StyleHighlight.Render(name))
		printDetail("%s", formatBytes(len(data)))
		printFile(output)
	}
	return nil
}
