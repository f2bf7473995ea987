package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/licensecharts/internal/cli"
	"github.com/matzehuels/licensecharts/pkg/buildinfo"
	"github.com/matzehuels/licensecharts/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if stderrors.Is(err, context.Canceled) {
			os.Exit(130) // shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, cli.StyleWarning.Render("error:"), err)
		if code := errors.GetCode(err); code != "" {
			fmt.Fprintln(os.Stderr, cli.StyleDim.Render("code: "+string(code)))
		}
		os.Exit(errors.ExitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		c.Logger.Debug("starting", buildinfo.KeyVals()...)
		return nil
	}

	return root.ExecuteContext(ctx)
}
