package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. Dataset names are
// completed for fetch, stacked, upset and render.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for licensecharts.

Bash:
  $ source <(licensecharts completion bash)

Zsh:
  $ licensecharts completion zsh > "${fpath[1]}/_licensecharts"

Fish:
  $ licensecharts completion fish > ~/.config/fish/completions/licensecharts.fish

PowerShell:
  PS> licensecharts completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
