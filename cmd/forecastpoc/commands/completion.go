package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for forecastpoc.

The script is written to stdout. Source it directly for the current
session, or install it where your shell picks it up:

  bash:        source <(forecastpoc completion bash)
  zsh:         forecastpoc completion zsh > "${fpath[1]}/_forecastpoc"
  fish:        forecastpoc completion fish > ~/.config/fish/completions/forecastpoc.fish
  powershell:  forecastpoc completion powershell | Out-String | Invoke-Expression

zsh needs compinit enabled (autoload -U compinit; compinit in ~/.zshrc)
before completions load.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
