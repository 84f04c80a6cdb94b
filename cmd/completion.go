package cmd

import "github.com/spf13/cobra"

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for tldr.

To load completions:

Bash:
  $ source <(tldr completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ tldr completion bash > /etc/bash_completion.d/tldr
  # macOS:
  $ tldr completion bash > $(brew --prefix)/etc/bash_completion.d/tldr

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ tldr completion zsh > "${fpath[1]}/_tldr"

  # You will need to start a new shell for this setup to take effect.

PowerShell:
  PS> tldr completion powershell | Out-String | Invoke-Expression

Fish:
  $ tldr completion fish | source

  # To load completions for each session, execute once:
  $ tldr completion fish > ~/.config/fish/completions/tldr.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
		case "zsh":
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
