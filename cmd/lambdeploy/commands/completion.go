package commands

import "github.com/spf13/cobra"

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for lambdeploy.

To load completions:

Bash:
  $ source <(lambdeploy completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ lambdeploy completion bash > /etc/bash_completion.d/lambdeploy
  # macOS:
  $ lambdeploy completion bash > $(brew --prefix)/etc/bash_completion.d/lambdeploy

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ lambdeploy completion zsh > "${fpath[1]}/_lambdeploy"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ lambdeploy completion fish | source
  # To load completions for each session, execute once:
  $ lambdeploy completion fish > ~/.config/fish/completions/lambdeploy.fish

PowerShell:
  PS> lambdeploy completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> lambdeploy completion powershell > lambdeploy.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
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
	return cmd
}
