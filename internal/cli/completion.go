package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/render"
)

// completionCommand writes shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for kintree.

Besides subcommands and flags, the scripts complete --source with local
.csv, .json and .bson files and --format with the render formats.

Examples:

  # try it in the current bash session
  $ source <(kintree completion bash)

  # install for every zsh session
  $ kintree completion zsh > "${fpath[1]}/_kintree"

  # fish
  $ kintree completion fish > ~/.config/fish/completions/kintree.fish

  # powershell, then source kintree.ps1 from your profile
  PS> kintree completion powershell > kintree.ps1

Then, for example:

  $ kintree render -s fam<TAB>          # family.csv
  $ kintree render -s family.csv -f <TAB>
  dot  html  json  png  svg
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

	return cmd
}

// completeSource offers local files a source can be read from. Sheets and
// MongoDB sources are typed by hand.
func completeSource(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"csv", "json", "bson"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the last entry of a comma-separated format list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, _ := splitLast(toComplete)
	var out []string
	for _, f := range render.Formats {
		if strings.Contains(","+done, ","+f+",") {
			continue
		}
		out = append(out, done+f)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// splitLast splits "svg,ht" into "svg," and "ht".
func splitLast(s string) (head, last string) {
	i := strings.LastIndexByte(s, ',')
	return s[:i+1], s[i+1:]
}
