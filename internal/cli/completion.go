package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// shell is one completion target.
type shell struct {
	name    string
	install string // where the script goes to load it in every session
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{"bash", "cargo-dep completion bash > /etc/bash_completion.d/cargo-dep",
		func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) }},
	{"zsh", `cargo-dep completion zsh > "${fpath[1]}/_cargo-dep"`,
		func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) }},
	{"fish", "cargo-dep completion fish > ~/.config/fish/completions/cargo-dep.fish",
		func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) }},
	{"powershell", "cargo-dep completion powershell >> $PROFILE",
		func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) }},
}

func shellNames() []string {
	names := make([]string, len(shells))
	for i, s := range shells {
		names[i] = s.name
	}
	return names
}

// completionCommand prints the completion script of one shell.
func (c *CLI) completionCommand() *cobra.Command {
	var long strings.Builder
	long.WriteString("Generate a shell completion script for cargo-dep.\n\nTo load completions in every session:\n")
	for _, s := range shells {
		long.WriteString("\n  " + s.install)
	}

	return &cobra.Command{
		Use:                   "completion [" + strings.Join(shellNames(), "|") + "]",
		Short:                 "Generate shell completion scripts",
		Long:                  long.String(),
		DisableFlagsInUseLine: true,
		Args:                  cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return shellNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			i := slices.IndexFunc(shells, func(s shell) bool { return s.name == args[0] })
			if i < 0 {
				return fmt.Errorf("unsupported shell %q (want one of %s)", args[0], strings.Join(shellNames(), ", "))
			}
			return shells[i].gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
