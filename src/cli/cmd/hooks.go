package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sofmeright/hookwright/src/hook"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in hooks",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMATCHES\tDESCRIPTION")
		for _, spec := range hook.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", spec.ID, spec.Name, specMatches(spec), spec.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// specMatches summarizes what files a builtin applies to by default.
func specMatches(spec hook.Spec) string {
	switch {
	case len(spec.Types) > 0:
		return strings.Join(spec.Types, ",")
	case spec.Files != "":
		return spec.Files
	default:
		return "all"
	}
}
