package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/hookwright/src/autoupdate"
	"github.com/sofmeright/hookwright/src/output"
)

var (
	updateBleedingEdge bool
	updateDryRun       bool
)

var autoupdateCmd = &cobra.Command{
	Use:   "autoupdate",
	Short: "Update hook source revisions to their latest tags",
	Long: `Autoupdate queries each remote hook source for its newest release tag
and rewrites the rev pins in place. Pre-release tags are skipped unless
--bleeding-edge is given. The rest of the file is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		if cfg.Path == "" {
			return fmt.Errorf("no config file found to update")
		}

		updates, err := autoupdate.Plan(ctx, cfg, updateBleedingEdge)
		if err != nil {
			return err
		}

		color := output.UseColor()
		sec := output.NewSection(os.Stdout, "Autoupdate", time.Since(start), color)
		changed := 0
		for _, u := range updates {
			switch {
			case u.Changed():
				sec.Row("%s: %s -> %s", u.Repo, u.OldRev, u.NewRev)
				changed++
			case u.NewRev == "":
				sec.Row("%s: no release tags found", u.Repo)
			default:
				sec.Row("%s: already at %s", u.Repo, u.OldRev)
			}
		}
		if len(updates) == 0 {
			sec.Row("no remote hook sources configured")
		}
		sec.Close()

		if changed == 0 || updateDryRun {
			if updateDryRun && changed > 0 {
				fmt.Printf("%d updates available (dry run, nothing written)\n", changed)
			}
			return nil
		}

		if err := autoupdate.Apply(cfg.Path, updates); err != nil {
			return fmt.Errorf("rewriting %s: %w", cfg.Path, err)
		}
		fmt.Printf("updated %d revs in %s\n", changed, cfg.Path)
		return nil
	},
}

func init() {
	autoupdateCmd.Flags().BoolVar(&updateBleedingEdge, "bleeding-edge", false, "accept pre-release tags")
	autoupdateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "show updates without writing")
	rootCmd.AddCommand(autoupdateCmd)
}
