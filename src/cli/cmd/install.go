package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sofmeright/hookwright/src/gitx"
	"github.com/sofmeright/hookwright/src/install"
)

var installStages []string

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install git hook scripts",
	Long: `Install writes hook scripts into .git/hooks so the runner executes on
commit. Pre-existing hooks from other tools are preserved as .legacy
and restored by uninstall.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := gitx.FindRoot(".")
		if err != nil {
			return err
		}

		written, err := install.Install(root, installStages)
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Printf("installed %s\n", path)
		}
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove installed git hook scripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := gitx.FindRoot(".")
		if err != nil {
			return err
		}

		removed, err := install.Uninstall(root, installStages)
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			fmt.Fprintln(os.Stderr, "nothing to uninstall")
			return nil
		}
		for _, path := range removed {
			fmt.Printf("removed %s\n", path)
		}
		return nil
	},
}

func init() {
	installCmd.Flags().StringSliceVarP(&installStages, "hook-type", "t", nil, "hook stages to install (default: pre-commit)")
	uninstallCmd.Flags().StringSliceVarP(&installStages, "hook-type", "t", nil, "hook stages to uninstall (default: all)")
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
}
