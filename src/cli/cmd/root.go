package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sofmeright/hookwright/src/config"
	_ "github.com/sofmeright/hookwright/src/hook/builtins" // register builtin hooks
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

// Commands that work without a loaded configuration.
var noConfigCommands = map[string]bool{
	"version":           true,
	"sample-config":     true,
	"validate-config":   true,
	"validate-manifest": true,
	"clean":             true,
	"list":              true,
}

var rootCmd = &cobra.Command{
	Use:   "hookwright",
	Short: "Git hook framework",
	Long:  "Hookwright — a cache-aware git hook runner with native built-in hooks.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noConfigCommands[cmd.Name()] {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .hookwright.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
