package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const sampleConfig = `# Hookwright configuration. See hookwright list for built-in hooks.
repos:
  - repo: builtin
    hooks:
      - id: trailing-whitespace
      - id: end-of-file-fixer
      - id: check-yaml
      - id: check-json
      - id: check-merge-conflict
      - id: check-added-large-files
      - id: detect-private-key
`

var sampleConfigCmd = &cobra.Command{
	Use:   "sample-config",
	Short: "Print a starter configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(sampleConfig)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleConfigCmd)
}
