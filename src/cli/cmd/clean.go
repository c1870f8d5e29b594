package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/hookwright/src/gitx"
	"github.com/sofmeright/hookwright/src/hook"
	"github.com/sofmeright/hookwright/src/store"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the result cache and cloned hook sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Result cache lives in the repo; clean it when we're inside one.
		if root, err := gitx.FindRoot("."); err == nil {
			cache := &hook.Cache{RootDir: root, Enabled: true}
			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clearing result cache: %w", err)
			}
			fmt.Println("cleared result cache")
		}

		s, err := store.Default()
		if err != nil {
			return err
		}
		if err := s.Clear(); err != nil {
			return fmt.Errorf("clearing hook store: %w", err)
		}
		fmt.Printf("cleared hook store at %s\n", s.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
