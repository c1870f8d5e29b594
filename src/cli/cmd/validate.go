package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sofmeright/hookwright/src/config"
	"github.com/sofmeright/hookwright/src/store"
)

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config [file...]",
	Short: "Validate configuration files",
	Long: `Validate-config checks configuration files against the schema and the
semantic rules (stages, patterns, hook references). With no arguments
the default config file names are tried.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			if cfgFile != "" {
				paths = []string{cfgFile}
			} else {
				paths = []string{".hookwright.yaml"}
			}
		}

		ok := true
		for _, path := range paths {
			if err := validateConfigFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				ok = false
				continue
			}
			fmt.Printf("%s: ok\n", path)
		}
		if !ok {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

var validateManifestCmd = &cobra.Command{
	Use:   "validate-manifest [file...]",
	Short: "Validate hook manifest files",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			paths = []string{".hookwright-hooks.yaml"}
		}

		ok := true
		for _, path := range paths {
			if err := validateManifestFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				ok = false
				continue
			}
			fmt.Printf("%s: ok\n", path)
		}
		if !ok {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateConfigCmd)
	rootCmd.AddCommand(validateManifestCmd)
}

func validateConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	issues, err := config.CheckSchema(data)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return schemaError(issues)
	}

	parsed, err := config.Parse(data)
	if err != nil {
		return err
	}
	warnings, err := config.Validate(parsed)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "%s: warning: %s\n", path, w)
	}
	return nil
}

func validateManifestFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	issues, err := config.CheckHooksSchema(data)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return schemaError(issues)
	}

	_, err = store.ParseManifest(data)
	return err
}

func schemaError(issues []string) error {
	if len(issues) == 1 {
		return fmt.Errorf("%s", issues[0])
	}
	msg := "schema violations:"
	for _, issue := range issues {
		msg += "\n  " + issue
	}
	return fmt.Errorf("%s", msg)
}
