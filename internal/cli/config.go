package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"simple-pricer/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage pricer defaults.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.Output.JSON)
			summary := app.Config.Summary()
			if output.IsJSON() {
				return output.JSON(summary)
			}

			keys := make([]string, 0, len(summary))
			for k := range summary {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			output.Bold("Pricer Configuration")
			for _, k := range keys {
				output.Printf("  %-22s %s\n", k, summary[k])
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:         "path",
		Short:       "Show configuration file path",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{"skipConfig": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode, _ := cmd.Flags().GetBool("json")
			output := NewOutput(cmd, jsonMode)
			path := config.ConfigFile(app.ConfigDir)
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load already ran in the pre-run hook; reaching here means it passed.
			output := NewOutput(cmd, app.Config.Output.JSON)
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("Configuration is valid")
			return nil
		},
	})

	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented config.toml template",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{"skipConfig": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path, err := config.WriteTemplate(app.ConfigDir, force)
			if err != nil {
				return err
			}
			NewOutput(cmd, false).Info("Wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing config.toml")
	cmd.AddCommand(initCmd)

	return cmd
}
