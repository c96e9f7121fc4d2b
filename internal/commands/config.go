package commands

import (
	"fmt"
	"os"

	"github.com/raulmeloferreira/maven-mapper/pkg/config"
	"github.com/raulmeloferreira/maven-mapper/pkg/input"
	"github.com/raulmeloferreira/maven-mapper/pkg/output"
	"github.com/spf13/cobra"
)

// configCmd returns the config command with its init subcommand
func configCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the maven-mapper configuration file",
	}

	cmd.AddCommand(configInitCmd(e))

	return cmd
}

func configInitCmd(e *env) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Long: `Write a configuration file holding every default setting.

The path defaults to the --config value (maven-mapper.yaml). An existing file
is only replaced after confirmation, or with --force.`,
		Annotations: map[string]string{skipConfig: "true"},
		Args: e.usageArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.usage {
				return cmd.Help()
			}

			path := e.configPath
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				prompt := input.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
				if !prompt.Confirm(fmt.Sprintf("%s already exists. Overwrite?", path), false) {
					output.Info("Configuration left unchanged")
					return nil
				}
			}

			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}

			output.Success("Wrote " + path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file without asking")

	return cmd
}
