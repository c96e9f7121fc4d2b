package commands

import (
	"fmt"

	mavenmapper "github.com/raulmeloferreira/maven-mapper"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the maven-mapper version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "maven-mapper %s\n", mavenmapper.Version)
			return err
		},
	}
}
