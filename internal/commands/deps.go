package commands

import (
	"fmt"

	"github.com/raulmeloferreira/maven-mapper/pkg/layout"
	"github.com/raulmeloferreira/maven-mapper/pkg/output"
	"github.com/raulmeloferreira/maven-mapper/pkg/pom"
	"github.com/raulmeloferreira/maven-mapper/pkg/report"
	"github.com/spf13/cobra"
)

func depsCmd(e *env) *cobra.Command {
	var (
		extended  bool
		separator string
	)

	cmd := &cobra.Command{
		Use:   "deps <directory> [output.csv]",
		Short: "Export every declared dependency to a CSV file",
		Long: `Walk <directory> for pom.xml files and write one CSV row per declared
dependency. Project columns are repeated on each row. Projects without
dependencies produce no rows.

The output file is overwritten. It defaults to report.dependencies_file
(maven_dependencies.csv).

Example:
  maven-mapper deps ~/src deps.csv --extended`,
		Args: e.usageArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.usage {
				return cmd.Help()
			}

			root := args[0]
			target := e.cfg.Report.DependenciesFile
			if len(args) == 2 {
				target = args[1]
			}

			sep, err := e.separator(separator)
			if err != nil {
				return err
			}
			if err := requireDir(root); err != nil {
				return err
			}

			cols := layout.EdgeColumns(extended)
			out, err := report.CreateCSV(target, sep, layout.Headers(cols), e.cfg.Report.Unknown)
			if err != nil {
				return err
			}
			defer out.Close()

			summary, err := e.scan(root, func(p *pom.Project) error {
				for _, edge := range layout.Edges(p) {
					if err := out.Write(layout.Values(cols, edge)); err != nil {
						return fmt.Errorf("writing dependency row: %w", err)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			e.finish(summary)
			output.Success(fmt.Sprintf("Wrote %d dependency rows from %d projects to %s",
				out.Rows(), summary.Projects, target))
			return nil
		},
	}

	cmd.Flags().BoolVar(&extended, "extended", false, "Append parent, Java version and origin code columns")
	addSeparatorFlag(cmd, &separator)

	return cmd
}
