package commands

import (
	"fmt"
	"strings"

	"github.com/raulmeloferreira/maven-mapper/pkg/aggregate"
	"github.com/raulmeloferreira/maven-mapper/pkg/layout"
	"github.com/raulmeloferreira/maven-mapper/pkg/pom"
	"github.com/raulmeloferreira/maven-mapper/pkg/report"
	"github.com/spf13/cobra"
)

// defaultTallyColumns groups projects by their parent.
var defaultTallyColumns = []string{layout.Parent, layout.ParentGroup, layout.Version}

func tallyCmd(e *env) *cobra.Command {
	var (
		columns   []string
		separator string
	)

	cmd := &cobra.Command{
		Use:   "tally <csv_file|directory>",
		Short: "Count combinations of column values",
		Long: `Count how often each combination of the selected columns occurs, most
frequent first. <csv_file> is any delimited file with a header row; cells are
addressed by header name. A directory is scanned for pom.xml files and
counted with the "projects" columns.

Example:
  maven-mapper tally projects.csv --columns "PARENT,VERSION"`,
		Args: e.usageArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.usage {
				return cmd.Help()
			}
			if len(columns) == 0 {
				return fmt.Errorf("at least one column is required")
			}

			table := aggregate.NewTable(len(columns))
			input := args[0]
			if isDir(input) {
				if err := e.tallyDescriptors(table, input, columns); err != nil {
					return err
				}
			} else {
				sep, err := e.separator(separator)
				if err != nil {
					return err
				}
				if err := e.countCSV(table, input, sep, aggregate.Projection(columns)); err != nil {
					return err
				}
			}

			return report.WriteCounts(cmd.OutOrStdout(), table, report.CountOptions{
				Style:      report.Labelled,
				Labels:     columns,
				TotalLabel: "Total count",
				Unknown:    e.cfg.Report.Unknown,
			})
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", defaultTallyColumns, "Columns to group by, in order")
	addSeparatorFlag(cmd, &separator)

	return cmd
}

func (e *env) tallyDescriptors(table *aggregate.Table, root string, columns []string) error {
	cols, missing := layout.Select(layout.ProjectColumns(), columns)
	if len(missing) > 0 {
		return fmt.Errorf("unknown project columns: %s", strings.Join(missing, ", "))
	}

	summary, err := e.scan(root, func(p *pom.Project) error {
		table.Add(layout.Values(cols, p))
		return nil
	})
	if err != nil {
		return err
	}
	e.finish(summary)
	return nil
}
