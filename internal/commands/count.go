package commands

import (
	"fmt"
	"os"

	"github.com/raulmeloferreira/maven-mapper/pkg/aggregate"
	"github.com/raulmeloferreira/maven-mapper/pkg/logger"
	"github.com/raulmeloferreira/maven-mapper/pkg/pom"
	"github.com/raulmeloferreira/maven-mapper/pkg/report"
	"github.com/spf13/cobra"
)

// withVersionArg is the optional second argument of count.
const withVersionArg = "v"

func countCmd(e *env) *cobra.Command {
	var separator string

	cmd := &cobra.Command{
		Use:   "count <csv_file|directory> [v]",
		Short: "Count dependency occurrences",
		Long: `Count how often each dependency is declared, most frequent first.

<csv_file> is a file written by "maven-mapper deps". A directory is scanned
for pom.xml files directly. Dependencies are keyed by group and artifact;
pass "v" to key by version too.

Example:
  maven-mapper count maven_dependencies.csv v`,
		Args: e.usageArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.usage {
				return cmd.Help()
			}

			policy := aggregate.KeyWithoutVersion
			if len(args) == 2 {
				if args[1] != withVersionArg {
					e.log.Warn("Unrecognised count flag, counting without versions", logger.F("flag", args[1]))
				} else {
					policy = aggregate.KeyWithVersion
				}
			}

			table := aggregate.NewTable(policy.Arity())
			input := args[0]
			if isDir(input) {
				if err := e.countDescriptors(table, input, policy); err != nil {
					return err
				}
			} else {
				sep, err := e.separator(separator)
				if err != nil {
					return err
				}
				if err := e.countCSV(table, input, sep, policy.Projection()); err != nil {
					return err
				}
			}

			return report.WriteCounts(cmd.OutOrStdout(), table, report.CountOptions{
				Style:      report.Coordinates,
				Title:      "Dependency Count Results (ordered by occurrences):",
				TotalLabel: "Total dependencies",
				Unknown:    e.cfg.Report.Unknown,
			})
		},
	}

	addSeparatorFlag(cmd, &separator)

	return cmd
}

func (e *env) countDescriptors(table *aggregate.Table, root string, policy aggregate.KeyPolicy) error {
	summary, err := e.scan(root, func(p *pom.Project) error {
		aggregate.CountDependencies(table, p, policy)
		return nil
	})
	if err != nil {
		return err
	}
	e.finish(summary)
	return nil
}

// countCSV adds the projection of every row of the delimited file at path.
// Missing columns are counted as unknown.
func (e *env) countCSV(table *aggregate.Table, path string, sep rune, p aggregate.Projection) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r, err := aggregate.NewReader(f, sep, e.log)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if missing := p.Missing(r); len(missing) > 0 {
		e.log.Warn("Columns not found in header", logger.F("file", path), logger.F("columns", missing))
	}

	if err := aggregate.CountRows(table, r, p); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	e.log.Info("Rows counted",
		logger.F("file", path),
		logger.F("rows", table.Total()),
		logger.F("skipped", r.Skipped()))
	return nil
}
