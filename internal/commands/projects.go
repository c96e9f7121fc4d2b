package commands

import (
	"fmt"
	"io"

	"github.com/raulmeloferreira/maven-mapper/pkg/layout"
	"github.com/raulmeloferreira/maven-mapper/pkg/output"
	"github.com/raulmeloferreira/maven-mapper/pkg/pom"
	"github.com/raulmeloferreira/maven-mapper/pkg/report"
	"github.com/spf13/cobra"
)

func projectsCmd(e *env) *cobra.Command {
	var separator string

	cmd := &cobra.Command{
		Use:   "projects <directory> [output.csv]",
		Short: "List every project with its parent, Java version and origin",
		Long: `Walk <directory> for pom.xml files and print one line per project:

  PATH;PARENT;PARENT GROUP;VERSION;GROUP ID;ARTIFACT ID;PROJECT VERSION;JAVA VERSION;GIT URL;ORIGIN

VERSION is the parent version. GIT URL and ORIGIN come from the .git/config
next to the descriptor. With [output.csv] the lines are written to that file
under a header row instead.`,
		Args: e.usageArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.usage {
				return cmd.Help()
			}

			root := args[0]
			sep, err := e.separator(separator)
			if err != nil {
				return err
			}
			if err := requireDir(root); err != nil {
				return err
			}

			cols := layout.ProjectColumns()
			if len(args) == 2 {
				return e.writeProjects(root, args[1], sep, cols)
			}
			return e.printProjects(cmd.OutOrStdout(), root, string(sep), cols)
		},
	}

	addSeparatorFlag(cmd, &separator)

	return cmd
}

func (e *env) printProjects(w io.Writer, root, delim string, cols []layout.Column[*pom.Project]) error {
	summary, err := e.scan(root, func(p *pom.Project) error {
		_, err := fmt.Fprintln(w, report.Line(layout.Values(cols, p), delim, e.cfg.Report.Unknown))
		return err
	})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Total projects: %d\n", summary.Projects); err != nil {
		return err
	}
	e.finish(summary)
	return nil
}

func (e *env) writeProjects(root, target string, sep rune, cols []layout.Column[*pom.Project]) error {
	out, err := report.CreateCSV(target, sep, layout.Headers(cols), e.cfg.Report.Unknown)
	if err != nil {
		return err
	}
	defer out.Close()

	summary, err := e.scan(root, func(p *pom.Project) error {
		if err := out.Write(layout.Values(cols, p)); err != nil {
			return fmt.Errorf("writing project row: %w", err)
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
	output.Success(fmt.Sprintf("Wrote %d projects to %s", summary.Projects, target))
	return nil
}
