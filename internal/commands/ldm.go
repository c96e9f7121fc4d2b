package commands

import (
	"fmt"

	"github.com/raulmeloferreira/maven-mapper/pkg/field"
	"github.com/raulmeloferreira/maven-mapper/pkg/layout"
	"github.com/raulmeloferreira/maven-mapper/pkg/ldm"
	"github.com/raulmeloferreira/maven-mapper/pkg/logger"
	"github.com/raulmeloferreira/maven-mapper/pkg/origin"
	"github.com/raulmeloferreira/maven-mapper/pkg/output"
	"github.com/raulmeloferreira/maven-mapper/pkg/report"
	"github.com/spf13/cobra"
)

// manifestColumns is the layout of the --manifest file.
var manifestColumns = []layout.Column[ldm.Copied]{
	{Header: layout.Origin, Value: func(c ldm.Copied) field.Value { return field.Known(c.Code) }},
	{Header: "REPOSITORY", Value: func(c ldm.Copied) field.Value { return field.Known(c.Repository) }},
	{Header: "SOURCE", Value: func(c ldm.Copied) field.Value { return field.Known(c.Source) }},
	{Header: "DESTINATION", Value: func(c ldm.Copied) field.Value { return field.Known(c.Destination) }},
}

func ldmCmd(e *env) *cobra.Command {
	var (
		manifest  string
		pattern   string
		separator string
	)

	cmd := &cobra.Command{
		Use:   "ldm <source_dir> <destination_dir>",
		Short: "Collect .ldm data files into per-origin folders",
		Long: `Find every git repository under <source_dir>, derive its origin code from
the first url in .git/config, and copy its .ldm files into
<destination_dir>/<origin code>/.

Repositories without a recognisable origin are skipped.`,
		Args: e.usageArgs(2, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.usage {
				return cmd.Help()
			}

			source, destination := args[0], args[1]
			if err := requireDir(source); err != nil {
				return err
			}
			if pattern == "" {
				pattern = e.cfg.LDM.Pattern
			}

			resolver, err := e.resolver(origin.ModeFirstURL)
			if err != nil {
				return err
			}
			collector, err := ldm.NewCollector(resolver, pattern, e.log)
			if err != nil {
				return err
			}

			onCopy := func(c ldm.Copied) { output.Verbose(c.Destination) }
			if manifest != "" {
				sep, err := e.separator(separator)
				if err != nil {
					return err
				}
				out, err := report.CreateCSV(manifest, sep, layout.Headers(manifestColumns), e.cfg.Report.Unknown)
				if err != nil {
					return err
				}
				defer out.Close()

				onCopy = func(c ldm.Copied) {
					output.Verbose(c.Destination)
					if err := out.Write(layout.Values(manifestColumns, c)); err != nil {
						e.log.Error("Writing manifest row failed", logger.F("file", c.Destination), logger.F("error", err))
					}
				}
			}

			progress, stop := e.startProgress("Collecting " + pattern + " files")
			copied := 0
			summary, err := collector.Collect(cmd.Context(), source, destination, func(c ldm.Copied) {
				copied++
				progress.Update(fmt.Sprintf("%d copied", copied))
				onCopy(c)
			})
			stop()
			if err != nil {
				return err
			}

			e.log.Info("Collection complete",
				logger.F("repositories", summary.Repositories),
				logger.F("skipped", summary.Skipped),
				logger.F("copied", summary.Copied),
				logger.F("failed", summary.Failed))
			output.Success(fmt.Sprintf("Copied %d files from %d repositories into %s",
				summary.Copied, summary.Repositories-summary.Skipped, destination))
			if summary.Skipped > 0 {
				output.Warn(fmt.Sprintf("%d repositories without an origin code", summary.Skipped))
			}
			if summary.Failed > 0 {
				output.Warn(fmt.Sprintf("%d files could not be copied", summary.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifest, "manifest", "", "Write one CSV row per copied file to this path")
	cmd.Flags().StringVar(&pattern, "pattern", "", "File name pattern to collect (default from config, *.ldm)")
	addSeparatorFlag(cmd, &separator)

	return cmd
}
