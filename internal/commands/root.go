package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	mavenmapper "github.com/raulmeloferreira/maven-mapper"
	"github.com/raulmeloferreira/maven-mapper/pkg/config"
	"github.com/raulmeloferreira/maven-mapper/pkg/logger"
	"github.com/raulmeloferreira/maven-mapper/pkg/output"
	"github.com/spf13/cobra"
)

// skipConfig marks commands that must run without reading maven-mapper.yaml.
const skipConfig = "skip-config"

// env is the per-run state shared by every subcommand. It is filled in by
// the root command's PersistentPreRunE before any RunE executes.
type env struct {
	configPath string
	verbose    bool
	usage      bool

	cfg  *config.Config
	log  logger.Logger
	sink *logSink

	// interactive is set when diagnostics go to the process stderr, the
	// only place a spinner may draw.
	interactive bool
}

// Execute runs the maven-mapper CLI.
func Execute() error {
	return RootCmd().Execute()
}

// RootCmd creates the root command with every subcommand attached.
func RootCmd() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:   "maven-mapper",
		Short: "Inventory Maven build metadata across many repositories",
		Long: `maven-mapper surveys pom.xml descriptors across a tree of repositories.

It can:
• Export every declared dependency edge to a CSV file
• List projects with their parent, Java version and git origin
• Count dependency occurrences and attribute combinations
• Collect .ldm data files into per-origin folders`,
		Version:       mavenmapper.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVarP(&e.configPath, "config", "c", config.DefaultPath, "Path to the configuration file")

	cmd.AddCommand(depsCmd(e))
	cmd.AddCommand(projectsCmd(e))
	cmd.AddCommand(countCmd(e))
	cmd.AddCommand(tallyCmd(e))
	cmd.AddCommand(ldmCmd(e))
	cmd.AddCommand(configCmd(e))
	cmd.AddCommand(versionCmd())

	return cmd
}

func (e *env) setup(cmd *cobra.Command) error {
	output.SetVerbose(e.verbose)
	if e.usage {
		return nil
	}

	e.cfg = config.DefaultConfig()
	if cmd.Annotations[skipConfig] == "" {
		cfg, err := config.Load(e.configPath)
		if err != nil {
			return err
		}
		e.cfg = cfg
	}

	level, err := logger.ParseLevel(e.cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if e.verbose {
		level = logger.LevelDebug
	}

	e.interactive = cmd.ErrOrStderr() == io.Writer(os.Stderr)
	e.sink = &logSink{w: cmd.ErrOrStderr()}
	e.log = logger.NewLogger(level, e.sink).
		WithFields(logger.F("run", uuid.NewString()), logger.F("command", cmd.Name()))
	e.log.Debug("Configuration loaded", logger.F("path", e.configPath))

	return nil
}

// usageArgs accepts between lo and hi positional arguments. Any other count
// marks the run for usage output: config loading is skipped and RunE prints
// the help instead of processing. Cobra validates arguments before the
// persistent pre-run hooks.
func (e *env) usageArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		e.usage = len(args) < lo || len(args) > hi
		return nil
	}
}
