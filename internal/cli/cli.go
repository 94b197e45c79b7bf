// Package cli implements the logogds command-line interface.
//
// The root command converts an image into a GDSII cell. Subcommands run the
// design-rule check on its own (optionally in an interactive browser) and
// print the effective layer stack.
//
// # Configuration
//
// Values come from three layers, later ones winning: built-in defaults, the
// TOML file named by --config, and command-line flags.
//
// # Logging
//
// Logs go to stderr through charmbracelet/log. --quiet drops to warnings
// only and silences the summary on stdout; --verbose enables debug output,
// including one line per DRC finding. Loggers are passed through
// context.Context.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/logogds/pkg/buildinfo"
	"github.com/matzehuels/logogds/pkg/layer"
	"github.com/matzehuels/logogds/pkg/observability"
	"github.com/matzehuels/logogds/pkg/pipeline"
)

const appName = "logogds"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdout receives the human-readable summary. Defaults to os.Stdout.
	Stdout io.Writer

	configPath string
	quiet      bool
	verbose    bool
	convert    convertFlags
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand, it converts an image.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "logogds converts black-and-white images into GDSII layout cells",
		Long: `logogds turns a logo image into a GDSII cell: every dark pixel becomes a
square on the pixel layers and the whole image is covered by the boundary
layers. A design-rule check reports diagonal touches and lone pixels.`,
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.SetLogLevel(levelFor(c.quiet, c.verbose))
			uiOut = c.Stdout
			if c.quiet {
				uiOut = io.Discard
			}
			observability.SetPipelineHooks(logHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: c.runConvert,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "TOML configuration file")
	pf.BoolVarP(&c.quiet, "quiet", "q", false, "only print warnings and errors")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "print debug output and every DRC finding")
	root.MarkFlagsMutuallyExclusive("quiet", "verbose")
	_ = root.MarkPersistentFlagFilename("config", "toml")

	c.convert.register(root)
	_ = root.MarkFlagFilename("input", imageExts...)
	_ = root.MarkFlagFilename("output", "gds")

	root.AddCommand(c.drcCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns the defaults overlaid with the --config file, if any.
func (c *CLI) baseOptions() (pipeline.Options, error) {
	var opts pipeline.Options
	if c.configPath == "" {
		return opts, nil
	}
	cfg, err := pipeline.LoadConfig(c.configPath)
	if err != nil {
		return opts, err
	}
	cfg.Apply(&opts)
	return opts, nil
}

// effectiveLayers returns the layer stack opts will run with.
func effectiveLayers(opts pipeline.Options) layer.Config {
	if opts.Layers != nil {
		return *opts.Layers
	}
	return layer.Default()
}
