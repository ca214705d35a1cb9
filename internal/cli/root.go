// Package cli provides the Cobra command structure for dapic.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dapic/internal/configloader"
	"github.com/yaklabco/dapic/internal/logging"
	"github.com/yaklabco/dapic/internal/profiling"
	"github.com/yaklabco/dapic/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	debug      bool
	configPath string
	color      string
	noColor    bool
	profile    string
	profileDir string

	profiler profiling.Stopper
}

// colorMode folds --no-color into --color.
func (f *rootFlags) colorMode() string {
	if f.noColor {
		return "never"
	}
	return f.color
}

func (f *rootFlags) stopProfile() {
	if f.profiler != nil {
		f.profiler.Stop()
		f.profiler = nil
	}
}

// NewRootCommand creates the root dapic command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	cmd, _ := newRootCommand(info)
	return cmd
}

func newRootCommand(info BuildInfo) (*cobra.Command, *rootFlags) {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "dapic",
		Short: "A compiler front end for dapi API descriptions",
		Long: `dapic reads dapi API description files, reports lexical and syntax
errors with source snippets, and prints the tokens and syntax trees it
builds along the way.

Files are checked concurrently against one shared source map, so every
diagnostic points at an exact line and column.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if flags.debug {
				logging.SetLevel("debug")
			}

			stop, err := profiling.Start(flags.profile, flags.profileDir)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			flags.profiler = stop

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.Default()))
			return nil
		},
		Annotations: map[string]string{
			annotationEnvironment: environmentHelp(),
			annotationExitStatus:  exitStatusHelp,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	// Global flags.
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "path to config file")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colorized output")
	pf.StringVar(&flags.profile, "profile", "",
		"write a runtime profile: "+strings.Join(profiling.Modes(), ", "))
	pf.StringVar(&flags.profileDir, "profile-dir", "", "directory for profile output (default: current directory)")

	// Add subcommands.
	rootCmd.AddCommand(newCheckCommand(flags, info))
	rootCmd.AddCommand(newLexCommand(flags))
	rootCmd.AddCommand(newParseCommand(flags))
	rootCmd.AddCommand(newOutlineCommand(flags))
	rootCmd.AddCommand(newCodesCommand(flags))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(flags.colorMode(), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd, flags
}

// Execute runs dapic with args and returns the process exit code.
// Errors other than check outcomes are logged to the default logger.
func Execute(ctx context.Context, info BuildInfo, args []string) int {
	rootCmd, flags := newRootCommand(info)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	flags.stopProfile()

	if err != nil && strings.HasPrefix(err.Error(), "unknown command") {
		err = fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if err != nil && !IsReported(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return ExitCode(err)
}

// loadConfig resolves the configuration for a command, layering cliCfg on
// top of the discovered files and environment.
func loadConfig(ctx context.Context, flags *rootFlags, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	if !flags.debug {
		logging.SetLevel(cfg.LogLevel)
	}
	return cfg, workDir, nil
}
