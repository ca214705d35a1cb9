package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/dapic/internal/logging"
	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new dapic configuration file",
		Long: `Create a new .dapic.yml configuration file in the current directory
with sensible defaults. The file can be customized to change the output
format, ignore paths, and change or silence individual diagnostic codes.

Examples:
  dapic init                      Create minimal .dapic.yml
  dapic init --full               Create full config with every code documented
  dapic init --format json        Create .dapic.json instead
  dapic init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every code documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .dapic.yml or .dapic.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".dapic.json"
		} else {
			outputPath = ".dapic.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	changed, err := fsutil.WriteAtomicIfChanged(cmd.Context(), absPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if !changed {
		logger.Info("configuration file is already up to date", logging.FieldPath, outputPath)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	// Next steps are only useful to a person at a terminal.
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	if flags.full {
		logger.Info("full template documents every diagnostic code")
	}
	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'dapic codes' to see all diagnostic codes")

	return nil
}
