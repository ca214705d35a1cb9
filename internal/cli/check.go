package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dapic/internal/logging"
	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/reporter"
	"github.com/yaklabco/dapic/pkg/runner"
	"github.com/yaklabco/dapic/pkg/session"
)

type checkFlags struct {
	format       string
	codeFormat   string
	jobs         int
	ignore       []string
	extensions   []string
	strict       bool
	noSniff      bool
	noContext    bool
	noSummary    bool
	flat         bool
	compact      bool
	summaryOrder string
	minSeverity  string
}

func newCheckCommand(root *rootFlags, info BuildInfo) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:         "check [paths...]",
		Short:       "Check dapi files for lexical and syntax errors",
		Long:        checkLongDescription,
		Args:        cobra.ArbitraryArgs,
		Annotations: map[string]string{annotationExitStatus: exitStatusHelp},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, root, flags, info)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const checkLongDescription = `Check dapi files for lexical and syntax errors.

By default, checks every .dapi file under the current directory. Specify
paths to check specific files or directories. Files named explicitly are
checked whatever their extension.

Exit status is 1 when any error is found, and 2 when only warnings are
found and --strict is set.

Examples:
  dapic check                        # Check current directory
  dapic check api/                   # Check one directory
  dapic check service.dapi           # Check a single file
  dapic check --format json          # Output as JSON for CI
  dapic check --format sarif         # Output SARIF for code scanning
  dapic check --strict               # Fail on warnings too`

// cliConfig collects the flags that were set explicitly, so they override
// configuration files without clobbering them with flag defaults.
func (f *checkFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		if format, err := reporter.ParseFormat(f.format); err == nil {
			cfg.Format = format
		}
	}
	if changed("code-format") {
		cfg.CodeFormat = config.CodeFormat(f.codeFormat)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("extensions") {
		cfg.Extensions = f.extensions
	}
	cfg.Strict = f.strict
	return cfg
}

// validate rejects bad flag values as usage errors before they reach
// configuration validation.
func (f *checkFlags) validate(cmd *cobra.Command) error {
	if cmd.Flags().Changed("format") {
		if _, err := reporter.ParseFormat(f.format); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
	}
	if cmd.Flags().Changed("code-format") && !config.CodeFormat(f.codeFormat).IsValid() {
		return fmt.Errorf("%w: invalid --code-format %q; must be id, name or combined", ErrUsage, f.codeFormat)
	}
	if _, err := diag.ParseSeverity(f.minSeverity); err != nil {
		return fmt.Errorf("%w: --min-severity: %w", ErrUsage, err)
	}
	if f.jobs < 0 {
		return fmt.Errorf("%w: --jobs must be >= 0", ErrUsage)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string, root *rootFlags, flags *checkFlags, info BuildInfo) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if err := flags.validate(cmd); err != nil {
		return err
	}
	summaryOrder := reporter.SummaryOrder(flags.summaryOrder)
	if summaryOrder != reporter.SummaryOrderCodes && summaryOrder != reporter.SummaryOrderFiles {
		return fmt.Errorf("%w: invalid --summary-order %q; must be codes or files", ErrUsage, flags.summaryOrder)
	}

	cfg, workDir, err := loadConfig(ctx, root, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldStrict, cfg.Strict,
		logging.FieldExtensions, cfg.Extensions,
	)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	repOpts := reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       format,
		Color:        root.colorMode(),
		ShowContext:  !flags.noContext,
		ShowSummary:  !flags.noSummary,
		GroupByFile:  !flags.flat,
		Compact:      flags.compact,
		CodeFormat:   cfg.CodeFormat,
		SummaryOrder: summaryOrder,
		MinSeverity:  diag.Severity(flags.minSeverity),
		WorkingDir:   workDir,
		ToolVersion:  info.Version,
	}

	// Flat text output is written as files finish parsing.
	handlerOpts := runner.HandlerOptions(cfg)
	var stream *reporter.Stream
	if format == reporter.FormatText && flags.flat {
		stream = reporter.NewStream(repOpts)
		handlerOpts.Emitter = stream
		repOpts.Streamed = true
	}
	sess := session.New(handlerOpts)
	if stream != nil {
		stream.Bind(sess.SourceMap, "")
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir
	runOpts.Sniff = !flags.noSniff

	result, err := runner.New(sess).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("check run failed: %w", err)
	}

	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, cfg.Strict) {
	case ExitCheckErrors:
		return ErrCheckFailed
	case ExitCheckWarnings:
		return ErrStrictWarnings
	default:
		return nil
	}
}

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, summary")
	cmd.Flags().StringVar(&flags.codeFormat, "code-format", "id",
		"diagnostic code format in output: id, name, or combined")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of files checked in parallel (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to check when walking directories")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail on warnings as well as errors")
	cmd.Flags().BoolVar(&flags.noSniff, "no-sniff", false, "do not guess the language of files that fail to parse")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source snippets in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
	cmd.Flags().BoolVar(&flags.flat, "flat", false, "print diagnostics as they are found instead of grouped by file")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output for json and sarif")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "codes",
		"order of tables in summary output: codes, files")
	cmd.Flags().StringVar(&flags.minSeverity, "min-severity", string(diag.SeverityAdvice),
		"hide diagnostics less severe than this: advice, warning, error")
}
