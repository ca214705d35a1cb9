package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dapic/internal/ui/pretty"
	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/diag"
)

type codesFlags struct {
	format     string
	codeFormat string
}

// codeInfo is one code in `dapic codes` output.
type codeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Display     string `json:"display"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

func newCodesCommand(root *rootFlags) *cobra.Command {
	flags := &codesFlags{}

	cmd := &cobra.Command{
		Use:   "codes [code]",
		Short: "List diagnostic codes",
		Long: `List every diagnostic code dapic can report, with its default severity.

Give a code ID or name to describe that code alone. Codes are the keys of
the diagnostics section of the configuration file, where their severity
can be changed or the code turned off.

Examples:
  dapic codes                       # All codes
  dapic codes E0104                 # One code by ID
  dapic codes invalid-verb          # One code by name
  dapic codes --format json         # All codes as JSON`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCodes(cmd, args, root, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	cmd.Flags().StringVar(&flags.codeFormat, "code-format", string(config.CodeFormatCombined),
		"how codes are shown: id, name or combined")

	return cmd
}

func runCodes(cmd *cobra.Command, args []string, root *rootFlags, flags *codesFlags) error {
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, flags.format)
	}
	codeFormat := config.CodeFormat(flags.codeFormat)
	if !codeFormat.IsValid() {
		return fmt.Errorf("%w: invalid code format %q: must be id, name or combined", ErrUsage, flags.codeFormat)
	}

	codes := diag.Codes()
	if len(args) == 1 {
		code, err := lookupCode(args[0])
		if err != nil {
			return err
		}
		codes = []diag.Code{code}
	}

	infos := make([]codeInfo, 0, len(codes))
	for _, c := range codes {
		infos = append(infos, codeInfo{
			ID:          c.ID,
			Name:        c.Name,
			Display:     config.FormatCode(codeFormat, c.ID, c.Name),
			Severity:    string(c.Severity),
			Description: c.Description,
		})
	}

	out := cmd.OutOrStdout()
	if flags.format == "json" {
		return writeJSON(out, infos)
	}
	return writeCodesTable(out, root, infos)
}

// lookupCode resolves an ID or name, suggesting the closest code when
// nothing matches.
func lookupCode(idOrName string) (diag.Code, error) {
	if code, ok := diag.LookupCode(idOrName); ok {
		return code, nil
	}

	var candidates []string
	for _, c := range diag.Codes() {
		candidates = append(candidates, c.ID, c.Name)
	}
	if suggestion, ok := diag.Suggest(idOrName, candidates); ok {
		return diag.Code{}, fmt.Errorf("%w: unknown code %q; did you mean %q?", ErrUsage, idOrName, suggestion)
	}
	return diag.Code{}, fmt.Errorf("%w: unknown code %q; run 'dapic codes' to list codes", ErrUsage, idOrName)
}

func writeCodesTable(w io.Writer, root *rootFlags, infos []codeInfo) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(root.colorMode(), w))

	table := pretty.NewTable(styles, pretty.TerminalWidth(w),
		pretty.Column{Header: "CODE"},
		pretty.Column{Header: "SEVERITY"},
		pretty.Column{Header: "DESCRIPTION", Flex: true},
	)
	for _, info := range infos {
		table.AddRow(info.Severity, info.Display, info.Severity, info.Description)
	}

	_, err := io.WriteString(w, table.Render())
	return err
}
