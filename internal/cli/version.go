package cli

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/dapic/internal/logging"
)

// versionInfo is `dapic version --format json` output.
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go toolchain of dapic.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := versionInfo{
				Version:   info.Version,
				Commit:    info.Commit,
				Built:     info.Date,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), v)
			case "text":
				logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{Level: log.InfoLevel})
				logger.Info("dapic",
					logging.FieldVersion, v.Version,
					logging.FieldCommit, v.Commit,
					logging.FieldBuilt, v.Built,
					"go", v.GoVersion,
					"platform", v.Platform,
				)
				return nil
			default:
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")

	return cmd
}
