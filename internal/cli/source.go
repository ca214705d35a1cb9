package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/reporter"
	"github.com/yaklabco/dapic/pkg/session"
)

// singleFile accepts exactly one positional argument, reporting a usage
// error otherwise.
func singleFile(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// newSession returns a session that writes each diagnostic to w as it is
// emitted. Diagnostics outside any real file are labelled with path.
func newSession(w io.Writer, root *rootFlags, path string) *session.Session {
	stream := reporter.NewStream(reporter.Options{
		Writer:      w,
		Color:       root.colorMode(),
		ShowContext: true,
		CodeFormat:  config.CodeFormatCombined,
	})
	sess := session.New(diag.HandlerOptions{Emitter: stream})
	stream.Bind(sess.SourceMap, path)
	return sess
}

// finish writes the session's count line to w when anything was reported
// and fails if an error was.
func finish(w io.Writer, sess *session.Session) error {
	h := sess.Diag
	if h.ErrorCount()+h.WarningCount()+h.AdviceCount() > 0 {
		fmt.Fprintln(w, h.Summary())
	}
	if err := h.CheckDegraded(); err != nil {
		return fmt.Errorf("%w: %w", ErrCheckFailed, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
