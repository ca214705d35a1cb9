package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dapic/internal/logging"
	"github.com/yaklabco/dapic/internal/ui/pretty"
	"github.com/yaklabco/dapic/pkg/lexer"
	"github.com/yaklabco/dapic/pkg/source"
)

type lexFlags struct {
	rich       bool
	format     string
	whitespace bool
}

// lexToken is one row of `dapic lex` output.
type lexToken struct {
	Kind    string `json:"kind"`
	Text    string `json:"text"`
	Offset  int    `json:"offset"`
	Len     int    `json:"len"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Spacing string `json:"spacing,omitempty"`
}

func newLexCommand(root *rootFlags) *cobra.Command {
	flags := &lexFlags{}

	cmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the tokens of a dapi file",
		Long: `Print the tokens of a dapi file.

By default the raw tokens are printed: every byte of the file belongs to
exactly one of them, so offsets and lengths cover the whole input. With
--rich the tokens the parser consumes are printed instead, with line and
column positions and whether each token touches the one before it.

Examples:
  dapic lex service.dapi                 # Raw tokens
  dapic lex --whitespace service.dapi    # Raw tokens, whitespace included
  dapic lex --rich service.dapi          # Parser tokens
  dapic lex --rich --format json a.dapi  # Parser tokens as JSON`,
		Args: singleFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLex(cmd, args[0], root, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.rich, "rich", false, "print parser tokens instead of raw tokens")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&flags.whitespace, "whitespace", false, "include whitespace in raw token output")

	return cmd
}

func runLex(cmd *cobra.Command, path string, root *rootFlags, flags *lexFlags) error {
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, flags.format)
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	stderr := cmd.ErrOrStderr()
	sess := newSession(stderr, root, path)
	file, err := sess.SourceMap.LoadFile(ctx, path)
	if err != nil {
		return err
	}

	var toks []lexToken
	if flags.rich {
		toks = richTokens(sess.SourceMap, lexer.NewEnricher(sess.Diag, file))
	} else {
		toks = rawTokens(file.Src, flags.whitespace)
	}
	logger.Debug("lexed file", logging.FieldFile, path, logging.FieldBytes, len(file.Src), logging.FieldTokens, len(toks))

	out := cmd.OutOrStdout()
	if flags.format == "json" {
		err = writeJSON(out, toks)
	} else {
		err = writeLexTable(out, root, toks, flags.rich)
	}
	if err != nil {
		return err
	}

	return finish(stderr, sess)
}

func rawTokens(src string, whitespace bool) []lexToken {
	var out []lexToken
	offset := 0
	for _, raw := range lexer.Tokenize(src) {
		start := offset
		offset += raw.Len
		if raw.Kind == lexer.RawWhitespace && !whitespace {
			continue
		}
		out = append(out, lexToken{
			Kind:   raw.Kind.String(),
			Text:   src[start:offset],
			Offset: start,
			Len:    raw.Len,
		})
	}
	return out
}

func richTokens(sm *source.Map, e *lexer.Enricher) []lexToken {
	toks, spacing := e.Tokens()
	out := make([]lexToken, 0, len(toks))
	for i, tok := range toks {
		row := lexToken{
			Kind:    tok.Kind.String(),
			Text:    tok.Text(),
			Len:     tok.Span.Len(),
			Spacing: spacing[i].String(),
		}
		if pos, ok := sm.Position(tok.Span.Lo); ok {
			row.Offset, row.Line, row.Column = pos.Offset, pos.Line, pos.Column
		}
		out = append(out, row)
	}
	return out
}

func writeLexTable(w io.Writer, root *rootFlags, toks []lexToken, rich bool) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(root.colorMode(), w))
	width := pretty.TerminalWidth(w)

	var table *pretty.Table
	if rich {
		table = pretty.NewTable(styles, width,
			pretty.Column{Header: "POSITION"},
			pretty.Column{Header: "KIND"},
			pretty.Column{Header: "SPACING"},
			pretty.Column{Header: "TEXT", Flex: true},
		)
		for _, tok := range toks {
			pos := fmt.Sprintf("%d:%d", tok.Line, tok.Column)
			table.AddRow("", pos, tok.Kind, tok.Spacing, strconv.Quote(tok.Text))
		}
	} else {
		table = pretty.NewTable(styles, width,
			pretty.Column{Header: "OFFSET"},
			pretty.Column{Header: "LEN"},
			pretty.Column{Header: "KIND"},
			pretty.Column{Header: "TEXT", Flex: true},
		)
		for _, tok := range toks {
			table.AddRow("", strconv.Itoa(tok.Offset), strconv.Itoa(tok.Len), tok.Kind, strconv.Quote(tok.Text))
		}
	}

	_, err := io.WriteString(w, table.Render())
	return err
}
