package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/dapic/internal/ui/pretty"
	"github.com/yaklabco/dapic/pkg/ast"
	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/docs"
	"github.com/yaklabco/dapic/pkg/source"
)

type outlineFlags struct {
	format    string
	flavor    string
	scopes    bool
	undocOnly bool
}

// outlineEntry is one item in `dapic outline` output.
type outlineEntry struct {
	Keyword  string   `json:"keyword"`
	Name     string   `json:"name,omitempty"`
	Depth    int      `json:"depth"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Summary  string   `json:"summary,omitempty"`
	Headings []string `json:"headings,omitempty"`
	Links    []string `json:"links,omitempty"`
}

type outline struct {
	File    string         `json:"file"`
	Summary string         `json:"summary,omitempty"`
	Items   []outlineEntry `json:"items"`
}

func newOutlineCommand(root *rootFlags) *cobra.Command {
	flags := &outlineFlags{}

	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "List the items of a dapi file with their documentation",
		Long: `List every item declared in a dapi file, nested items indented under
their parent, together with the first paragraph of its "##" doc comment.

Doc comments are read as Markdown. The flavor comes from the doc_flavor
configuration setting unless --flavor is given.

Examples:
  dapic outline service.dapi               # Table of items
  dapic outline --undocumented api.dapi    # Only items without docs
  dapic outline --format json api.dapi     # Items with headings and links`,
		Args: singleFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, args[0], root, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor of doc comments: commonmark or gfm")
	cmd.Flags().BoolVar(&flags.scopes, "scopes", false, "load external scope files")
	cmd.Flags().BoolVar(&flags.undocOnly, "undocumented", false, "list only items without doc comments")

	return cmd
}

func runOutline(cmd *cobra.Command, path string, root *rootFlags, flags *outlineFlags) error {
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, flags.format)
	}

	ctx := cmd.Context()

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("flavor") {
		cliCfg.DocFlavor = flags.flavor
	}
	cfg, _, err := loadConfig(ctx, root, cliCfg)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	sess := newSession(stderr, root, path)

	tree, err := parseFile(ctx, sess, path, flags.scopes)
	if errors.Is(err, errSyntax) && sess.Diag.Degraded() {
		return finish(stderr, sess)
	}
	if err != nil {
		return err
	}

	result, err := buildOutline(ctx, docs.New(cfg.DocFlavor), sess.SourceMap, tree, flags.undocOnly)
	if err != nil {
		return err
	}
	result.File = path

	out := cmd.OutOrStdout()
	if flags.format == "json" {
		err = writeJSON(out, result)
	} else {
		err = writeOutlineTable(out, root, result)
	}
	if err != nil {
		return err
	}
	return finish(stderr, sess)
}

func buildOutline(ctx context.Context, reader *docs.Reader, sm *source.Map, tree *ast.Root, undocOnly bool) (*outline, error) {
	result := &outline{Items: []outlineEntry{}}

	doc, err := reader.Read(ctx, tree.Attrs)
	if err != nil {
		return nil, err
	}
	result.Summary = doc.Summary

	depth := 0
	enter := func(n ast.Node) error {
		item, ok := n.(*ast.Item)
		if !ok {
			return nil
		}
		defer func() { depth++ }()

		doc, err := reader.Read(ctx, item.Attrs)
		if err != nil {
			return err
		}
		if undocOnly && !doc.IsEmpty() {
			return nil
		}

		entry := outlineEntry{
			Keyword:  item.Kind.Keyword().String(),
			Name:     itemName(sm, item),
			Depth:    depth,
			Summary:  doc.Summary,
			Headings: doc.Headings,
			Links:    doc.Links,
		}
		if pos, ok := sm.Position(item.Span.Lo); ok {
			entry.Line, entry.Column = pos.Line, pos.Column
		}
		result.Items = append(result.Items, entry)
		return nil
	}
	leave := func(n ast.Node) error {
		if _, ok := n.(*ast.Item); ok {
			depth--
		}
		return nil
	}

	for _, item := range tree.Items {
		if err := ast.WalkWithContext(item, enter, leave); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// itemName returns what identifies an item in a listing.
func itemName(sm *source.Map, item *ast.Item) string {
	switch kind := item.Kind.(type) {
	case *ast.PathItem:
		return kind.Kind.String()
	case *ast.Verb:
		return kind.Method.Name.String()
	case *ast.StatusCode:
		if kind.Code != nil {
			if text, ok := sm.SpanToSnippet(kind.Code.Span); ok {
				return text
			}
		}
	}
	if item.Ident.IsEmpty() {
		return ""
	}
	return item.Ident.Name.String()
}

func writeOutlineTable(w io.Writer, root *rootFlags, result *outline) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(root.colorMode(), w))

	if result.Summary != "" {
		fmt.Fprintln(w, styles.Bold.Render(result.Summary))
		fmt.Fprintln(w)
	}
	if len(result.Items) == 0 {
		_, err := fmt.Fprintln(w, "No items.")
		return err
	}

	table := pretty.NewTable(styles, pretty.TerminalWidth(w),
		pretty.Column{Header: "LINE"},
		pretty.Column{Header: "ITEM", MinWidth: 16},
		pretty.Column{Header: "SUMMARY", Flex: true},
	)
	for _, entry := range result.Items {
		label := strings.Repeat("  ", entry.Depth) + strings.TrimSpace(entry.Keyword+" "+entry.Name)
		table.AddRow("", strconv.Itoa(entry.Line), label, entry.Summary)
	}

	_, err := io.WriteString(w, table.Render())
	return err
}
