package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/dapic/internal/logging"
	"github.com/yaklabco/dapic/pkg/ast"
	"github.com/yaklabco/dapic/pkg/fsutil"
	"github.com/yaklabco/dapic/pkg/parser"
	"github.com/yaklabco/dapic/pkg/session"
)

// scopeExtension is appended to a scope's name to find its file.
const scopeExtension = ".dapi"

type parseFlags struct {
	format string
	scopes bool
}

func newParseCommand(root *rootFlags) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the syntax tree of a dapi file",
		Long: `Parse a dapi file and print its syntax tree.

Syntax errors are printed to stderr with a source snippet and the command
exits with status 1.

With --scopes, every "scope name;" declaration is resolved by parsing
name.dapi next to the declaring file. Scopes declared in name.dapi are
looked up in the directory name/.

Examples:
  dapic parse service.dapi                # Indented tree
  dapic parse --format json service.dapi  # Tree as JSON
  dapic parse --format yaml service.dapi  # Tree as YAML
  dapic parse --scopes main.dapi          # Splice in scope files`,
		Args: singleFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], root, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&flags.scopes, "scopes", false, "load external scope files")

	return cmd
}

func runParse(cmd *cobra.Command, path string, root *rootFlags, flags *parseFlags) error {
	switch flags.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: invalid format %q: must be text, json or yaml", ErrUsage, flags.format)
	}

	ctx := cmd.Context()

	stderr := cmd.ErrOrStderr()
	sess := newSession(stderr, root, path)

	tree, err := parseFile(ctx, sess, path, flags.scopes)
	if errors.Is(err, errSyntax) && sess.Diag.Degraded() {
		return finish(stderr, sess)
	}
	if err != nil {
		return err
	}

	if err := writeTree(cmd.OutOrStdout(), ast.Dump(tree), flags.format); err != nil {
		return err
	}
	return finish(stderr, sess)
}

// errSyntax marks a parse that reported its problems to the session.
var errSyntax = errors.New("syntax error")

// parseFile parses path in sess and, if scopes is set, the scope files it
// refers to. A syntax error in any of them is returned as errSyntax after
// its diagnostic went to the session.
func parseFile(ctx context.Context, sess *session.Session, path string, scopes bool) (*ast.Root, error) {
	logger := logging.FromContext(ctx)

	file, err := sess.SourceMap.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	tree, err := parser.Parse(sess, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errSyntax, err)
	}
	logger.Debug("parsed file", logging.FieldFile, path, logging.FieldItems, len(tree.Items))

	if scopes {
		loader := &scopeLoader{sess: sess, seen: map[string]bool{}}
		if err := loader.load(ctx, filepath.Dir(path), tree.Items); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// scopeLoader resolves `scope name;` declarations against the file system.
type scopeLoader struct {
	sess *session.Session
	seen map[string]bool
}

func (l *scopeLoader) load(ctx context.Context, dir string, items []*ast.Item) error {
	logger := logging.FromContext(ctx)

	for _, item := range items {
		scope, ok := item.Kind.(*ast.Scope)
		if !ok {
			continue
		}

		name := item.Ident.Name.String()
		if loaded, ok := scope.Kind.(*ast.ScopeLoaded); ok {
			if err := l.load(ctx, filepath.Join(dir, name), loaded.Items); err != nil {
				return err
			}
			continue
		}

		path := filepath.Join(dir, name+scopeExtension)
		if l.seen[path] {
			return fmt.Errorf("scope %s: %s is already loaded", name, path)
		}
		l.seen[path] = true

		file, err := l.sess.SourceMap.LoadFile(ctx, path)
		if errors.Is(err, fsutil.ErrNotFound) {
			logger.Warn("scope file not found", logging.FieldPath, path)
			continue
		}
		if err != nil {
			return fmt.Errorf("load scope %s: %w", name, err)
		}

		if err := parser.LoadScope(l.sess, file, item); err != nil {
			return fmt.Errorf("%w: %w", errSyntax, err)
		}
		logger.Debug("loaded scope", logging.FieldFile, path)

		if err := l.load(ctx, filepath.Join(dir, name), scopeItems(item)); err != nil {
			return err
		}
	}
	return nil
}

func scopeItems(item *ast.Item) []*ast.Item {
	if scope, ok := item.Kind.(*ast.Scope); ok {
		if loaded, ok := scope.Kind.(*ast.ScopeLoaded); ok {
			return loaded.Items
		}
	}
	return nil
}

func writeTree(w io.Writer, tree *ast.TreeNode, format string) error {
	switch format {
	case "json":
		return writeJSON(w, tree)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return tree.WriteText(w)
	}
}
