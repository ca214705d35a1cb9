// Package docs reads the Markdown written in `##` doc comments.
package docs

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/dapic/pkg/ast"
)

// Markdown flavors understood in doc comments.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Doc is the parsed documentation of one node.
type Doc struct {
	// Source is the Markdown text, one doc comment per line.
	Source string

	// Summary is the plain text of the first paragraph.
	Summary string

	Headings []string
	Links    []string
}

// IsEmpty reports whether the node had no documentation.
func (d *Doc) IsEmpty() bool { return d == nil || strings.TrimSpace(d.Source) == "" }

// Reader parses doc comments.
type Reader struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a Reader for flavor. Unknown flavors fall back to CommonMark.
func New(flavor string) *Reader {
	f := flavorOrDefault(flavor)
	return &Reader{flavor: f, md: newGoldmarkInstance(f)}
}

// Flavor returns the configured flavor.
func (r *Reader) Flavor() string { return r.flavor }

// Collect joins the doc comments among attrs into Markdown. One leading
// space is dropped from each line, so `## text` yields "text".
func Collect(attrs []*ast.Attribute) string {
	lines := ast.Docs(attrs)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, " ")
	}
	return strings.Join(lines, "\n")
}

// Read parses the doc comments among attrs.
func (r *Reader) Read(ctx context.Context, attrs []*ast.Attribute) (*Doc, error) {
	return r.Parse(ctx, Collect(attrs))
}

// Parse parses Markdown source.
func (r *Reader) Parse(ctx context.Context, source string) (*Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse docs: %w", err)
	}

	doc := &Doc{Source: source}
	if strings.TrimSpace(source) == "" {
		return doc, nil
	}

	src := []byte(source)
	root := r.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	err := gast.Walk(root, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}

		switch n := n.(type) {
		case *gast.Paragraph:
			if doc.Summary == "" {
				doc.Summary = plainText(n, src)
			}
			return gast.WalkContinue, nil
		case *gast.Heading:
			doc.Headings = append(doc.Headings, plainText(n, src))
			return gast.WalkSkipChildren, nil
		case *gast.Link:
			doc.Links = append(doc.Links, string(n.Destination))
		case *gast.AutoLink:
			doc.Links = append(doc.Links, string(n.URL(src)))
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docs: %w", err)
	}

	return doc, nil
}

// plainText flattens the inline content of n.
func plainText(n gast.Node, src []byte) string {
	var b strings.Builder

	//nolint:errcheck // The callback never fails.
	gast.Walk(n, func(child gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch c := child.(type) {
		case *gast.Text:
			b.Write(c.Segment.Value(src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gast.String:
			b.Write(c.Value)
		case *gast.AutoLink:
			b.Write(c.Label(src))
		}
		return gast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
