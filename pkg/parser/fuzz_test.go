package parser_test

import (
	"testing"

	"github.com/yaklabco/dapic/pkg/parser"
	"github.com/yaklabco/dapic/pkg/session"
)

func FuzzParseRoot(f *testing.F) {
	seeds := []string{
		"meta {}",
		`meta { name "pets" version 1.0 }`,
		"##! doc\nmeta {}\nscope a;\nscope b { model C { id u64 } }",
		"meta {}\npath users/{id} { verb GET { code 200 { body [User] } } }",
		"meta {}\nmodel A { @doc(x id (a, b) |@format: uuid| }",
		"meta {}\nheaders { X-Id string \"desc\" }",
		"@@@ ] } ) |",
		"",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		sess := session.Default()
		file := sess.SourceMap.LoadAnon(src)

		root, err := parser.Parse(sess, file)
		if (root == nil) == (err == nil) {
			t.Fatalf("Parse(%q) returned root %v and error %v", src, root, err)
		}
		if err != nil && sess.Diag.ErrorCount() == 0 {
			t.Fatalf("Parse(%q) failed without reporting: %v", src, err)
		}
	})
}
