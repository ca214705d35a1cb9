// Package langdetect guesses whether a file handed to dapic is written in
// some other language, so a failed parse can say so.
package langdetect

import (
	"bytes"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/dapic/pkg/symbol"
)

// Detected language names.
const (
	LangGo         = "go"
	LangPython     = "python"
	LangJavaScript = "javascript"
	LangJSON       = "json"
	LangYAML       = "yaml"
	LangHTML       = "html"
	LangSQL        = "sql"
	LangRust       = "rust"
	LangBash       = "bash"
	LangMarkdown   = "markdown"
)

//nolint:gochecknoglobals // Read-only keyword list.
var itemKeywords = symbol.Strings(symbol.ItemKeywords())

//nolint:gochecknoglobals // Read-only classifier candidates.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Protocol Buffer",
}

// Sniff returns the language path and content appear to be written in, or
// "" when they could be a dapi document.
func Sniff(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
		return normalize(lang)
	}

	if len(bytes.TrimSpace(content)) == 0 || LooksLikeDapi(content) {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	for _, detect := range detectors {
		if lang := detect(content); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// LooksLikeDapi reports whether some line of content starts with an item
// keyword followed by a name or a brace, as in `meta {` or `model Pet`.
func LooksLikeDapi(content []byte) bool {
	for line := range bytes.Lines(content) {
		fields := strings.Fields(string(line))
		if len(fields) < 2 {
			continue
		}
		if !slices.Contains(itemKeywords, fields[0]) {
			continue
		}
		if isWord(fields[1]) {
			return true
		}
	}
	return false
}

func isWord(s string) bool {
	for _, r := range s {
		if r != '_' && r != '-' && r != '/' && r != '.' && r != '{' && r != '}' && r != ';' &&
			!('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// detectors run in order of specificity.
//
//nolint:gochecknoglobals // Read-only detector table.
var detectors = []func(content []byte) string{
	detectGo,
	detectPython,
	detectHTML,
	detectJSON,
	detectSQL,
	detectRust,
	detectJavaScript,
	detectYAML,
}

func detectGo(content []byte) string {
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("package ")) {
		return LangGo
	}
	return ""
}

func detectPython(content []byte) string {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return LangPython
	}
	if strings.Contains(s, "__name__") || strings.Contains(s, "__main__") {
		return LangPython
	}
	return ""
}

func detectHTML(content []byte) string {
	lower := bytes.ToLower(bytes.TrimSpace(content))
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return LangHTML
		}
	}
	return ""
}

func detectJSON(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`":`)) {
		return LangJSON
	}
	return ""
}

func detectSQL(content []byte) string {
	upper := strings.ToUpper(strings.TrimSpace(string(content)))
	for _, prefix := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, prefix) {
			return LangSQL
		}
	}
	return ""
}

func detectRust(content []byte) string {
	s := string(content)
	if strings.Contains(s, "fn main()") || strings.Contains(s, "println!") || strings.Contains(s, "let mut ") {
		return LangRust
	}
	return ""
}

func detectJavaScript(content []byte) string {
	s := string(content)
	if strings.Contains(s, "=>") || strings.Contains(s, "console.log") || strings.Contains(s, "const ") {
		return LangJavaScript
	}
	return ""
}

// detectYAML counts `key: value` lines and root-level list items.
func detectYAML(content []byte) string {
	count := 0
	for line := range bytes.Lines(content) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' || line[0] == '@' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	if count >= 2 {
		return LangYAML
	}
	return ""
}

// normalize converts go-enry language names to short lowercase tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return LangBash
	}
	return strings.ToLower(lang)
}
