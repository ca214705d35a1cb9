// Package analysis turns a check run into the report every output format
// renders: a flat diagnostic list plus views grouped by file and by code.
package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/runner"
	"github.com/yaklabco/dapic/pkg/source"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// counts is the severity breakdown shared by totals, files and codes.
type counts struct {
	errors, warnings, advice int
}

func (c *counts) add(sev diag.Severity) {
	switch sev {
	case diag.SeverityError:
		c.errors++
	case diag.SeverityWarning:
		c.warnings++
	default:
		c.advice++
	}
}

type analysisContext struct {
	opts      Options
	codeMap   map[string]*CodeAnalysis
	codeCount map[string]*counts
	codeFiles map[string]map[string]bool
	files     []FileAnalysis
}

func newAnalysisContext(opts Options) *analysisContext {
	return &analysisContext{
		opts:      opts,
		codeMap:   make(map[string]*CodeAnalysis),
		codeCount: make(map[string]*counts),
		codeFiles: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) code(d *diag.Diagnostic) (*CodeAnalysis, *counts) {
	ca, ok := ctx.codeMap[d.Code]
	if !ok {
		ca = &CodeAnalysis{Code: d.Code, Name: d.Name}
		ctx.codeMap[d.Code] = ca
		ctx.codeCount[d.Code] = &counts{}
		ctx.codeFiles[d.Code] = make(map[string]bool)
	}
	return ca, ctx.codeCount[d.Code]
}

// Analyze transforms a runner.Result into a Report in a single pass over
// the diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	var sm *source.Map
	if result.Session != nil {
		sm = result.Session.SourceMap
	}

	ctx := newAnalysisContext(opts)
	var total counts

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		if file.Error != nil {
			report.Totals.FilesUnreadable++
			report.Failures = append(report.Failures, FileFailure{Path: displayPath, Error: file.Error.Error()})
			continue
		}

		fa := FileAnalysis{Path: displayPath, Parsed: file.Parsed(), Lang: file.Lang}
		var fileCount counts
		fileCodes := make(map[string]bool)

		for _, d := range file.Diagnostics {
			if !opts.shows(d.Severity) {
				report.Totals.Hidden++
				continue
			}
			report.Totals.Issues++
			fa.Issues++
			total.add(d.Severity)
			fileCount.add(d.Severity)
			fileCodes[d.Code] = true

			ca, cc := ctx.code(d)
			ca.Issues++
			cc.add(d.Severity)
			ctx.codeFiles[d.Code][displayPath] = true

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, NewEntry(sm, displayPath, d, opts.CodeFormat))
			}
		}

		fa.Errors, fa.Warnings, fa.Advice = fileCount.errors, fileCount.warnings, fileCount.advice
		fa.Codes = slices.Sorted(maps.Keys(fileCodes))

		if fa.Issues > 0 {
			report.Totals.FilesWithIssues++
			ctx.files = append(ctx.files, fa)
		}
		if !fa.Parsed || fa.Errors > 0 {
			report.Totals.FilesWithErrors++
		}
	}

	report.Totals.Errors, report.Totals.Warnings, report.Totals.Advice = total.errors, total.warnings, total.advice
	report.Totals.Suppressed = result.Stats.Suppressed

	if opts.IncludeByCode {
		report.ByCode = ctx.buildByCode()
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.files
		sortFileAnalysis(report.ByFile, opts.SortBy, opts.SortDesc)
	}

	return report
}

// NewEntry resolves d against sm. Without a source map, or for a dummy
// span, positions stay zero.
func NewEntry(sm *source.Map, path string, d *diag.Diagnostic, format config.CodeFormat) DiagnosticEntry {
	entry := DiagnosticEntry{
		FilePath: path,
		Code:     d.Code,
		Name:     d.Name,
		Display:  config.FormatCode(format, d.Code, d.Name),
		Severity: string(d.Severity),
		Message:  d.Message,
		Label:    d.Label,
		Help:     d.Help,
		Notes:    d.Notes,
	}
	if sm == nil || d.Span.IsDummy() {
		return entry
	}

	if start, ok := sm.Position(d.Span.Lo); ok {
		entry.StartLine, entry.StartColumn = start.Line, start.Column
		entry.SourceLine, _ = start.File.LineContent(start.Line)
	}
	if end, ok := sm.Position(d.Span.Hi); ok {
		entry.EndLine, entry.EndColumn = end.Line, end.Column
	}
	return entry
}

func (ctx *analysisContext) buildByCode() []CodeAnalysis {
	result := make([]CodeAnalysis, 0, len(ctx.codeMap))
	for code, ca := range ctx.codeMap {
		c := ctx.codeCount[code]
		ca.Errors, ca.Warnings, ca.Advice = c.errors, c.warnings, c.advice
		ca.Files = slices.Sorted(maps.Keys(ctx.codeFiles[code]))
		result = append(result, *ca)
	}
	sortCodeAnalysis(result, ctx.opts.SortBy, ctx.opts.SortDesc)
	return result
}

// bySeverity orders errors first, then warnings, then the total.
func bySeverity(le, lw, li, re, rw, ri int) int {
	if c := cmp.Compare(re, le); c != 0 {
		return c
	}
	if c := cmp.Compare(rw, lw); c != 0 {
		return c
	}
	return cmp.Compare(ri, li)
}

func byCount(left, right int, desc bool) int {
	if desc {
		return cmp.Compare(right, left)
	}
	return cmp.Compare(left, right)
}

func sortCodeAnalysis(codes []CodeAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(codes, func(left, right CodeAnalysis) int {
		var c int
		switch sortBy {
		case SortByAlpha:
		case SortBySeverity:
			c = bySeverity(left.Errors, left.Warnings, left.Issues, right.Errors, right.Warnings, right.Issues)
		default:
			c = byCount(left.Issues, right.Issues, desc)
		}
		if c == 0 {
			c = cmp.Compare(left.Code, right.Code)
		}
		return c
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		var c int
		switch sortBy {
		case SortByAlpha:
		case SortBySeverity:
			c = bySeverity(left.Errors, left.Warnings, left.Issues, right.Errors, right.Warnings, right.Issues)
		default:
			c = byCount(left.Issues, right.Issues, desc)
		}
		if c == 0 {
			c = cmp.Compare(left.Path, right.Path)
		}
		return c
	})
}
