package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds the dapi files named by opts. Explicit file arguments are
// kept whatever their extension; directories are walked for files with one
// of the configured extensions. The result is absolute, deduplicated and
// sorted.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:     ctx,
		workDir: workDir,
		opts:    opts,
		exts:    opts.effectiveExtensions(),
		seen:    make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if !d.excluded(abs) {
				d.add(abs)
			}
			continue
		}

		if err := d.walk(abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	ctx     context.Context //nolint:containedctx // Scoped to one Discover call.
	workDir string
	opts    Options
	exts    []string
	seen    map[string]struct{}
	files   []string
}

func (d *discoverer) add(file string) {
	if _, dup := d.seen[file]; dup {
		return
	}
	d.seen[file] = struct{}{}
	d.files = append(d.files, file)
}

func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (p != root && d.excluded(p)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				// Walk the target, WalkDir does not descend through symlinks.
				return d.walk(target)
			}
		}

		if d.matches(p) {
			d.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// matches applies the extension, exclude and include filters to a walked file.
func (d *discoverer) matches(file string) bool {
	ext := filepath.Ext(file)
	if !slices.ContainsFunc(d.exts, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return false
	}
	if d.excluded(file) {
		return false
	}
	if len(d.opts.IncludeGlobs) == 0 {
		return true
	}
	return matchAny(d.rel(file), d.opts.IncludeGlobs)
}

func (d *discoverer) excluded(p string) bool {
	return matchAny(d.rel(p), d.opts.ExcludeGlobs)
}

func (d *discoverer) rel(p string) string {
	rel, err := filepath.Rel(d.workDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func matchAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// MatchGlob reports whether the slash-separated relative path rel matches
// pattern. `**` matches any number of whole segments, other segments use
// path.Match. A pattern without a slash also matches the base name, and a
// pattern matching a directory matches everything under it.
func MatchGlob(pattern, rel string) bool {
	pattern = filepath.ToSlash(pattern)
	rel = strings.TrimPrefix(rel, "./")

	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}

	pat := strings.Split(strings.Trim(pattern, "/"), "/")
	segs := strings.Split(rel, "/")

	// Try every prefix of rel so "vendor" also excludes "vendor/a.dapi".
	for n := len(segs); n > 0; n-- {
		if matchSegments(pat, segs[:n]) {
			return true
		}
	}
	return false
}

func matchSegments(pat, segs []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			rest := pat[1:]
			for i := 0; i <= len(segs); i++ {
				if matchSegments(rest, segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		if ok, err := path.Match(pat[0], segs[0]); err != nil || !ok {
			return false
		}
		pat, segs = pat[1:], segs[1:]
	}
	return len(segs) == 0
}
