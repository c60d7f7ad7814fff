package driver

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/project"
	"golang.org/x/xerrors"
)

// Cache memoizes CompileFile results by absolute path and last-modified
// timestamp (§4.7: "cache hit skips the pipeline"). The zero value is ready
// to use. Safe for concurrent use across a parallel project build (§5:
// "that map must be protected").
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	result  *Result
}

// CompileFile reads path, compiling it unless a cached result from an
// unchanged mtime already exists.
func (c *Cache) CompileFile(path string, opts Options) (*Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, xerrors.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, xerrors.Errorf("stating %s: %w", abs, err)
	}

	c.mu.Lock()
	if c.entries == nil {
		c.entries = make(map[string]cacheEntry)
	}
	if entry, ok := c.entries[abs]; ok && entry.modTime.Equal(info.ModTime()) {
		c.mu.Unlock()
		return entry.result, nil
	}
	c.mu.Unlock()

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, xerrors.Errorf("reading %s: %w", abs, err)
	}
	result := CompileSource(abs, string(src), opts)

	c.mu.Lock()
	c.entries[abs] = cacheEntry{modTime: info.ModTime(), result: result}
	c.mu.Unlock()

	return result, nil
}

// ProjectFileResult is one file's outcome within a ProjectResult.
type ProjectFileResult struct {
	Src    string
	Dist   string
	Result *Result
}

// ProjectResult aggregates per-file outcomes across a CompileProject run
// (§4.7: "Aggregate per-file success, failure, and timing").
type ProjectResult struct {
	Files     []ProjectFileResult
	Succeeded int
	Failed    int
	ElapsedMs int64
}

// CompileProject discovers cfg's `.ntl` sources, compiles each with the
// project's compiler options, and writes the mirrored output under Dist
// (§4.7: "compile each to its mirrored path under dist").
func (c *Cache) CompileProject(cfg *project.Config) (*ProjectResult, error) {
	start := time.Now()
	relPaths, err := cfg.Discover()
	if err != nil {
		return nil, err
	}

	opts := Options{
		Target: Target(cfg.CompilerOptions.Target),
		Strict: cfg.CompilerOptions.Strict,
		Minify: cfg.CompilerOptions.Minify,
	}

	out := &ProjectResult{}
	for _, rel := range relPaths {
		srcPath := filepath.Join(cfg.SrcDir(), rel)
		result, err := c.CompileFile(srcPath, opts)
		distPath := cfg.OutputPath(rel)
		if err != nil {
			out.Failed++
			out.Files = append(out.Files, ProjectFileResult{Src: rel, Dist: distPath, Result: failure(diagnostic.List{{
				Phase: diagnostic.PhaseCompile, Severity: diagnostic.Error,
				Message: err.Error(), Code: diagnostic.CodeInternal, File: rel,
			}}, opts.Target, time.Since(start))})
			continue
		}
		if !result.Success {
			out.Failed++
			out.Files = append(out.Files, ProjectFileResult{Src: rel, Dist: distPath, Result: result})
			continue
		}
		if writeErr := writeOutput(distPath, result.Code); writeErr != nil {
			out.Failed++
			continue
		}
		out.Succeeded++
		out.Files = append(out.Files, ProjectFileResult{Src: rel, Dist: distPath, Result: result})
	}
	out.ElapsedMs = time.Since(start).Milliseconds()
	return out, nil
}

func writeOutput(path, code string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return xerrors.Errorf("creating output directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return xerrors.Errorf("writing %s: %w", path, err)
	}
	return nil
}
