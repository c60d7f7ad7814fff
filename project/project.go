// Package project loads and validates the `ntl.json` project configuration
// schema (§6) and discovers the `.ntl` source files it describes. It is
// grounded on the teacher's config-free, single-file-at-a-time invocation
// (cmd/yparse/yparse.go only ever takes one path on the command line),
// generalized here to a directory-tree project manifest; the include/exclude
// glob matching uses bmatcuk/doublestar, the one glob library the domain
// stack pulls in for this purpose.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/xerrors"
)

// CompilerOptions mirrors `ntl.json`'s `compilerOptions` object (§6).
type CompilerOptions struct {
	Target    string `json:"target"`
	Strict    bool   `json:"strict"`
	Minify    bool   `json:"minify"`
	TreeShake bool   `json:"treeShake"`
	Credits   bool   `json:"credits"`
}

// Config is the `ntl.json` project manifest (§6).
type Config struct {
	Name            string          `json:"name"`
	Version         string          `json:"version"`
	Src             string          `json:"src"`
	Dist            string          `json:"dist"`
	CompilerOptions CompilerOptions `json:"compilerOptions"`
	Include         []string        `json:"include"`
	Exclude         []string        `json:"exclude"`

	// dir is the directory ntl.json was loaded from; Src/Dist are resolved
	// relative to it.
	dir string
}

// defaultExcludeDirs are skipped during discovery regardless of Exclude
// (§4.7: "skip .-prefixed directories and the conventional dependency and
// output directories").
var defaultExcludeDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".git":         true,
}

// Load reads and parses the `ntl.json` file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("reading project config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, xerrors.Errorf("parsing project config %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	if cfg.Src == "" {
		cfg.Src = "src"
	}
	if cfg.Dist == "" {
		cfg.Dist = "dist"
	}
	if cfg.CompilerOptions.Target == "" {
		cfg.CompilerOptions.Target = "node"
	}
	return &cfg, nil
}

// SrcDir is the absolute source directory.
func (c *Config) SrcDir() string { return filepath.Join(c.dir, c.Src) }

// DistDir is the absolute output directory.
func (c *Config) DistDir() string { return filepath.Join(c.dir, c.Dist) }

// Discover walks SrcDir for `.ntl` files, honoring Include/Exclude globs and
// skipping dot-prefixed and conventional dependency/output directories
// (§4.7). Paths are returned relative to SrcDir.
func (c *Config) Discover() ([]string, error) {
	root := c.SrcDir()
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if info.IsDir() {
			base := filepath.Base(path)
			if rel != "." && (strings.HasPrefix(base, ".") || defaultExcludeDirs[base]) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".ntl" {
			return nil
		}
		if !c.included(rel) {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("discovering project sources: %w", err)
	}
	return out, nil
}

func (c *Config) included(rel string) bool {
	relSlash := filepath.ToSlash(rel)
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, relSlash); ok {
			return false
		}
	}
	if len(c.Include) == 0 {
		return true
	}
	for _, pattern := range c.Include {
		if ok, _ := doublestar.Match(pattern, relSlash); ok {
			return true
		}
	}
	return false
}

// OutputPath maps a source-relative `.ntl` path to its mirrored `.js` path
// under DistDir (§4.7).
func (c *Config) OutputPath(relSrc string) string {
	rel := strings.TrimSuffix(relSrc, ".ntl") + ".js"
	return filepath.Join(c.DistDir(), rel)
}

// Scaffold writes a minimal ntl.json, src/main.ntl, package.json, and
// .gitignore into dir (§6's `init` command).
func Scaffold(dir, name string) error {
	if name == "" {
		name = filepath.Base(dir)
	}
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		return xerrors.Errorf("scaffolding src directory: %w", err)
	}
	cfg := Config{
		Name:    name,
		Version: "0.1.0",
		Src:     "src",
		Dist:    "dist",
		CompilerOptions: CompilerOptions{
			Target:    "node",
			TreeShake: true,
		},
	}
	cfgBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return xerrors.Errorf("marshaling ntl.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ntl.json"), cfgBytes, 0o644); err != nil {
		return xerrors.Errorf("writing ntl.json: %w", err)
	}
	mainSrc := "fn main() {\n  console.log(\"hello, ntl\")\n}\n\nmain()\n"
	if err := os.WriteFile(filepath.Join(dir, "src", "main.ntl"), []byte(mainSrc), 0o644); err != nil {
		return xerrors.Errorf("writing src/main.ntl: %w", err)
	}
	pkgJSON := `{
  "name": "` + name + `",
  "version": "0.1.0",
  "private": true
}
`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkgJSON), 0o644); err != nil {
		return xerrors.Errorf("writing package.json: %w", err)
	}
	gitignore := "node_modules/\ndist/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return xerrors.Errorf("writing .gitignore: %w", err)
	}
	return nil
}
