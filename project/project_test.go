package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ntl-lang/ntlc/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "ntl.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"name": "demo"}`)
	cfg, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "src", cfg.Src)
	assert.Equal(t, "dist", cfg.Dist)
	assert.Equal(t, "node", cfg.CompilerOptions.Target)
	assert.Equal(t, filepath.Join(dir, "src"), cfg.SrcDir())
	assert.Equal(t, filepath.Join(dir, "dist"), cfg.DistDir())
}

func TestDiscoverFindsNtlFilesHonoringExclude(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"name": "demo", "exclude": ["vendor/**"]}`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.ntl"), []byte("val x = 1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "vendor", "lib.ntl"), []byte("val y = 2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "notes.txt"), []byte("ignore me"), 0o644))

	cfg, err := project.Load(path)
	require.NoError(t, err)
	files, err := cfg.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{"main.ntl"}, files)
}

func TestDiscoverSkipsNodeModules(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"name": "demo"}`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "node_modules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "node_modules", "dep.ntl"), []byte("val z = 1"), 0o644))

	cfg, err := project.Load(path)
	require.NoError(t, err)
	files, err := cfg.Discover()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestOutputPathMirrorsDistDir(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"name": "demo"}`)
	cfg, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dist", "main.js"), cfg.OutputPath("main.ntl"))
}

func TestScaffoldWritesProjectSkeleton(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, project.Scaffold(dir, "demo"))

	for _, f := range []string{"ntl.json", filepath.Join("src", "main.ntl"), "package.json", ".gitignore"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	main, err := os.ReadFile(filepath.Join(dir, "src", "main.ntl"))
	require.NoError(t, err)
	assert.Contains(t, string(main), "console.log")
	assert.NotContains(t, string(main), "println")
}
