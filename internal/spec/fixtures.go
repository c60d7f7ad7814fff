// Package spec loads the compiler's NTL-source-to-JavaScript-output
// regression fixture corpus from a directory tree, one fixture per
// subdirectory (§8's testable properties are exercised against this
// corpus). It is grounded on the teacher's internal/spec/tests.go
// yaml-test-suite loader, generalized from a single YAML/JSON pair per
// test to an NTL-source/JS-output pair, and from a single flat
// description file to the same "===" convention.
package spec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/helper/chroot"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
)

// Fixture is one compiler regression case: an NTL source and its expected
// JavaScript output, or a marker that compilation should fail.
type Fixture struct {
	Name        string
	Description string
	InputNTL    []byte
	OutputJS    []byte
	IsError     bool
}

func readFile(fs billy.Filesystem, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func exists(fs billy.Filesystem, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

func loadFixture(dir billy.Filesystem, name string) (Fixture, error) {
	description, err := readFile(dir, "===")
	if err != nil && !os.IsNotExist(err) {
		return Fixture{}, fmt.Errorf("loading description: %w", err)
	}
	input, err := readFile(dir, "in.ntl")
	if err != nil && !os.IsNotExist(err) {
		return Fixture{}, fmt.Errorf("loading input source: %w", err)
	}
	output, err := readFile(dir, "out.js")
	if err != nil && !os.IsNotExist(err) {
		return Fixture{}, fmt.Errorf("loading expected output: %w", err)
	}
	return Fixture{
		Name:        name,
		Description: string(description),
		InputNTL:    input,
		OutputJS:    output,
		IsError:     exists(dir, "error"),
	}, nil
}

// LoadFixture loads a single fixture directory at path.
func LoadFixture(path string) (Fixture, error) {
	if _, err := os.Stat(path); err != nil {
		return Fixture{}, err
	}
	return loadFixture(osfs.New(path), filepath.Base(path))
}

func loadFixtures(dir billy.Filesystem) ([]Fixture, error) {
	entries, err := dir.ReadDir("/")
	if err != nil {
		return nil, err
	}
	var fixtures []Fixture
	for _, info := range entries {
		if !info.IsDir() || info.Name() == "meta" {
			continue
		}
		fx, err := loadFixture(chroot.New(dir, info.Name()), info.Name())
		if err != nil {
			return nil, fmt.Errorf("loading fixture %s: %w", info.Name(), err)
		}
		fixtures = append(fixtures, fx)
	}
	sort.Slice(fixtures, func(i, j int) bool { return fixtures[i].Name < fixtures[j].Name })
	return fixtures, nil
}

// LoadFixtures loads every fixture under the directory at path, one
// subdirectory per case, sorted by name.
func LoadFixtures(path string) ([]Fixture, error) {
	return loadFixtures(osfs.New(path))
}

// RepoVersion reports the current commit hash of the git repository rooted
// at dir, used to stamp which revision of the fixture corpus a test run
// exercised. Returns "" (not an error) when dir is not inside a git
// repository, since the corpus may be vendored without its own history.
func RepoVersion(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return "", nil
		}
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}
