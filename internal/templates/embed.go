// Package templates provides the bundled EPUB template tree.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

//go:embed epub
var epubFS embed.FS

const rootDir = "epub"

const (
	// MetadataFile is the OPF package document inside the template.
	MetadataFile = "metadata.opf"

	// NavigationFile is the NCX navigation document inside the template.
	NavigationFile = "toc.ncx"

	// MimetypeFile must be the first, uncompressed archive entry.
	MimetypeFile = "mimetype"
)

// Stage copies the template into targetDir and returns the files written,
// relative to targetDir.
func Stage(fsys afero.Fs, targetDir string) ([]string, error) {
	var created []string

	err := fs.WalkDir(epubFS, rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := relPath(p)
		if rel == "." {
			return fsys.MkdirAll(targetDir, 0o755)
		}

		targetPath := filepath.Join(targetDir, filepath.FromSlash(rel))

		if d.IsDir() {
			return fsys.MkdirAll(targetPath, 0o755)
		}

		content, err := fs.ReadFile(epubFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		if err := fsys.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", targetPath, err)
		}
		if err := afero.WriteFile(fsys, targetPath, content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", targetPath, err)
		}

		created = append(created, rel)
		return nil
	})

	return created, err
}

// ListFiles returns all files in the template, slash-separated.
func ListFiles() ([]string, error) {
	var files []string

	err := fs.WalkDir(epubFS, rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, relPath(p))
		return nil
	})

	return files, err
}

// ReadFile returns the content of a template file.
func ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(epubFS, path.Join(rootDir, name))
}

func relPath(p string) string {
	if p == rootDir {
		return "."
	}
	return p[len(rootDir)+1:]
}
