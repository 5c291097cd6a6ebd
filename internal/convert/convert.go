// Package convert turns a directory of HTML files plus its manifest into an
// EPUB archive.
//
// A run stages the bundled template into a scratch directory, copies the
// book's files into it, writes the navigation and package documents, zips
// the tree and removes the scratch directory. Steps run in sequence except
// the content copy, which fans out and fails fast.
package convert

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/htmls2epub/cli/internal/archive"
	"github.com/htmls2epub/cli/internal/book"
	"github.com/htmls2epub/cli/internal/epub"
	herrors "github.com/htmls2epub/cli/internal/errors"
	"github.com/htmls2epub/cli/internal/nav"
	"github.com/htmls2epub/cli/internal/output"
	"github.com/htmls2epub/cli/internal/templates"
	"github.com/htmls2epub/cli/internal/xmldoc"
)

// copyConcurrency bounds simultaneous file copies.
const copyConcurrency = 8

// Result describes a finished run.
type Result struct {
	// OutputPath is the written archive.
	OutputPath string

	// Bytes is the archive size.
	Bytes int64

	// UUID is the book identifier written to both documents.
	UUID string

	// Metadata is what ended up in the package document.
	Metadata epub.Metadata

	// Entries is the package manifest, the navigation entry last.
	Entries []book.FileEntry

	// NavEntries counts outline entries.
	NavEntries int

	// Skipped lists files that vanished while archiving.
	Skipped []string
}

// Converter runs conversions against a filesystem.
type Converter struct {
	fs    afero.Fs
	now   func() time.Time
	newID func() (string, error)
}

// Option configures a Converter.
type Option func(*Converter)

// WithFs sets the filesystem. The default is the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(c *Converter) {
		c.fs = fsys
	}
}

// WithClock sets the source of the dc:date timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}

// WithIDSource sets the book identifier generator.
func WithIDSource(newID func() (string, error)) Option {
	return func(c *Converter) {
		c.newID = newID
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		fs:    afero.NewOsFs(),
		now:   time.Now,
		newID: timeUUID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// timeUUID returns a version 1 UUID.
func timeUUID() (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Convert runs one conversion.
func (c *Converter) Convert(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	manifest, err := book.LoadManifest(c.fs, opts.InputDir)
	if err != nil {
		return nil, err
	}
	if err := manifest.Validate(reservedEntries()...); err != nil {
		return nil, err
	}

	tree, err := nav.BuildTree(manifest.Files)
	if err != nil {
		return nil, err
	}

	meta := opts.Metadata.
		Merge(epub.Metadata{Title: manifest.Title, Creator: manifest.Creator, Language: manifest.Language}).
		Merge(opts.Fallback).
		Merge(epub.DefaultMetadata())

	logger := output.BookLogger(meta.Title)
	workDir := opts.WorkDir()

	if err := c.stage(ctx, logger, opts.OutputDir, workDir); err != nil {
		return nil, err
	}
	defer c.cleanup(logger, workDir)

	if err := c.copyFiles(ctx, opts.InputDir, workDir, manifest.Files); err != nil {
		return nil, err
	}
	logger.Debug("copied book files", "count", len(manifest.Files))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	uid, err := c.newID()
	if err != nil {
		return nil, herrors.WrapCause(herrors.ErrIO, err, "generating book identifier")
	}
	meta.Identifier = uid
	meta.Date = c.now()

	navEntry, err := c.writeNavigation(workDir, tree, uid)
	if err != nil {
		return nil, err
	}
	entries := append(append([]book.FileEntry(nil), manifest.Files...), navEntry)
	logger.Debug("wrote navigation", "entries", tree.Len(), "depth", epub.Depth(tree))

	if err := c.writePackage(workDir, meta, entries); err != nil {
		return nil, err
	}
	logger.Debug("wrote package document", "items", len(entries))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outPath := opts.OutputPath()
	arc, err := archive.Directory(ctx, c.fs, workDir, outPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("archived", "path", outPath, "bytes", arc.Bytes)

	return &Result{
		OutputPath: outPath,
		Bytes:      arc.Bytes,
		UUID:       uid,
		Metadata:   meta,
		Entries:    entries,
		NavEntries: tree.Len(),
		Skipped:    arc.Skipped,
	}, nil
}

// reservedEntries are the generated files a manifest must not shadow.
func reservedEntries() []book.FileEntry {
	files, err := templates.ListFiles()
	if err != nil {
		files = []string{templates.MimetypeFile, templates.MetadataFile}
	}

	reserved := []book.FileEntry{epub.NavigationEntry(templates.NavigationFile)}
	for _, f := range files {
		if f != templates.NavigationFile {
			reserved = append(reserved, book.FileEntry{Filename: f})
		}
	}
	return reserved
}

func (c *Converter) stage(ctx context.Context, logger *log.Logger, outputDir, workDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.fs.RemoveAll(workDir); err != nil {
		return herrors.WrapCause(herrors.ErrIO, err, "removing stale "+workDir)
	}
	if err := c.fs.MkdirAll(outputDir, 0o755); err != nil {
		return herrors.WrapCause(herrors.ErrIO, err, "creating "+outputDir)
	}
	files, err := templates.Stage(c.fs, workDir)
	if err != nil {
		return herrors.WrapCause(herrors.ErrIO, err, "staging template into "+workDir)
	}
	logger.Debug("staged template", "dir", workDir, "files", len(files))
	return nil
}

func (c *Converter) cleanup(logger *log.Logger, workDir string) {
	if err := c.fs.RemoveAll(workDir); err != nil {
		logger.Warn("could not remove scratch directory", "dir", workDir, "err", err)
	}
}

// copyFiles copies every listed file into workDir. The first failure
// cancels the remaining copies.
func (c *Converter) copyFiles(ctx context.Context, inputDir, workDir string, files []book.FileEntry) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(copyConcurrency)

	for _, f := range files {
		f := f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src := filepath.Join(inputDir, filepath.FromSlash(f.Filename))
			dst := filepath.Join(workDir, filepath.FromSlash(f.Filename))
			return c.copyFile(src, dst)
		})
	}
	return g.Wait()
}

func (c *Converter) copyFile(src, dst string) error {
	in, err := c.fs.Open(src)
	if err != nil {
		return herrors.WrapCause(herrors.ErrIO, err, "opening "+src)
	}
	defer in.Close()

	if err := c.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return herrors.WrapCause(herrors.ErrIO, err, "creating directory for "+dst)
	}

	out, err := c.fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return herrors.WrapCause(herrors.ErrIO, err, "creating "+dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return herrors.WrapCause(herrors.ErrIO, err, "copying "+src)
	}
	if err := out.Close(); err != nil {
		return herrors.WrapCause(herrors.ErrIO, err, "closing "+dst)
	}
	return nil
}

func (c *Converter) writeNavigation(workDir string, tree *nav.Tree, uid string) (book.FileEntry, error) {
	navPath := filepath.Join(workDir, templates.NavigationFile)

	doc, err := xmldoc.Load(c.fs, navPath)
	if err != nil {
		return book.FileEntry{}, err
	}
	doc, entry, err := epub.WriteNavigation(doc, tree, uid, navPath)
	if err != nil {
		return book.FileEntry{}, err
	}
	if err := doc.Save(c.fs, navPath); err != nil {
		return book.FileEntry{}, err
	}
	return entry, nil
}

func (c *Converter) writePackage(workDir string, meta epub.Metadata, entries []book.FileEntry) error {
	opfPath := filepath.Join(workDir, templates.MetadataFile)

	doc, err := xmldoc.Load(c.fs, opfPath)
	if err != nil {
		return err
	}
	if doc, err = epub.WriteMetadata(doc, meta); err != nil {
		return err
	}
	if doc, err = epub.WriteManifest(doc, entries); err != nil {
		return err
	}
	return doc.Save(c.fs, opfPath)
}
