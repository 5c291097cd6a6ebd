// Package archive packs a staged book directory into an EPUB container.
package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"

	herrors "github.com/htmls2epub/cli/internal/errors"
	"github.com/htmls2epub/cli/internal/output"
)

// MimetypeEntry is stored first and uncompressed so readers can sniff the
// container type from a fixed offset.
const MimetypeEntry = "mimetype"

// Result summarizes a written archive.
type Result struct {
	// Bytes is the size of the archive file.
	Bytes int64

	// Entries lists archive entry names in write order.
	Entries []string

	// Skipped lists files that disappeared between listing and reading.
	Skipped []string
}

// Directory zips every regular file under srcDir into dest. mimetype, when
// present, is the first entry and is stored; everything else is deflated in
// lexical walk order.
//
// A file that no longer exists when it is reached is logged and skipped.
// Any other failure aborts with ErrArchive and removes the partial dest.
func Directory(ctx context.Context, fsys afero.Fs, srcDir, dest string) (res *Result, err error) {
	f, err := fsys.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, herrors.WrapCause(herrors.ErrArchive, err, "creating "+dest)
	}
	closed := false
	defer func() {
		if !closed {
			_ = f.Close()
		}
		if err != nil {
			if rmErr := fsys.Remove(dest); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				output.Warn("could not remove partial archive", "path", dest, "err", rmErr)
			}
		}
	}()

	cw := &countingWriter{w: f}
	zw := zip.NewWriter(cw)
	res = &Result{}

	a := &archiver{fsys: fsys, zw: zw, res: res}

	mimetype := filepath.Join(srcDir, MimetypeEntry)
	if _, err := fsys.Stat(mimetype); err == nil {
		if err := a.add(mimetype, MimetypeEntry, zip.Store); err != nil {
			return nil, err
		}
	}

	err = afero.Walk(fsys, srcDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				a.skip(p, err)
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if name == MimetypeEntry {
			return nil
		}
		return a.add(p, name, zip.Deflate)
	})
	if err != nil {
		if errors.Is(err, herrors.ErrArchive) {
			return nil, err
		}
		return nil, herrors.WrapCause(herrors.ErrArchive, err, "walking "+srcDir)
	}

	if err := zw.Close(); err != nil {
		return nil, herrors.WrapCause(herrors.ErrArchive, err, "finishing "+dest)
	}
	closed = true
	if err := f.Close(); err != nil {
		return nil, herrors.WrapCause(herrors.ErrArchive, err, "closing "+dest)
	}

	res.Bytes = cw.n
	return res, nil
}

type archiver struct {
	fsys afero.Fs
	zw   *zip.Writer
	res  *Result
}

func (a *archiver) add(path, name string, method uint16) error {
	src, err := a.fsys.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.skip(path, err)
			return nil
		}
		return herrors.WrapCause(herrors.ErrArchive, err, "opening "+path)
	}
	defer src.Close()

	w, err := a.zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return herrors.WrapCause(herrors.ErrArchive, err, "adding "+name)
	}
	if _, err := io.Copy(w, src); err != nil {
		return herrors.WrapCause(herrors.ErrArchive, err, "writing "+name)
	}

	a.res.Entries = append(a.res.Entries, name)
	output.Debug("archived", "entry", name)
	return nil
}

func (a *archiver) skip(path string, err error) {
	output.Warn("file vanished while archiving, skipping", "path", path, "err", err)
	a.res.Skipped = append(a.res.Skipped, path)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
