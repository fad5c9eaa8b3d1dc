package artifact

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// SkipFunc decides whether a path, relative to the tree being added, stays out of the archive.
type SkipFunc func(rel string, dir bool) bool

type Archive struct {
	w *zip.Writer
}

func NewArchive(w io.Writer) *Archive {
	return &Archive{w: zip.NewWriter(w)}
}

// AddTree writes every regular file under root into the archive, named by its
// path relative to root. Symlinked directories are not descended, matching a
// plain directory walk. Entries are not deduplicated.
func (a *Archive) AddTree(root string, skip SkipFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for file %q: %w", path, err)
		}

		if rel == "." {
			return nil
		}

		if skip != nil && skip(filepath.ToSlash(rel), d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		return a.addFile(path, filepath.ToSlash(rel), info)
	})
}

func (a *Archive) addFile(path, name string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = name
	header.Method = zip.Deflate

	w, err := a.w.CreateHeader(header)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to archive %q: %w", path, err)
	}

	return nil
}

func (a *Archive) Close() error {
	return a.w.Close()
}
