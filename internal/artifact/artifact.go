package artifact

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrEmptySource is returned when the source directory holds no files.
var ErrEmptySource = errors.New("source directory contains no files")

// Artifact describes a built archive on local disk.
type Artifact struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Files int    `json:"files"`

	// SHA256 is the hex digest of the archive bytes.
	SHA256 string `json:"sha256"`
	// CodeSHA256 is the base64 digest, the form Lambda reports as CodeSha256.
	CodeSHA256 string `json:"codeSha256"`
}

// Build zips every file below srcDir into archivePath.
//
// Entries are written in lexical order with paths relative to srcDir and
// their file modes preserved. The archive itself is skipped when it lies
// inside srcDir, also when reached through a symlink. Any archive already at
// archivePath is removed first, and on failure no partial archive is left
// behind.
func Build(srcDir, archivePath string) (*Artifact, error) {
	if err := Remove(archivePath); err != nil {
		return nil, err
	}

	info, err := os.Stat(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", srcDir)
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	self, err := f.Stat()
	if err != nil {
		_ = f.Close()
		_ = os.Remove(archivePath)
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	hasher := sha256.New()
	zw := zip.NewWriter(io.MultiWriter(f, hasher))

	files, walkErr := addTree(zw, srcDir, self)
	closeErr := zw.Close()
	if err := f.Close(); err != nil && closeErr == nil {
		closeErr = err
	}

	switch {
	case walkErr != nil:
		_ = os.Remove(archivePath)
		return nil, fmt.Errorf("failed to package %s: %w", srcDir, walkErr)
	case closeErr != nil:
		_ = os.Remove(archivePath)
		return nil, fmt.Errorf("failed to finalize archive: %w", closeErr)
	case files == 0:
		_ = os.Remove(archivePath)
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, srcDir)
	}

	stat, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	sum := hasher.Sum(nil)
	return &Artifact{
		Name:       filepath.Base(archivePath),
		Path:       archivePath,
		Size:       stat.Size(),
		Files:      files,
		SHA256:     hex.EncodeToString(sum),
		CodeSHA256: base64.StdEncoding.EncodeToString(sum),
	}, nil
}

// Remove deletes the archive at path. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove stale archive %s: %w", path, err)
	}
	return nil
}

func addTree(zw *zip.Writer, srcDir string, skip fs.FileInfo) (int, error) {
	files := 0
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		// Follow symlinks to regular files; everything else non-regular is skipped.
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if os.SameFile(info, skip) {
			return nil
		}

		if d.IsDir() {
			hdr, err := zip.FileInfoHeader(info)
			if err != nil {
				return err
			}
			hdr.Name = name + "/"
			hdr.Method = zip.Store
			_, err = zw.CreateHeader(hdr)
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		if err := addFile(zw, path, name, info); err != nil {
			return err
		}
		files++
		return nil
	})
	return files, err
}

func addFile(zw *zip.Writer, path, name string, info fs.FileInfo) error {
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	return nil
}
