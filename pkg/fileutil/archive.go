package fileutil

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// CompressDir archives the contents of dir into outputPath. The archive
// format follows the output extension: .zip or .tar.gz/.tgz. Entry names
// are relative to dir.
func CompressDir(dir, outputPath string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return pberrors.Wrap(pberrors.ErrCodeFileNotFound, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return pberrors.New(pberrors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}

	switch {
	case strings.HasSuffix(outputPath, ".zip"):
		return zipDir(dir, outputPath)
	case strings.HasSuffix(outputPath, ".tar.gz"), strings.HasSuffix(outputPath, ".tgz"):
		return tarGzDir(dir, outputPath)
	}
	return pberrors.New(pberrors.ErrCodeInvalidFormat, "unsupported archive format: %s", outputPath)
}

// ExtractArchive unpacks the .zip or .tar.gz/.tgz archive at archivePath
// into destDir. Entries that would escape destDir are rejected.
func ExtractArchive(archivePath, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}
	switch {
	case strings.HasSuffix(archivePath, ".zip"):
		return unzip(archivePath, destDir)
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		return untarGz(archivePath, destDir)
	}
	return pberrors.New(pberrors.ErrCodeInvalidFormat, "unsupported archive format: %s", archivePath)
}

// safeJoin resolves name under destDir, rejecting path traversal.
func safeJoin(destDir, name string) (string, error) {
	path := filepath.Join(destDir, name)
	if !strings.HasPrefix(path, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", pberrors.New(pberrors.ErrCodeInvalidPath, "archive entry %q escapes destination", name)
	}
	return path, nil
}

func zipDir(dir, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := zip.NewWriter(f)
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		entry, err := w.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(entry, src)
		return err
	})
	if err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}

func tarGzDir(dir, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
	if err != nil {
		tw.Close()
		gz.Close()
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return f.Close()
}

func unzip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return pberrors.Wrap(pberrors.ErrCodeInvalidFormat, err, "opening %s", archivePath)
	}
	defer r.Close()

	for _, entry := range r.File {
		path, err := safeJoin(destDir, entry.Name)
		if err != nil {
			return err
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		src, err := entry.Open()
		if err != nil {
			return err
		}
		err = writeFrom(path, src, entry.Mode())
		src.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func untarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return pberrors.Wrap(pberrors.ErrCodeFileNotFound, err, "opening %s", archivePath)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return pberrors.Wrap(pberrors.ErrCodeInvalidFormat, err, "reading %s", archivePath)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return pberrors.Wrap(pberrors.ErrCodeInvalidFormat, err, "reading %s", archivePath)
		}
		path, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := writeFrom(path, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		}
	}
}

func writeFrom(path string, src io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
