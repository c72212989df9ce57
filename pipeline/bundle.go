package pipeline

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Bundle writes a deflate-compressed zip archive at zipPath containing each
// named file from dir under its bare name, no directory prefix.
func Bundle(dir string, names []string, zipPath string) error {
	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", zipPath, err)
	}

	zw := zip.NewWriter(f)
	for _, name := range names {
		if err := addEntry(zw, dir, name); err != nil {
			zw.Close()
			f.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing %s: %w", zipPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", zipPath, err)
	}
	return nil
}

func addEntry(zw *zip.Writer, dir, name string) error {
	src, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer src.Close()

	// zip.Writer.Create uses deflate.
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("compressing %s: %w", name, err)
	}
	return nil
}
