// Package pipeline is the batch driver: one sequential pass over the input
// table that resolves tokens, renders one QR image per row, writes the
// augmented manifest, and optionally bundles the images into a zip archive.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"qrmint/render"
	"qrmint/tabular"
	"qrmint/token"
)

// Options configures a single run.
type Options struct {
	BaseURL  string // webapp URL the token is appended to
	OutDir   string // directory receiving the image files
	TokenLen int    // length of freshly minted tokens
	Zip      bool   // bundle images into <OutDir>.zip after the manifest
	Output   string // manifest path
}

// Result summarizes a completed run.
type Result struct {
	Rows         int
	Generated    int // rows that received a freshly minted token
	Files        []string
	ManifestPath string
	ArchivePath  string // empty unless Zip was requested
}

// Run executes the pipeline over tbl. The input table is never mutated; the
// manifest is built from a clone carrying the resolved token column and the
// new qr_file column. Progress acknowledgments (one line per row, one per
// completion step) go to progress. The first failure aborts the run:
// already-written images stay on disk, no manifest is written, nothing is
// cleaned up.
func Run(tbl *tabular.Table, r render.Renderer, opts Options, rng *rand.Rand, log *slog.Logger, progress io.Writer) (*Result, error) {
	// Load already validated this; check again so a hand-built table cannot
	// reach the filesystem without the required column.
	if tbl.Index(tabular.ColFullName) < 0 {
		return nil, fmt.Errorf("%w: %s", tabular.ErrMissingColumn, tabular.ColFullName)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir %s: %w", opts.OutDir, err)
	}

	n := tbl.Len()
	digits := len(strconv.Itoa(n))
	tokens := make([]string, n)
	files := make([]string, n)
	generated := 0

	for i := 0; i < n; i++ {
		tok, minted := token.Resolve(tbl.Get(i, tabular.ColToken), opts.TokenLen, rng)
		if minted {
			generated++
		}
		tokens[i] = tok

		url := render.BuildURL(opts.BaseURL, tok)
		name := fmt.Sprintf("%0*d_%s.%s", digits, i+1, tok, r.Ext())
		if err := r.Render(url, filepath.Join(opts.OutDir, name)); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", name, err)
		}
		files[i] = name

		log.Debug("rendered", "file", name, "row", i+1)
		fmt.Fprintf(progress, "✔ %s\n", name)
	}

	manifest := tbl.Clone()
	if err := manifest.SetColumn(tabular.ColToken, tokens); err != nil {
		return nil, err
	}
	if err := manifest.SetColumn(tabular.ColQRFile, files); err != nil {
		return nil, err
	}
	if err := manifest.Write(opts.Output); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	fmt.Fprintf(progress, "wrote %s\n", opts.Output)

	res := &Result{
		Rows:         n,
		Generated:    generated,
		Files:        files,
		ManifestPath: opts.Output,
	}

	if opts.Zip {
		// Failure here leaves the images and manifest on disk untouched.
		zipPath := opts.OutDir + ".zip"
		if err := Bundle(opts.OutDir, files, zipPath); err != nil {
			return nil, fmt.Errorf("creating archive: %w", err)
		}
		res.ArchivePath = zipPath
		fmt.Fprintf(progress, "created %s\n", zipPath)
	}

	return res, nil
}
