// Package output manages where plots are written: the per-run output
// directory, plot file names and the optional run summary table.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/inodb/txplot/internal/render"
	"github.com/inodb/txplot/internal/transcript"
)

// DefaultDirPrefix names run directories when no base name is given.
const DefaultDirPrefix = "Transcripts_Plots_dir_Run"

// maxAttempts bounds the search for a free directory name.
const maxAttempts = 10000

// CreateDir creates a fresh output directory and returns its path. An
// existing directory is never reused: with a base name the candidates are
// base, base_01, base_02 and so on; without one they are
// Transcripts_Plots_dir_Run01, Run02 and so on.
func CreateDir(base string) (string, error) {
	if base != "" {
		if parent := filepath.Dir(base); parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return "", fmt.Errorf("create output parent: %w", err)
			}
		}
	}

	for i := 0; i < maxAttempts; i++ {
		dir := candidate(base, i)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}
	return "", fmt.Errorf("create output directory: no free name for %q", base)
}

func candidate(base string, i int) string {
	if base == "" {
		return fmt.Sprintf("%s%02d", DefaultDirPrefix, i+1)
	}
	if i == 0 {
		return base
	}
	return fmt.Sprintf("%s_%02d", base, i)
}

// RemoveIfEmpty deletes dir when it contains no entries. It reports whether
// the directory was removed.
func RemoveIfEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	if len(entries) > 0 {
		return false, nil
	}
	if err := os.Remove(dir); err != nil {
		return false, err
	}
	return true, nil
}

// FileName returns the plot file name for one view of a transcript, e.g.
// "ENST00000311936_CDS_Short_Introns.png".
func FileName(id string, view transcript.View, mode transcript.Mode, format render.Format) string {
	return fmt.Sprintf("%s_%s_%s.%s", id, view.Noun(), mode.IntronStatus(), format.Ext())
}
