// Package batch drives plotting for a single transcript or for a list of
// (transcript, GTF file) pairs, writing all plots of a run into one
// freshly created output directory.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/txplot/internal/gtf"
	"github.com/inodb/txplot/internal/layout"
	"github.com/inodb/txplot/internal/output"
	"github.com/inodb/txplot/internal/render"
	"github.com/inodb/txplot/internal/transcript"
)

var (
	// ErrNothingToPlot is returned when a transcript has no features for
	// any of the selected views.
	ErrNothingToPlot = errors.New("nothing to plot")
	// ErrListNotFound is returned when the transcript list file is missing.
	ErrListNotFound = errors.New("transcript list not found")
)

// Result summarises a run.
type Result struct {
	OutputDir string
	Files     []string
	Skipped   int
}

// Runner plots transcripts. Runs are sequential.
type Runner struct {
	opts    Options
	logger  *zap.Logger
	summary *output.TabWriter
}

// NewRunner creates a Runner with a no-op logger.
func NewRunner(opts Options) *Runner {
	return &Runner{
		opts:   opts,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for skip warnings and progress messages.
func (r *Runner) SetLogger(l *zap.Logger) {
	r.logger = l
}

// SetSummary makes the runner add a row to w for every plot written.
// The caller writes the header and flushes.
func (r *Runner) SetSummary(w *output.TabWriter) {
	r.summary = w
}

// RunSingle plots one transcript from gtfPath. A transcript that is absent
// from the file is an error; the output directory is only created once the
// transcript has been found.
func (r *Runner) RunSingle(ctx context.Context, transcriptID, gtfPath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := gtf.ReadTranscript(gtfPath, transcriptID)
	if err != nil {
		return nil, err
	}
	t := transcript.New(transcriptID, records)
	if !r.hasFeatures(t) {
		return nil, fmt.Errorf("%w: %s has no %s records", ErrNothingToPlot, t.ID, r.opts.Select)
	}

	dir, err := output.CreateDir(r.opts.OutputDir)
	if err != nil {
		return nil, err
	}
	r.logger.Info("created output directory", zap.String("dir", dir))

	res := &Result{OutputDir: dir}
	if err := r.plot(t, dir, res); err != nil {
		return res, err
	}
	return res, nil
}

// RunList plots every transcript named in a two-column, tab-separated list
// file of transcript id and GTF path. Malformed rows, missing or empty GTF
// files, unreadable GTF files and transcripts absent from their file are
// logged and skipped. A malformed GTF line aborts the run. When no plot was written the output
// directory is removed again.
func (r *Runner) RunList(ctx context.Context, listPath string) (*Result, error) {
	if _, err := os.Stat(listPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrListNotFound, listPath)
		}
		return nil, fmt.Errorf("stat transcript list: %w", err)
	}

	f, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open transcript list: %w", err)
	}
	defer f.Close()

	dir, err := output.CreateDir(r.opts.OutputDir)
	if err != nil {
		return nil, err
	}
	r.logger.Info("created output directory", zap.String("dir", dir))

	res := &Result{OutputDir: dir}
	runErr := r.runRows(ctx, f, listPath, res)

	if len(res.Files) == 0 {
		if removed, err := output.RemoveIfEmpty(dir); err != nil {
			r.logger.Warn("failed to remove empty output directory", zap.String("dir", dir), zap.Error(err))
		} else if removed {
			r.logger.Info("no plots written, removed output directory", zap.String("dir", dir))
			res.OutputDir = ""
		}
	}

	r.logger.Info("batch finished",
		zap.Int("files", len(res.Files)),
		zap.Int("skipped", res.Skipped))
	return res, runErr
}

func (r *Runner) runRows(ctx context.Context, f *os.File, listPath string, res *Result) error {
	scanner := bufio.NewScanner(f)
	lineNumber := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			r.logger.Warn("skipping invalid line",
				zap.String("list", listPath),
				zap.Int("line", lineNumber),
				zap.String("text", line))
			res.Skipped++
			continue
		}

		transcriptID := gtf.StripVersion(strings.TrimSpace(parts[0]))
		gtfPath := strings.TrimSpace(parts[1])
		if err := r.runRow(transcriptID, gtfPath, res); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read transcript list: %w", err)
	}
	return nil
}

// runRow plots one list entry. Only unrecoverable errors are returned.
func (r *Runner) runRow(transcriptID, gtfPath string, res *Result) error {
	log := r.logger.With(zap.String("transcript", transcriptID), zap.String("gtf", gtfPath))

	info, err := os.Stat(gtfPath)
	if err != nil || info.Size() == 0 {
		log.Warn("GTF file does not exist or is empty, skipping")
		res.Skipped++
		return nil
	}

	records, err := gtf.ReadTranscript(gtfPath, transcriptID)
	if errors.Is(err, gtf.ErrTranscriptNotFound) {
		log.Warn("transcript not found, skipping")
		res.Skipped++
		return nil
	}
	var perr *gtf.ParseError
	if errors.As(err, &perr) {
		return err
	}
	if err != nil {
		log.Warn("failed to read GTF, skipping", zap.Error(err))
		res.Skipped++
		return nil
	}

	t := transcript.New(transcriptID, records)
	if !r.hasFeatures(t) {
		log.Warn("no features to plot, skipping", zap.Stringer("select", r.opts.Select))
		res.Skipped++
		return nil
	}
	return r.plot(t, res.OutputDir, res)
}

func (r *Runner) hasFeatures(t *transcript.Transcript) bool {
	for _, v := range r.opts.Select.Views() {
		if len(t.Features(v)) > 0 {
			return true
		}
	}
	return false
}

// plot writes one file per selected view that has features.
func (r *Runner) plot(t *transcript.Transcript, dir string, res *Result) error {
	for _, v := range r.opts.Select.Views() {
		features := t.Features(v)
		if len(features) == 0 {
			if v == transcript.ViewCDS {
				r.logger.Info("no CDS records, skipping CDS plot", zap.String("transcript", t.ID))
			} else {
				r.logger.Warn("no exon records, skipping exon plot", zap.String("transcript", t.ID))
			}
			continue
		}

		lo := r.opts.Layout
		lo.Color = r.opts.color(v)
		fig, err := layout.Plot(t, v, lo)
		if err != nil {
			return fmt.Errorf("lay out %s: %w", t.ID, err)
		}

		path := filepath.Join(dir, output.FileName(t.ID, v, lo.Mode, r.opts.Format))
		if err := render.Save(path, fig, r.opts.Format, r.opts.DPI); err != nil {
			return err
		}
		res.Files = append(res.Files, path)
		r.logger.Debug("wrote plot",
			zap.String("transcript", t.ID),
			zap.Stringer("view", v),
			zap.String("path", path))

		if r.summary != nil {
			if err := r.summary.Write(output.Plot{
				TranscriptID: t.ID,
				GeneName:     t.GeneName,
				View:         v,
				Features:     len(features),
				SpanBp:       transcript.SpanBp(features),
				Mode:         lo.Mode,
				Path:         path,
			}); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
		}
	}
	return nil
}
