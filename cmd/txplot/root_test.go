package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/txplot/internal/batch"
	"github.com/inodb/txplot/internal/gtf"
	"github.com/inodb/txplot/internal/render"
	"github.com/inodb/txplot/internal/transcript"
)

const cliGTF = `12	HAVANA	exon	100	200	.	-	.	gene_id "ENSG1"; transcript_id "T1.2"; gene_name "G1";
12	HAVANA	exon	300	450	.	-	.	gene_id "ENSG1"; transcript_id "T1.2"; gene_name "G1";
12	HAVANA	CDS	150	200	.	-	0	gene_id "ENSG1"; transcript_id "T1.2"; gene_name "G1";
`

// setupCLI isolates viper and the home directory for one test.
func setupCLI(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// parse runs the root command up to option validation.
func parse(t *testing.T, args ...string) (*runOptions, error) {
	t.Helper()
	cmd := newRootCmd()
	var opts *runOptions
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var err error
		opts, err = loadOptions(cmd.Flags(), args)
		return err
	}
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return opts, err
}

func TestLoadOptions_Defaults(t *testing.T) {
	setupCLI(t)

	opts, err := parse(t, "-t", "T1", "-g", "a.gtf")
	require.NoError(t, err)

	want := batch.DefaultOptions()
	assert.Equal(t, "T1", opts.transcript)
	assert.Equal(t, "a.gtf", opts.gtf)
	assert.Equal(t, want, opts.batch)
	assert.Equal(t, render.FormatPDF, opts.batch.Format)
	assert.Equal(t, transcript.ModeCompressed, opts.batch.Layout.Mode)
	assert.Equal(t, 10.0, opts.batch.Layout.Width)
	assert.Equal(t, 8.0, opts.batch.Layout.Height)
}

func TestLoadOptions_Flags(t *testing.T) {
	setupCLI(t)

	opts, err := parse(t, "-f", "list.tsv",
		"-s", "both", "--full_scale", "--no_transcript_label", "--labels", "full",
		"--format", "PNG", "--dpi", "150", "--dynamic_resize", "--figsize", "12,4",
		"--transcript_fontsize", "12", "--exon_color", "red", "--CDS_color", "#0f0",
		"-o", "out", "--summary")
	require.NoError(t, err)

	b := opts.batch
	assert.Equal(t, "list.tsv", opts.list)
	assert.True(t, opts.summary)
	assert.Equal(t, batch.SelectBoth, b.Select)
	assert.Equal(t, render.FormatPNG, b.Format)
	assert.Equal(t, 150, b.DPI)
	assert.Equal(t, "out", b.OutputDir)
	assert.Equal(t, transcript.ModeFullScale, b.Layout.Mode)
	assert.False(t, b.Layout.SummaryLabel)
	assert.True(t, b.Layout.EndpointLabels)
	assert.True(t, b.Layout.DynamicResize)
	assert.Equal(t, 12.0, b.Layout.Width)
	assert.Equal(t, 4.0, b.Layout.Height)
	assert.Equal(t, 12.0, b.Layout.FontSize)
	assert.InDelta(t, 1.0, b.ExonColor.R, 1e-9)
	assert.InDelta(t, 1.0, b.CDSColor.G, 1e-9)
}

func TestLoadOptions_FigsizeTwoValues(t *testing.T) {
	setupCLI(t)

	opts, err := parse(t, "-f", "list.tsv", "--figsize", "12", "4")
	require.NoError(t, err)
	assert.Equal(t, 12.0, opts.batch.Layout.Width)
	assert.Equal(t, 4.0, opts.batch.Layout.Height)

	opts, err = parse(t, "--figsize", "7", "3.5", "-f", "list.tsv")
	require.NoError(t, err)
	assert.Equal(t, 7.0, opts.batch.Layout.Width)
	assert.Equal(t, 3.5, opts.batch.Layout.Height)
}

func TestLoadOptions_Env(t *testing.T) {
	setupCLI(t)
	t.Setenv("TXPLOT_FORMAT", "svg")
	t.Setenv("TXPLOT_FIGSIZE", "6,3")

	opts, err := parse(t, "-t", "T1", "-g", "a.gtf")
	require.NoError(t, err)
	assert.Equal(t, render.FormatSVG, opts.batch.Format)
	assert.Equal(t, 6.0, opts.batch.Layout.Width)
	assert.Equal(t, 3.0, opts.batch.Layout.Height)

	opts, err = parse(t, "-t", "T1", "-g", "a.gtf", "--format", "png")
	require.NoError(t, err)
	assert.Equal(t, render.FormatPNG, opts.batch.Format, "flags override the environment")
}

func TestLoadOptions_ConfigFile(t *testing.T) {
	home := setupCLI(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".txplot.yaml"),
		[]byte("select: CDS\nexon_color: \"#000000\"\n"), 0o644))

	opts, err := parse(t, "-t", "T1", "-g", "a.gtf")
	require.NoError(t, err)
	assert.Equal(t, batch.SelectCDS, opts.batch.Select)
	assert.Equal(t, 0.0, opts.batch.ExonColor.R)
}

func TestLoadOptions_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"neither mode", []string{}},
		{"both modes", []string{"-t", "T1", "-g", "a.gtf", "-f", "list.tsv"}},
		{"transcript without gtf", []string{"-t", "T1"}},
		{"bad select", []string{"-f", "l", "-s", "introns"}},
		{"bad labels", []string{"-f", "l", "--labels", "some"}},
		{"bad format", []string{"-f", "l", "--format", "gif"}},
		{"bad colour", []string{"-f", "l", "--exon_color", "#12"}},
		{"zero dpi", []string{"-f", "l", "--dpi", "0"}},
		{"one figsize value", []string{"-f", "l", "--figsize", "10"}},
		{"negative figsize", []string{"-f", "l", "--figsize", "10,-1"}},
		{"wide dynamic figure", []string{"-f", "l", "--dynamic_resize", "--figsize", "25,8"}},
		{"zero font size", []string{"-f", "l", "--transcript_fontsize", "0"}},
		{"unknown flag", []string{"-f", "l", "--bogus"}},
		{"positional argument", []string{"-f", "l", "extra"}},
		{"numeric positional without figsize", []string{"-f", "l", "5"}},
		{"third figsize value", []string{"-f", "l", "--figsize", "12,4", "5"}},
		{"two positionals after figsize", []string{"-f", "l", "--figsize", "12", "4", "5"}},
		{"non-numeric figsize height", []string{"-f", "l", "--figsize", "12", "tall"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)
			_, err := parse(t, tt.args...)
			require.Error(t, err)

			var uerr *usageError
			assert.True(t, errors.As(err, &uerr), "got %T: %v", err, err)
			assert.Equal(t, ExitUsage, exitCode(err))
		})
	}
}

func TestParseFigsize(t *testing.T) {
	tests := []struct {
		in      []string
		w, h    float64
		wantErr bool
	}{
		{[]string{"10", "8"}, 10, 8, false},
		{[]string{"12.5,4"}, 12.5, 4, false},
		{[]string{"6 3"}, 6, 3, false},
		{[]string{"6x3"}, 6, 3, false},
		{[]string{"10"}, 0, 0, true},
		{[]string{"a", "b"}, 0, 0, true},
		{[]string{"0", "8"}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.in, "|"), func(t *testing.T) {
			w, h, err := parseFigsize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}

func TestRun_Single(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()
	gtfPath := filepath.Join(dir, "a.gtf")
	require.NoError(t, os.WriteFile(gtfPath, []byte(cliGTF), 0o644))
	outDir := filepath.Join(dir, "plots")

	out, err := execute(t, "-t", "T1.9", "-g", gtfPath, "-s", "both",
		"--format", "svg", "-o", outDir, "--summary")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "T1_exons_Short_Introns.svg"))
	assert.FileExists(t, filepath.Join(outDir, "T1_CDS_Short_Introns.svg"))

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#transcript_id"))
	assert.True(t, strings.HasPrefix(lines[1], "T1\tG1\texons\t2\t0.4\tcompressed\t"))
	assert.True(t, strings.HasPrefix(lines[2], "T1\tG1\tCDS\t1\t0.1\tcompressed\t"))
}

func TestRun_SingleNotFound(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()
	gtfPath := filepath.Join(dir, "a.gtf")
	require.NoError(t, os.WriteFile(gtfPath, []byte(cliGTF), 0o644))
	outDir := filepath.Join(dir, "plots")

	_, err := execute(t, "-t", "T2", "-g", gtfPath, "-o", outDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gtf.ErrTranscriptNotFound))
	assert.Equal(t, ExitError, exitCode(err))
	assert.NoDirExists(t, outDir)
}

func TestRun_MissingList(t *testing.T) {
	setupCLI(t)
	_, err := execute(t, "-f", filepath.Join(t.TempDir(), "nope.tsv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, batch.ErrListNotFound))
	assert.Equal(t, ExitError, exitCode(err))
}

func TestVersion(t *testing.T) {
	setupCLI(t)
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "txplot version dev (none) built unknown\n", out)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, exitCode(nil))
	assert.Equal(t, ExitInterrupted, exitCode(context.Canceled))
	assert.Equal(t, ExitError, exitCode(errors.New("boom")))
	assert.Equal(t, ExitUsage, exitCode(usageErrorf("bad flag")))
}
