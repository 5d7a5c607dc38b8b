package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/txplot/internal/batch"
	"github.com/inodb/txplot/internal/layout"
	"github.com/inodb/txplot/internal/output"
	"github.com/inodb/txplot/internal/render"
	"github.com/inodb/txplot/internal/transcript"
)

// maxDPI is the resolution above which a warning is logged.
const maxDPI = 2000

// Flags whose defaults can come from the config file or TXPLOT_* variables.
var configKeys = []string{
	"select",
	"exon_color",
	"CDS_color",
	"full_scale",
	"no_transcript_label",
	"labels",
	"format",
	"dpi",
	"dynamic_resize",
	"figsize",
	"transcript_fontsize",
}

// runOptions is the validated command line.
type runOptions struct {
	transcript string
	gtf        string
	list       string
	summary    bool
	verbose    bool
	batch      batch.Options
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "txplot (-t <transcript> -g <gtf> | -f <list>) [flags]",
		Short: "Draw exon and CDS structure diagrams of GTF transcripts",
		Long: `txplot draws gene-model diagrams of transcripts from GTF files, as SVG,
PNG or PDF. Features are shown 5' to 3' from left to right, with introns
either at true genomic scale (--full_scale) or compressed to a fixed gap.

Defaults for the styling flags are read from ~/.txplot.yaml (or --config)
and from TXPLOT_* environment variables, e.g. TXPLOT_FORMAT=svg.`,
		Example: `  # Exon and CDS plots of one transcript
  txplot -t ENST00000311936 -g gencode.v46.annotation.gtf.gz -s both

  # True-scale PNGs for every transcript in a list, into ./plots
  txplot -f transcripts.tsv --full_scale --format png -o plots`,
		Version:       version,
		Args:          figsizeArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return runPlot(cmd, opts)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("txplot version %s (%s) built %s\n", version, commit, date))
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	f := cmd.Flags()
	f.StringP("transcript", "t", "", "Transcript ID (version suffix is ignored)")
	f.StringP("gtf", "g", "", "GTF file, optionally gzipped (required with --transcript)")
	f.StringP("file", "f", "", "File of transcript IDs and GTF paths (2 tab-delimited columns)")
	f.StringP("select", "s", "exons", "Features to plot: exons, CDS or both")
	f.String("exon_color", layout.DefaultExonColor, "Colour for exons (hex or colour name)")
	f.String("CDS_color", layout.DefaultCDSColor, "Colour for CDS (hex or colour name)")
	f.Bool("full_scale", false, "Draw introns to scale; otherwise introns are compressed uniformly")
	f.Bool("no_transcript_label", false, "Do not print the transcript label above the plot")
	f.String("labels", "none", "Label the first and last feature: none or full")
	f.String("format", string(render.FormatPDF), "Output format: pdf, png or svg")
	f.Int("dpi", render.DefaultDPI, "Resolution for PNG output")
	f.Bool("dynamic_resize", false, "Derive the figure width from the drawn extent (at most 20 inches)")
	f.StringSlice("figsize", []string{"10", "8"}, "Figure size in inches: width,height or width height")
	f.Int("transcript_fontsize", 18, "Font size of the transcript label")
	f.StringP("output", "o", "", "Output directory; a numeric suffix is added if it exists")
	f.Bool("summary", false, "Print a tab-delimited table of written plots to stdout")

	pf := cmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default ~/.txplot.yaml)")
	pf.Bool("verbose", false, "Enable debug logging")

	for _, key := range configKeys {
		if err := viper.BindPFlag(key, f.Lookup(key)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(newConfigCmd())

	return cmd
}

// figsizeArgs rejects positional arguments, except the height of a
// space-separated "--figsize W H".
func figsizeArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) == 1 && splitFigsize(cmd.Flags()) {
		if _, err := strconv.ParseFloat(args[0], 64); err == nil {
			return nil
		}
	}
	return usageErrorf("unexpected argument %q", args[0])
}

// splitFigsize reports whether --figsize was given a single number, so the
// height may follow as a separate argument.
func splitFigsize(f *pflag.FlagSet) bool {
	if !f.Changed("figsize") {
		return false
	}
	values, _ := f.GetStringSlice("figsize")
	return len(values) == 1 && !strings.ContainsAny(values[0], ", x")
}

// initConfig loads the config file and environment into viper.
func initConfig(configFile string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".txplot")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TXPLOT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && configFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// loadOptions validates the command line against viper-resolved defaults.
// args holds at most the figsize height accepted by figsizeArgs.
func loadOptions(f *pflag.FlagSet, args []string) (*runOptions, error) {
	opts := &runOptions{batch: batch.DefaultOptions()}
	opts.transcript, _ = f.GetString("transcript")
	opts.gtf, _ = f.GetString("gtf")
	opts.list, _ = f.GetString("file")
	opts.summary, _ = f.GetBool("summary")
	opts.verbose, _ = f.GetBool("verbose")
	opts.batch.OutputDir, _ = f.GetString("output")

	switch {
	case opts.transcript == "" && opts.list == "":
		return nil, usageErrorf("one of --transcript or --file is required")
	case opts.transcript != "" && opts.list != "":
		return nil, usageErrorf("--transcript and --file cannot be used together")
	case opts.transcript != "" && opts.gtf == "":
		return nil, usageErrorf("the --gtf flag is required when using --transcript")
	}

	var err error
	b := &opts.batch
	if b.Select, err = batch.ParseSelection(viper.GetString("select")); err != nil {
		return nil, &usageError{err: err}
	}
	if b.ExonColor, err = layout.ParseColor(viper.GetString("exon_color")); err != nil {
		return nil, usageErrorf("--exon_color: %w", err)
	}
	if b.CDSColor, err = layout.ParseColor(viper.GetString("CDS_color")); err != nil {
		return nil, usageErrorf("--CDS_color: %w", err)
	}
	if b.Format, err = render.ParseFormat(viper.GetString("format")); err != nil {
		return nil, &usageError{err: err}
	}

	b.DPI = viper.GetInt("dpi")
	if b.DPI <= 0 {
		return nil, usageErrorf("--dpi must be positive, got %d", b.DPI)
	}

	lo := &b.Layout
	if viper.GetBool("full_scale") {
		lo.Mode = transcript.ModeFullScale
	}
	lo.SummaryLabel = !viper.GetBool("no_transcript_label")
	lo.DynamicResize = viper.GetBool("dynamic_resize")

	switch labels := strings.ToLower(viper.GetString("labels")); labels {
	case "none":
	case "full":
		lo.EndpointLabels = true
	default:
		return nil, usageErrorf("unknown --labels value %q: expected none or full", labels)
	}

	figsize := viper.GetStringSlice("figsize")
	if len(args) == 1 && splitFigsize(f) {
		figsize = append(figsize, args[0])
	}
	if lo.Width, lo.Height, err = parseFigsize(figsize); err != nil {
		return nil, &usageError{err: err}
	}
	if lo.DynamicResize && lo.Width > layout.MaxWidth {
		return nil, usageErrorf("--figsize width %g exceeds the %g inch limit of --dynamic_resize", lo.Width, layout.MaxWidth)
	}

	lo.FontSize = float64(viper.GetInt("transcript_fontsize"))
	if lo.FontSize <= 0 {
		return nil, usageErrorf("--transcript_fontsize must be positive, got %g", lo.FontSize)
	}

	return opts, nil
}

// parseFigsize reads "W,H". Values from the environment arrive as a single
// element and are split here.
func parseFigsize(values []string) (w, h float64, err error) {
	var parts []string
	for _, v := range values {
		parts = append(parts, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == 'x'
		})...)
	}
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("--figsize needs a width and a height, got %q", strings.Join(values, ","))
	}

	dims := make([]float64, 2)
	for i, p := range parts {
		dims[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || dims[i] <= 0 {
			return 0, 0, fmt.Errorf("--figsize values must be positive numbers, got %q", p)
		}
	}
	return dims[0], dims[1], nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func runPlot(cmd *cobra.Command, opts *runOptions) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	if opts.batch.DPI > maxDPI {
		logger.Warn("high DPI values may result in extremely large images", zap.Int("dpi", opts.batch.DPI))
	}

	runner := batch.NewRunner(opts.batch)
	runner.SetLogger(logger)

	var tw *output.TabWriter
	if opts.summary {
		tw = output.NewTabWriter(cmd.OutOrStdout())
		if err := tw.WriteHeader(); err != nil {
			return err
		}
		runner.SetSummary(tw)
	}

	var res *batch.Result
	if opts.list != "" {
		res, err = runner.RunList(cmd.Context(), opts.list)
	} else {
		res, err = runner.RunSingle(cmd.Context(), opts.transcript, opts.gtf)
	}

	if tw != nil {
		if ferr := tw.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	if err != nil {
		return err
	}

	if res.OutputDir != "" {
		logger.Info("plots written",
			zap.String("dir", res.OutputDir),
			zap.Int("files", len(res.Files)))
	}
	return nil
}
