package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"qrmint/config"
	"qrmint/pipeline"
	"qrmint/render"
	"qrmint/tabular"
)

var version = "v0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "qrmint",
		Short: "Generate per-person QR codes from a tabular people list",
	}
	root.AddCommand(newGenerateCommand())

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qrmint %s\n", version)
		},
	})

	return root
}

func newGenerateCommand() *cobra.Command {
	var (
		configPath string
		input      string
		baseURL    string
		outDir     string
		format     string
		output     string
		tokenLen   int
		zipOut     bool
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render one QR code per input row and write the augmented manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			// 1. Load config, then let changed flags win.
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if flags.Changed("out") {
				cfg.OutDir = outDir
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("token-len") {
				cfg.TokenLen = tokenLen
			}
			if flags.Changed("zip") {
				cfg.Zip = zipOut
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if cfg.BaseURL == "" {
				return fmt.Errorf("base URL required: pass --base-url or set base_url in %s", configPath)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// 2. Setup logger
			log := newLogger(cfg.LogLevel)

			// 3. Seed the token source. A fixed --seed makes filenames
			// reproducible across runs.
			if !flags.Changed("seed") {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))

			return runGenerate(cmd, cfg, input, rng, log)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "qrmint.yaml", "Path to config file")
	cmd.Flags().StringVar(&input, "input", "", "Input table path, .csv or .xlsx (required)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Webapp URL to embed (token is appended as ?token=...)")
	cmd.Flags().StringVar(&outDir, "out", "qr_out", "Directory to write QR images")
	cmd.Flags().StringVar(&format, "format", "png", "Image format: png or svg")
	cmd.Flags().IntVar(&tokenLen, "token-len", 8, "Length of generated tokens")
	cmd.Flags().BoolVar(&zipOut, "zip", false, "Also create a zip archive of all images")
	cmd.Flags().StringVar(&output, "output", "output.csv", "Path for the augmented manifest, .csv or .xlsx")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Deterministic seed for generated tokens")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// runGenerate wires the pipeline together for one batch run.
func runGenerate(cmd *cobra.Command, cfg *config.Config, input string, rng *rand.Rand, log *slog.Logger) error {
	tbl, err := tabular.Load(input)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	log.Info("loaded input", "path", input, "rows", tbl.Len())

	renderer, err := render.ForFormat(cfg.Format, render.Options{
		Size:   cfg.QRSize,
		Border: cfg.QRBorder,
	})
	if err != nil {
		return err
	}

	res, err := pipeline.Run(tbl, renderer, pipeline.Options{
		BaseURL:  cfg.BaseURL,
		OutDir:   cfg.OutDir,
		TokenLen: cfg.TokenLen,
		Zip:      cfg.Zip,
		Output:   cfg.Output,
	}, rng, log, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	log.Info("run complete",
		"rows", res.Rows,
		"generated_tokens", res.Generated,
		"manifest", res.ManifestPath,
		"archive", res.ArchivePath,
	)
	return nil
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
	return log
}
