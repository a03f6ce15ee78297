package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/insightdelivered/tankbeurt-splitter/internal/api"
	"github.com/insightdelivered/tankbeurt-splitter/internal/config"
	"github.com/insightdelivered/tankbeurt-splitter/internal/extractor"
	"github.com/insightdelivered/tankbeurt-splitter/internal/logging"
	"github.com/insightdelivered/tankbeurt-splitter/internal/metrics"
	"github.com/insightdelivered/tankbeurt-splitter/internal/models"
	"github.com/insightdelivered/tankbeurt-splitter/internal/pipeline"
	"github.com/insightdelivered/tankbeurt-splitter/internal/writer"
)

const version = "1.0.0"

func main() {
	// CLI flags
	amountFlag := flag.Float64("amount", 0, "Total fuel amount in euro")
	textFlag := flag.String("text", "", "Logbook text to parse instead of input files")
	csvFlag := flag.String("csv", "", "Also write the shares to this CSV file")
	headerFlag := flag.Bool("header", true, "Include metadata rows in CSV")
	debugFlag := flag.Bool("debug", false, "Print how each input line was parsed")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of a one-off split")
	configFlag := flag.String("config", "", "Path to YAML config (default tankbeurt.yaml or $CONFIG_PATH)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Tankbeurt splitter

Reads a (photographed) logbook of names and kilometres and splits a fuel
bill in proportion to the distance each person drove.

Usage:
  tankbeurt-splitter [flags] <input> [input2 ...]
  tankbeurt-splitter --serve

Inputs can be text files, images (png, jpg, tiff, bmp, webp) or PDFs.
Images and scanned PDFs are read with tesseract.

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Split a photographed logbook
  tankbeurt-splitter --amount=82.40 logboek.jpg

  # Split typed text
  tankbeurt-splitter --amount=50 --text=$'Jan 150\nPieter: 100 km'

  # Export the shares
  tankbeurt-splitter --amount=82.40 --csv=split.csv logboek.txt
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("tankbeurt-splitter v%s\n", version)
		os.Exit(0)
	}

	if *helpFlag || (!*serveFlag && *textFlag == "" && flag.NArg() == 0) {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatalf("Config error: %v\n", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fatalf("Logger error: %v\n", err)
	}
	defer logger.Sync()
	logging.SetLogger(logger)

	ocr := &extractor.TesseractProvider{Lang: cfg.OCR.Lang, PSM: cfg.OCR.PSM, DPI: cfg.OCR.DPI}

	if *serveFlag {
		if err := serve(cfg, ocr); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
		return
	}

	text := *textFlag
	if text == "" {
		text, err = readInputs(ocr, flag.Args())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := runSplit(text, *amountFlag, *csvFlag, *headerFlag, *debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readInputs concatenates the text of all inputs, OCR-ing images and PDFs.
func readInputs(ocr extractor.Provider, paths []string) (string, error) {
	var parts []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("input file not found: %s", path)
		}

		if !extractor.IsSupported(path) {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", fmt.Errorf("reading %s: %w", path, err)
			}
			parts = append(parts, string(data))
			continue
		}

		fmt.Printf("Recognizing: %s\n", path)
		last := -25
		text, err := ocr.Recognize(context.Background(), path, func(pct int) {
			if pct/25 != last/25 {
				fmt.Printf("  %d%%\n", pct)
			}
			last = pct
		})
		if err != nil {
			return "", fmt.Errorf("text recognition failed for %s: %w", filepath.Base(path), err)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n"), nil
}

func runSplit(text string, amount float64, csvPath string, includeHeader, debug bool) error {
	if amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	res := pipeline.Run(text, amount)
	logging.Logger().Debug("split computed",
		zap.Int("records", len(res.Records)),
		zap.Int("total_distance", res.TotalDistance),
		zap.String("directive", string(res.Directive.Kind)))

	if debug {
		for _, d := range res.DebugLines {
			fmt.Printf("  line %d [%s, %d record(s)]: %s\n", d.LineNum, d.Result, d.Records, d.Text)
		}
	}

	switch res.Status {
	case models.StatusAwaitInput:
		fmt.Println("No logbook text found. Pass input files or --text.")
		return nil
	case models.StatusNeedsManualEntry:
		fmt.Println("Warning: No names with kilometres found. Correct the text by hand and try again.")
		fmt.Println("  Expected lines like \"Jan 150\", \"Pieter: 100 km\" or \"Anna - 75\".")
		return nil
	}

	fmt.Println(res.Summary)

	if csvPath != "" {
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.WriteToFile(csvPath, res); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
		fmt.Printf("\nOutput: %s\n", csvPath)
	}
	return nil
}

func serve(cfg *config.Config, ocr extractor.Provider) error {
	log := logging.Logger()
	if !extractor.IsOCRAvailable() {
		log.Warn("tesseract not found on PATH; /api/ocr will fail until it is installed")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := &api.Handler{
		OCR:       ocr,
		Metrics:   metrics.New(reg),
		Gatherer:  reg,
		StaticDir: cfg.StaticDir,
	}
	app := api.NewApp(h, cfg.MaxUploadMB<<20)

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Listen))
		errCh <- app.Listen(cfg.Listen)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
