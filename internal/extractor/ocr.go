package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/insightdelivered/tankbeurt-splitter/internal/logging"
)

// ErrNoText is returned when recognition finished but produced no text.
var ErrNoText = errors.New("no text recognized")

// ProgressFunc receives recognition progress from 0 to 100.
type ProgressFunc func(percent int)

// Provider turns an image or scanned document into raw text.
type Provider interface {
	Recognize(ctx context.Context, path string, progress ProgressFunc) (string, error)
}

// imageExts are handed to tesseract directly.
var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true, ".bmp": true, ".webp": true,
}

// IsSupported reports whether path has an extension Recognize accepts.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return imageExts[ext] || ext == ".pdf"
}

// TesseractProvider runs the tesseract binary. PDFs use their text layer when
// it is readable and are otherwise rendered with pdftoppm first.
// Requires: tesseract (tesseract-ocr) and, for scanned PDFs, pdftoppm (poppler-utils).
type TesseractProvider struct {
	Lang string // tesseract -l, e.g. "nld+eng"
	PSM  int    // page segmentation mode
	DPI  int    // pdftoppm render resolution
}

// IsOCRAvailable reports whether the tesseract binary is on PATH.
func IsOCRAvailable() bool {
	_, err := exec.LookPath("tesseract")
	return err == nil
}

// Recognize implements Provider. progress may be nil; on success it always
// ends with 100. Partial results are never returned alongside an error.
func (p *TesseractProvider) Recognize(ctx context.Context, path string, progress ProgressFunc) (string, error) {
	report := func(pct int) {
		if progress != nil {
			progress(pct)
		}
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("input file not found: %w", err)
	}

	report(0)
	ext := strings.ToLower(filepath.Ext(path))

	var (
		text string
		err  error
	)
	switch {
	case ext == ".pdf":
		text, err = p.recognizePDF(ctx, path, report)
	case imageExts[ext]:
		text, err = p.recognizeImage(ctx, path)
	default:
		return "", fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	report(100)
	return text, nil
}

func (p *TesseractProvider) recognizeImage(ctx context.Context, imgPath string) (string, error) {
	if !IsOCRAvailable() {
		return "", fmt.Errorf("tesseract not available (install tesseract-ocr)")
	}

	// "stdout" as output base makes tesseract print instead of writing <base>.txt
	args := []string{imgPath, "stdout", "-l", p.lang(), "--psm", strconv.Itoa(p.psm())}
	cmd := exec.CommandContext(ctx, "tesseract", args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("tesseract cancelled: %w", ctxErr)
		}
		return "", fmt.Errorf("tesseract failed: %v (output: %s)", err, strings.TrimSpace(stderr.String()))
	}
	return string(out), nil
}

func (p *TesseractProvider) recognizePDF(ctx context.Context, pdfPath string, report func(int)) (string, error) {
	// Typed logbooks exported to PDF carry a text layer; no OCR needed.
	if pages, err := extractWithLibrary(pdfPath); err == nil && isReadableText(pages) {
		logging.Logger().Debug("using pdf text layer", zap.String("file", pdfPath), zap.Int("pages", len(pages)))
		return strings.Join(pages, "\n"), nil
	}

	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return "", fmt.Errorf("pdftoppm not available (install poppler-utils): %v", err)
	}
	if !IsOCRAvailable() {
		return "", fmt.Errorf("tesseract not available (install tesseract-ocr)")
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", strconv.Itoa(p.dpi()), "-png", pdfPath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %v (output: %s)", err, string(out))
	}
	report(10)

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", fmt.Errorf("failed to read temp dir: %w", err)
	}
	var imageFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			imageFiles = append(imageFiles, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(imageFiles)
	if len(imageFiles) == 0 {
		return "", fmt.Errorf("pdftoppm produced no page images")
	}

	pages := make([]string, 0, len(imageFiles))
	for i, imgFile := range imageFiles {
		text, err := p.recognizeImage(ctx, imgFile)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
		report(10 + 90*(i+1)/len(imageFiles))
	}

	return strings.Join(pages, "\n"), nil
}

func (p *TesseractProvider) lang() string {
	if p.Lang == "" {
		return "nld+eng"
	}
	return p.Lang
}

func (p *TesseractProvider) psm() int {
	if p.PSM <= 0 {
		return 6
	}
	return p.PSM
}

func (p *TesseractProvider) dpi() int {
	if p.DPI <= 0 {
		return 300
	}
	return p.DPI
}
