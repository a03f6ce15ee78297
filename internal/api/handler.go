package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/insightdelivered/tankbeurt-splitter/internal/extractor"
	"github.com/insightdelivered/tankbeurt-splitter/internal/logging"
	"github.com/insightdelivered/tankbeurt-splitter/internal/metrics"
	"github.com/insightdelivered/tankbeurt-splitter/internal/models"
	"github.com/insightdelivered/tankbeurt-splitter/internal/pipeline"
	"github.com/insightdelivered/tankbeurt-splitter/internal/writer"
)

// Version is reported by /api/health.
const Version = "1.0.0"

const ocrTimeout = 2 * time.Minute

// SplitResponse is the JSON body of /api/split and /api/ocr.
type SplitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	*models.Result
	CSV     string `json:"csv,omitempty"`
	RawText string `json:"rawText,omitempty"`
}

// ParseResponse is the JSON body of /api/parse.
type ParseResponse struct {
	Success    bool               `json:"success"`
	Error      string             `json:"error,omitempty"`
	Status     models.Status      `json:"status"`
	Records    []models.Record    `json:"records"`
	Count      int                `json:"count"`
	DebugLines []models.DebugLine `json:"debugLines,omitempty"`
}

// SplitRequest carries either raw text or an edited record list. Records
// win when both are present.
type SplitRequest struct {
	Text    string           `json:"text"`
	Records *[]models.Record `json:"records"`
	Amount  float64          `json:"amount"`
	Header  *bool            `json:"csvHeader"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	OCR       extractor.Provider
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	StaticDir string
}

// NewApp builds the fiber app with middleware and routes.
func NewApp(h *Handler, bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "tankbeurt-splitter",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/parse", h.HandleParse)
	app.Post("/api/split", h.HandleSplit)
	app.Post("/api/ocr", h.HandleOCR)

	if h.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})))
	}

	// Serve the web UI; unknown paths fall back to index.html
	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(h.StaticDir, "index.html"))
		})
	}
}

// HandleHealth reports liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

// HandleParse extracts records from raw text without computing a split.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	var req SplitRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	res := pipeline.Run(req.Text, 0)
	h.observeParse(res)

	return c.JSON(ParseResponse{
		Success:    true,
		Status:     res.Status,
		Records:    res.Records,
		Count:      len(res.Records),
		DebugLines: res.DebugLines,
	})
}

// HandleSplit runs the full pipeline on text or on an edited record list.
func (h *Handler) HandleSplit(c *fiber.Ctx) error {
	var req SplitRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if req.Amount < 0 {
		return writeError(c, fiber.StatusBadRequest, "Amount must not be negative.")
	}

	var res *models.Result
	if req.Records != nil {
		res = pipeline.Recompute(*req.Records, req.Amount)
	} else {
		res = pipeline.Run(req.Text, req.Amount)
		h.observeParse(res)
	}

	includeHeader := req.Header == nil || *req.Header
	return h.respond(c, res, includeHeader, "")
}

// HandleOCR recognizes an uploaded logbook photo or scan and splits it.
// Recognition failures abandon the request before the pipeline runs.
func (h *Handler) HandleOCR(c *fiber.Ctx) error {
	if h.OCR == nil {
		return writeError(c, fiber.StatusServiceUnavailable, "OCR is not configured.")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !extractor.IsSupported(fh.Filename) {
		return writeError(c, fiber.StatusBadRequest, "Only images (png, jpg, tiff, bmp, webp) and PDF files are supported.")
	}

	amount, err := parseAmount(c.FormValue("amount"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	tmpDir, err := os.MkdirTemp("", "logbook-upload-*")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp dir.")
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "upload"+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveFile(fh, path); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), ocrTimeout)
	defer cancel()

	log := logging.Logger().With(zap.String("file", fh.Filename))
	start := time.Now()
	text, err := h.OCR.Recognize(ctx, path, func(pct int) {
		log.Debug("ocr progress", zap.Int("percent", pct))
	})
	h.Metrics.ObserveOCR(start, err)
	if err != nil {
		log.Warn("ocr failed", zap.Error(err))
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, context.DeadlineExceeded) {
			status = fiber.StatusGatewayTimeout
		}
		return writeError(c, status, fmt.Sprintf("Text recognition failed: %v", err))
	}
	log.Info("ocr done", zap.Int("chars", len(text)), zap.Duration("took", time.Since(start)))

	res := pipeline.Run(text, amount)
	h.observeParse(res)

	return h.respond(c, res, c.FormValue("header") != "false", text)
}

func (h *Handler) respond(c *fiber.Ctx, res *models.Result, includeHeader bool, rawText string) error {
	h.Metrics.ObserveSplit(string(res.Directive.Kind))

	var csvBuf strings.Builder
	csvWriter := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := csvWriter.Write(&csvBuf, res); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	return c.JSON(SplitResponse{
		Success: true,
		Result:  res,
		CSV:     csvBuf.String(),
		RawText: rawText,
	})
}

func (h *Handler) observeParse(res *models.Result) {
	if h.Metrics == nil {
		return
	}
	results := make([]string, 0, len(res.DebugLines))
	for _, d := range res.DebugLines {
		results = append(results, d.Result)
	}
	h.Metrics.ObserveParse(results, len(res.Records))
}

// parseAmount accepts "12.50", "12,50" and "€ 12.50". Empty means zero.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "€")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(SplitResponse{
		Success: false,
		Error:   msg,
	})
}

// errorHandler turns errors escaping a handler (including recovered panics)
// into the JSON error shape.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	logging.Logger().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return writeError(c, status, err.Error())
}
