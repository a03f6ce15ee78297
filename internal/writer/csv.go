package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/tankbeurt-splitter/internal/models"
	"github.com/insightdelivered/tankbeurt-splitter/internal/summary"
)

// CSVWriter writes computed shares in CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the shares to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, res *models.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, res); err != nil {
		return err
	}
	return f.Close()
}

// Write writes the shares in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, res *models.Result) error {
	writer := csv.NewWriter(out)

	// Metadata as comment rows
	if w.IncludeHeader {
		meta := [][]string{
			{"# Total amount", formatAmount(res.TotalAmount)},
			{"# Total distance (km)", strconv.Itoa(res.TotalDistance)},
			{"# Settlement", summary.DirectiveSentence(res.Directive)},
		}
		if err := writer.WriteAll(meta); err != nil {
			return fmt.Errorf("failed to write CSV metadata: %w", err)
		}
	}

	header := []string{"Name", "Distance (km)", "Percentage", "Amount"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range res.Shares {
		row := []string{
			s.Name,
			strconv.Itoa(s.Distance),
			formatAmount(s.Percentage),
			formatAmount(s.Amount),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
