// Package pipeline recomputes the full split from raw text or an edited
// record list. Every call starts from scratch and has no side effects.
package pipeline

import (
	"strings"

	"github.com/insightdelivered/tankbeurt-splitter/internal/models"
	"github.com/insightdelivered/tankbeurt-splitter/internal/parser"
	"github.com/insightdelivered/tankbeurt-splitter/internal/split"
	"github.com/insightdelivered/tankbeurt-splitter/internal/summary"
)

// Run parses rawText and computes shares, settlement and summary for amount.
func Run(rawText string, amount float64) *models.Result {
	records, debug := parser.ParseWithDebug(rawText)

	res := Recompute(records, amount)
	res.DebugLines = debug

	switch {
	case strings.TrimSpace(rawText) == "":
		res.Status = models.StatusAwaitInput
	case len(res.Records) == 0:
		res.Status = models.StatusNeedsManualEntry
	}
	return res
}

// Recompute runs the calculation for a record list owned by the caller,
// typically after the user edited the parsed records by hand.
func Recompute(records []models.Record, amount float64) *models.Result {
	amount = split.SanitizeAmount(amount)
	clean := split.SanitizeRecords(records)

	totalDistance, shares := split.ComputeShares(clean, amount)
	directive := split.AdviseSettlement(shares, totalDistance)

	status := models.StatusOK
	if len(clean) == 0 {
		status = models.StatusAwaitInput
	}

	return &models.Result{
		Status:        status,
		TotalAmount:   amount,
		TotalDistance: totalDistance,
		Records:       clean,
		Shares:        shares,
		Directive:     directive,
		Summary:       summary.FormatSummary(amount, shares, directive),
	}
}
