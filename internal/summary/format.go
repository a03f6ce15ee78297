// Package summary renders computed shares as a copyable Dutch text message.
package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/insightdelivered/tankbeurt-splitter/internal/models"
)

const (
	sentenceNoPayment = "Geen betaling nodig — bedragen zijn gelijk."
	sentenceAwait     = "Voer kilometers in om een samenvatting te krijgen."
	sentenceGeneric   = "Bekijk de bedragen per persoon. Voor betalingen, vergelijk wie minder heeft bijgedragen en regel onderling de betaling."
)

// FormatEuro renders an amount with exactly two decimals: 25 -> "25.00".
func FormatEuro(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// formatNumber renders the shortest form of a value: 50 -> "50", 22.5 -> "22.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DirectiveSentence renders a settlement directive as a sentence.
func DirectiveSentence(d models.Directive) string {
	switch d.Kind {
	case models.DirectiveNoPaymentNeeded:
		return sentenceNoPayment
	case models.DirectivePayFromTo:
		return fmt.Sprintf("%s moet €%s aan %s betalen.", d.Payer, formatNumber(d.Amount), d.Payee)
	case models.DirectiveAwaitInput:
		return sentenceAwait
	default:
		return sentenceGeneric
	}
}

// FormatSummary builds the message:
//
//	Tankbeurt — totaal €<amount>
//
//	<name>: <distance> km — <percentage>% — €<amount>
//
//	Samenvatting: <sentence>
func FormatSummary(totalAmount float64, shares []models.Share, d models.Directive) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tankbeurt — totaal €%s\n\n", FormatEuro(totalAmount))
	for _, s := range shares {
		fmt.Fprintf(&b, "%s: %d km — %s%% — €%s\n", s.Name, s.Distance, formatNumber(s.Percentage), FormatEuro(s.Amount))
	}
	if len(shares) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("Samenvatting: ")
	b.WriteString(DirectiveSentence(d))
	return b.String()
}
