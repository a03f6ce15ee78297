package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/tankbeurt-splitter/internal/models"
)

func TestFormatSummaryTwoUnequal(t *testing.T) {
	shares := []models.Share{
		{Name: "A", Distance: 150, Percentage: 75, Amount: 75},
		{Name: "B", Distance: 50, Percentage: 25, Amount: 25},
	}
	d := models.Directive{Kind: models.DirectivePayFromTo, Payer: "B", Payee: "A", Amount: 50}

	got := FormatSummary(100, shares, d)

	want := "Tankbeurt — totaal €100.00\n" +
		"\n" +
		"A: 150 km — 75% — €75.00\n" +
		"B: 50 km — 25% — €25.00\n" +
		"\n" +
		"Samenvatting: B moet €50 aan A betalen."
	assert.Equal(t, want, got)
}

func TestFormatSummaryStructure(t *testing.T) {
	shares := []models.Share{
		{Name: "Jan", Distance: 10, Percentage: 33.33, Amount: 20.1},
		{Name: "Piet", Distance: 10, Percentage: 33.33, Amount: 20.1},
		{Name: "Anna", Distance: 10, Percentage: 33.33, Amount: 20.1},
	}
	directives := []models.Directive{
		{Kind: models.DirectiveNoPaymentNeeded},
		{Kind: models.DirectivePayFromTo, Payer: "Jan", Payee: "Piet", Amount: 1.25},
		{Kind: models.DirectiveAwaitInput},
		{Kind: models.DirectiveGenericAdvice},
	}

	for _, d := range directives {
		t.Run(string(d.Kind), func(t *testing.T) {
			lines := strings.Split(FormatSummary(60.3, shares, d), "\n")
			require.Len(t, lines, 2+len(shares)+2)

			assert.Equal(t, "Tankbeurt — totaal €60.30", lines[0])
			assert.Empty(t, lines[1])
			for i, s := range shares {
				assert.Equal(t, s.Name+": 10 km — 33.33% — €20.10", lines[2+i])
			}
			assert.Empty(t, lines[len(lines)-2])
			assert.Equal(t, "Samenvatting: "+DirectiveSentence(d), lines[len(lines)-1])
		})
	}
}

func TestFormatSummaryWithoutShares(t *testing.T) {
	got := FormatSummary(40, nil, models.Directive{Kind: models.DirectiveAwaitInput})

	want := "Tankbeurt — totaal €40.00\n" +
		"\n" +
		"Samenvatting: Voer kilometers in om een samenvatting te krijgen."
	assert.Equal(t, want, got)
}

func TestDirectiveSentence(t *testing.T) {
	tests := []struct {
		directive models.Directive
		expected  string
	}{
		{models.Directive{Kind: models.DirectiveNoPaymentNeeded}, "Geen betaling nodig — bedragen zijn gelijk."},
		{models.Directive{Kind: models.DirectivePayFromTo, Payer: "B", Payee: "A", Amount: 50}, "B moet €50 aan A betalen."},
		{models.Directive{Kind: models.DirectivePayFromTo, Payer: "Jan", Payee: "Els", Amount: 12.35}, "Jan moet €12.35 aan Els betalen."},
		{models.Directive{Kind: models.DirectiveAwaitInput}, "Voer kilometers in om een samenvatting te krijgen."},
		{models.Directive{Kind: models.DirectiveGenericAdvice}, "Bekijk de bedragen per persoon. Voor betalingen, vergelijk wie minder heeft bijgedragen en regel onderling de betaling."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DirectiveSentence(tt.directive))
	}
}

func TestFormatEuro(t *testing.T) {
	assert.Equal(t, "25.00", FormatEuro(25))
	assert.Equal(t, "0.00", FormatEuro(0))
	assert.Equal(t, "1234.57", FormatEuro(1234.567))
}
