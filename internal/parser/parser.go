package parser

import (
	"strings"

	"github.com/insightdelivered/tankbeurt-splitter/internal/models"
)

// Debug results reported per line.
const (
	ResultPrimary = "primary"
	ResultPairs   = "pairs"
	ResultSkipped = "skipped"
)

// MatchPrimary tries the structured "<name> [sep] <digits> [km]" form on a
// single trimmed line.
//
// A line that reads cleanly as several name/distance pairs ("Jan 150 Pieter
// 100") would otherwise match with the name "Jan 150 Pieter"; it is left to
// PairTokens. Numbers inside a single name ("Route 66 - 150 km") still match.
func MatchPrimary(line string) (models.Record, bool) {
	m := primaryPattern.FindStringSubmatch(line)
	if m == nil {
		return models.Record{}, false
	}
	name := strings.TrimSpace(m[1])
	if standaloneNumber.MatchString(name) && isPairRun(line) {
		return models.Record{}, false
	}
	distance, ok := parseDistance(m[2])
	if !ok {
		return models.Record{}, false
	}
	return models.Record{Name: name, Distance: distance}, true
}

// isPairRun reports whether every other token of line is a number and the
// line holds at least two such pairs.
func isPairRun(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) < 4 || len(tokens)%2 != 0 {
		return false
	}
	for i := 1; i < len(tokens); i += 2 {
		if !numberToken.MatchString(tokens[i]) {
			return false
		}
	}
	return true
}

// PairTokens is the fallback for lines the primary form rejects. Tokens are
// taken two at a time: the first is the name, the digits of the second are the
// distance. Pairs whose second token has no digits are dropped, as is a
// trailing odd token.
func PairTokens(line string) []models.Record {
	tokens := strings.Fields(line)
	var records []models.Record
	for i := 0; i+1 < len(tokens); i += 2 {
		distance, ok := parseDistance(digitsOnly(tokens[i+1]))
		if !ok {
			continue
		}
		records = append(records, models.Record{Name: tokens[i], Distance: distance})
	}
	return records
}

// ExtractPairs runs the primary form and, only if it fails, the token pairing.
// It reports which strategy produced the records.
func ExtractPairs(line string) ([]models.Record, string) {
	if rec, ok := MatchPrimary(line); ok {
		return []models.Record{rec}, ResultPrimary
	}
	if records := PairTokens(line); len(records) > 0 {
		return records, ResultPairs
	}
	return nil, ResultSkipped
}

// ParseLinesToPairs turns free-form logbook text into records, preserving line
// order and pairing order within a line. It never fails: unusable input gives
// an empty slice.
func ParseLinesToPairs(text string) []models.Record {
	records, _ := ParseWithDebug(text)
	return records
}

// ParseWithDebug is ParseLinesToPairs plus a per-line account of which
// strategy matched.
func ParseWithDebug(text string) ([]models.Record, []models.DebugLine) {
	records := []models.Record{}
	var debug []models.DebugLine

	for i, line := range SplitLines(text) {
		found, result := ExtractPairs(line)
		records = append(records, found...)
		debug = append(debug, models.DebugLine{
			LineNum: i + 1,
			Text:    line,
			Result:  result,
			Records: len(found),
		})
	}

	return records, debug
}
