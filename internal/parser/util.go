package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Line breaks found in OCR output and pasted text: "\n" and "\r\n".
var lineBreakPattern = regexp.MustCompile(`\r?\n`)

// primaryPattern matches "<name> [:|-] <digits> [km]" on a trimmed line.
// The name is lazy so the digit run at the end of the line becomes the
// distance instead of being swallowed by the name class, which also allows
// digits. The name class covers Latin-1 accented letters (À-ÿ minus × and ÷).
var primaryPattern = regexp.MustCompile(
	`(?i)^([A-Za-zÀ-ÖØ-öø-ÿ0-9_\- \t]{2,30}?)\s*[:\-]?\s*(\d{1,6})\s*(?:km)?$`,
)

// standaloneNumber matches a whitespace-delimited token made only of digits.
var standaloneNumber = regexp.MustCompile(`(?:^|\s)\d+(?:\s|$)`)

// numberToken is a distance token in a run of pairs: "150" or "150km".
var numberToken = regexp.MustCompile(`(?i)^\d+(?:km)?$`)

var nonDigit = regexp.MustCompile(`\D+`)

// SplitLines splits raw text into trimmed, non-empty lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range lineBreakPattern.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseDistance converts a run of ASCII digits to an int.
// It fails on empty input and on values that overflow.
func parseDistance(digits string) (int, bool) {
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// digitsOnly strips every non-digit character: "150km," -> "150".
func digitsOnly(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}
