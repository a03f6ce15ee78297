// Package split computes proportional cost shares and the settlement
// between the people in a logbook.
package split

import (
	"math"
	"strings"

	"github.com/insightdelivered/tankbeurt-splitter/internal/models"
)

// roundingEpsilon nudges values like 1.005, which are stored as
// 1.00499999..., back over the half-cent boundary before rounding.
const roundingEpsilon = 2.220446049250313e-16

// Round2 rounds to the nearest cent, half away from zero.
func Round2(v float64) float64 {
	return math.Round((v+math.Copysign(roundingEpsilon, v))*100) / 100
}

// TotalDistance sums all distances.
func TotalDistance(records []models.Record) int {
	total := 0
	for _, r := range records {
		total += r.Distance
	}
	return total
}

// ComputeShares splits totalAmount over the records in proportion to their
// distance. With a zero total distance every share is zero. Rounded amounts
// are not corrected to add up to totalAmount exactly.
func ComputeShares(records []models.Record, totalAmount float64) (int, []models.Share) {
	totalDistance := TotalDistance(records)
	shares := make([]models.Share, 0, len(records))

	for _, r := range records {
		var fraction float64
		if totalDistance > 0 {
			fraction = float64(r.Distance) / float64(totalDistance)
		}
		shares = append(shares, models.Share{
			Name:       r.Name,
			Distance:   r.Distance,
			Percentage: Round2(fraction * 100),
			Amount:     Round2(totalAmount * fraction),
		})
	}

	return totalDistance, shares
}

// SanitizeAmount maps NaN, infinities and negative amounts to zero.
func SanitizeAmount(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0
	}
	return amount
}

// SanitizeRecords cleans a user-edited record list: names are trimmed,
// records without a name are dropped and negative distances become zero.
// The input slice is not modified.
func SanitizeRecords(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		if r.Distance < 0 {
			r.Distance = 0
		}
		out = append(out, models.Record{Name: name, Distance: r.Distance})
	}
	return out
}
