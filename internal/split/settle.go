package split

import (
	"math"

	"github.com/insightdelivered/tankbeurt-splitter/internal/models"
)

// AdviseSettlement decides who pays whom.
//
// Only two people get a concrete transfer: the one with the smaller amount
// pays the other the difference. This does not track who actually paid at
// the pump. Without any distance the user is asked for input; any other
// head count gets generic advice.
func AdviseSettlement(shares []models.Share, totalDistance int) models.Directive {
	if len(shares) == 2 && totalDistance > 0 {
		a, b := shares[0], shares[1]
		diff := Round2(math.Abs(a.Amount - b.Amount))
		if diff == 0 {
			return models.Directive{Kind: models.DirectiveNoPaymentNeeded}
		}
		payer, payee := a, b
		if a.Amount > b.Amount {
			payer, payee = b, a
		}
		return models.Directive{
			Kind:   models.DirectivePayFromTo,
			Payer:  payer.Name,
			Payee:  payee.Name,
			Amount: diff,
		}
	}

	if totalDistance == 0 {
		return models.Directive{Kind: models.DirectiveAwaitInput}
	}

	return models.Directive{Kind: models.DirectiveGenericAdvice}
}
