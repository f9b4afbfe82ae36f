package validation

import (
	"fmt"

	"github.com/gartstein/corpsec/internal/compliance/models"
	"github.com/shopspring/decimal"
)

// Violation is a business-policy rule broken by the current state.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

const (
	RulePaidUpCapital = "paid_up_within_authorized"
	RuleHoldingTotal  = "holding_total_within_100"
)

// Policy returns the business-policy violations in state. The store never
// calls this; it is reported alongside compliance summaries.
func Policy(state models.CompanyState) []Violation {
	var out []Violation
	if p := state.CompanyDetails; p != nil && p.PaidUpCapital.GreaterThan(p.AuthorizedCapital) {
		out = append(out, Violation{
			Rule: RulePaidUpCapital,
			Message: fmt.Sprintf("paid-up capital %s exceeds authorized capital %s",
				p.PaidUpCapital.String(), p.AuthorizedCapital.String()),
		})
	}

	total := decimal.Zero
	for _, m := range state.Members {
		total = total.Add(decimal.NewFromFloat(m.PercentageHolding))
	}
	if total.GreaterThan(decimal.NewFromInt(100)) {
		out = append(out, Violation{
			Rule:    RuleHoldingTotal,
			Message: fmt.Sprintf("member holdings add up to %s%%", total.String()),
		})
	}
	return out
}
