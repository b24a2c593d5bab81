package paymentterm

import (
	"time"

	"github.com/shopspring/decimal"
	internal "github.com/pradiptamal/crm-management/internal"
)

// Term is one installment of a deal or contract payment schedule. Either a
// percentage of the parent value or a fixed amount, never both.
type Term struct {
	InstallmentNumber int              `json:"installment_number"`
	Percentage        *decimal.Decimal `json:"percentage,omitempty"`
	FixedAmount       *decimal.Decimal `json:"fixed_amount,omitempty"`
	DueDate           *time.Time       `json:"due_date,omitempty"`
	CalculatedAmount  decimal.Decimal  `json:"calculated_amount"`
}

// Calculate resolves the term amount against the parent value. Percentage
// terms round to 2 decimal places; fixed terms pass through.
func (t *Term) Calculate(base decimal.Decimal) decimal.Decimal {
	if t.FixedAmount != nil {
		return *t.FixedAmount
	}
	if t.Percentage != nil {
		return base.Mul(*t.Percentage).Div(decimal.NewFromInt(100)).Round(2)
	}
	return decimal.Zero
}

// ValidateTerms checks a schedule: installment numbers must be unique and
// positive, each term must carry exactly one of percentage/fixed, and
// percentages may not sum past 100.
func ValidateTerms(terms []Term) error {
	seen := make(map[int]struct{}, len(terms))
	percentTotal := decimal.Zero

	for _, t := range terms {
		if t.InstallmentNumber <= 0 {
			return internal.NewValidationFieldError("installment_number", "installment number must be positive", internal.ErrCodeInvalidPaymentTerm)
		}
		if _, dup := seen[t.InstallmentNumber]; dup {
			return internal.NewValidationFieldError("installment_number", "duplicate installment number", internal.ErrCodeInvalidPaymentTerm)
		}
		seen[t.InstallmentNumber] = struct{}{}

		hasPct := t.Percentage != nil
		hasFixed := t.FixedAmount != nil
		if hasPct == hasFixed {
			return internal.NewValidationFieldError("percentage", "exactly one of percentage or fixed_amount must be set", internal.ErrCodeInvalidPaymentTerm)
		}

		if hasPct {
			if t.Percentage.IsNegative() || t.Percentage.GreaterThan(decimal.NewFromInt(100)) {
				return internal.NewValidationFieldError("percentage", "percentage must be between 0 and 100", internal.ErrCodeInvalidPaymentTerm)
			}
			percentTotal = percentTotal.Add(*t.Percentage)
		}

		if hasFixed && t.FixedAmount.IsNegative() {
			return internal.NewValidationFieldError("fixed_amount", "fixed amount cannot be negative", internal.ErrCodeInvalidPaymentTerm)
		}
	}

	if percentTotal.GreaterThan(decimal.NewFromInt(100)) {
		return internal.NewValidationFieldError("percentage", "percentages cannot sum past 100", internal.ErrCodeInvalidPaymentTerm)
	}

	return nil
}

// CalculateAll fills CalculatedAmount on every term against the parent value.
func CalculateAll(terms []Term, base decimal.Decimal) {
	for i := range terms {
		terms[i].CalculatedAmount = terms[i].Calculate(base)
	}
}
