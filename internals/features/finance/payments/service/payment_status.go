package service

import "cftl_backend/internals/constants"

// Amounts is the derived state of an installment.
type Amounts struct {
	Paid      int64
	Remaining int64
	Status    string
}

// StatusFor: Unpaid when nothing is paid, Incomplete below due, Paid otherwise.
func StatusFor(due, paid int64) string {
	switch {
	case paid <= 0:
		return constants.PaymentUnpaid
	case paid < due:
		return constants.PaymentIncomplete
	default:
		return constants.PaymentPaid
	}
}

func remaining(due, paid int64) int64 {
	if r := due - paid; r > 0 {
		return r
	}
	return 0
}

// Derive caps paid at due before computing remaining and status.
// Used when staff record or edit a payment.
func Derive(due, paid int64) Amounts {
	capped := paid
	if capped > due {
		capped = due
	}
	if capped < 0 {
		capped = 0
	}
	return Amounts{Paid: capped, Remaining: remaining(due, capped), Status: StatusFor(due, capped)}
}

// Accumulate adds an approved request to what was already paid. The total is
// not capped, so an overpayment stays visible on the row.
func Accumulate(due, alreadyPaid, add int64) Amounts {
	total := alreadyPaid + add
	return Amounts{Paid: total, Remaining: remaining(due, total), Status: StatusFor(due, total)}
}

// Remaining recomputes the outstanding amount for display.
func Remaining(due, paid int64) int64 { return remaining(due, paid) }
