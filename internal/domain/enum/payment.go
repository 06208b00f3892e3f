package enum

// PaymentType is how a sale is tendered
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeCard   PaymentType = "card"
	PaymentTypeCredit PaymentType = "credit"
)

// Valid reports whether the payment type is one the terminal accepts
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeCard, PaymentTypeCredit:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a sale.
// pending -> partial -> completed; cancelled is a separate terminal
// state reached only through an upstream cancellation.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Outstanding reports whether the sale still carries a balance
func (s PaymentStatus) Outstanding() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial
}

// PaymentMode selects how a credit payment is allocated
type PaymentMode string

const (
	// PaymentModeGeneral lets the sales service allocate the amount
	// oldest-pending-sale-first.
	PaymentModeGeneral PaymentMode = "general"
	// PaymentModeSpecific targets an explicit set of sales; the amount
	// must equal the summed balances of those sales.
	PaymentModeSpecific PaymentMode = "specific"
)
