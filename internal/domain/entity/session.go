package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
)

// TerminalSession is one cashier's working state at a terminal: the
// cart being assembled and the checkout machine around it. The session
// store hands out copies; mutating requests are serialized per session
// upstream.
type TerminalSession struct {
	ID            uuid.UUID          `json:"id"`
	CashierID     uuid.UUID          `json:"cashier_id"`
	CashierName   string             `json:"cashier_name"`
	Cart          *Cart              `json:"cart"`
	CheckoutState enum.CheckoutState `json:"checkout_state"`
	// LastInvoiceNumber remembers the most recent finalize for the
	// receipt screen; the completed machine itself is discarded.
	LastInvoiceNumber string    `json:"last_invoice_number,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewTerminalSession opens a session with an empty cart in the open
// checkout state
func NewTerminalSession(cashierID uuid.UUID, cashierName string) *TerminalSession {
	now := time.Now()
	return &TerminalSession{
		ID:            uuid.New(),
		CashierID:     cashierID,
		CashierName:   cashierName,
		Cart:          NewCart(),
		CheckoutState: enum.CheckoutStateOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Clone returns a deep copy of the session, cart included
func (s *TerminalSession) Clone() *TerminalSession {
	clone := *s
	clone.Cart = s.Cart.Clone()
	return &clone
}

// ResetAfterSale swaps in a fresh cart and a fresh checkout machine
// once a finalize has been acknowledged. Completion is irreversible;
// the finished cart instance is never reachable again.
func (s *TerminalSession) ResetAfterSale(invoiceNumber string) {
	s.LastInvoiceNumber = invoiceNumber
	s.Cart = NewCart()
	s.CheckoutState = enum.CheckoutStateOpen
}
