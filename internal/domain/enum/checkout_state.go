package enum

// CheckoutState is the per-session checkout machine state.
// open -> payment_pending -> completed, with payment_pending -> open
// (abort) as the only backward edge.
type CheckoutState string

const (
	CheckoutStateOpen           CheckoutState = "open"
	CheckoutStatePaymentPending CheckoutState = "payment_pending"
	CheckoutStateCompleted      CheckoutState = "completed"
)
