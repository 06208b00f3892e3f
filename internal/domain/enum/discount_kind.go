package enum

// DiscountKind is how a cart-level discount is expressed
type DiscountKind string

const (
	DiscountKindPercentage DiscountKind = "percentage"
	DiscountKindFixed      DiscountKind = "fixed"
)

// Valid reports whether the discount kind is recognized
func (k DiscountKind) Valid() bool {
	return k == DiscountKindPercentage || k == DiscountKindFixed
}
