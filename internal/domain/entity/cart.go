package entity

import (
	"github.com/google/uuid"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ProductRef carries the product fields the terminal needs to build a
// cart line. The catalog itself lives behind the sales service.
type ProductRef struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CartLine is a single product line in an in-progress order.
//
// Invariants: line_total = unit_price*quantity - discount_amount,
// discount_amount >= 0, line_total >= 0, quantity >= 1.
type CartLine struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	// OriginalLineTotal is the pre-discount value of the line. It is
	// what discount distribution works from, so it survives repeated
	// or cleared discounts.
	OriginalLineTotal decimal.Decimal `json:"original_line_total"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	LineTotal         decimal.Decimal `json:"line_total"`
}

// CartDiscount records the cart-level discount as entered, so the UI
// can redisplay it after a resume or a snapshot reload.
type CartDiscount struct {
	Kind  enum.DiscountKind `json:"kind"`
	Value decimal.Decimal   `json:"value"`
}

// Cart is the in-progress, not-yet-finalized order assembled at a
// terminal. It is mutated only through its methods; callers serialize
// access per session.
type Cart struct {
	Lines      []CartLine    `json:"lines"`
	CustomerID *uuid.UUID    `json:"customer_id,omitempty"`
	Discount   *CartDiscount `json:"discount,omitempty"`
}

// NewCart returns an empty cart
func NewCart() *Cart {
	return &Cart{Lines: []CartLine{}}
}

// Clone returns a deep copy that shares no memory with the receiver
func (c *Cart) Clone() *Cart {
	clone := &Cart{Lines: make([]CartLine, len(c.Lines))}
	copy(clone.Lines, c.Lines)
	if c.CustomerID != nil {
		id := *c.CustomerID
		clone.CustomerID = &id
	}
	if c.Discount != nil {
		d := *c.Discount
		clone.Discount = &d
	}
	return clone
}

// AddLine adds qty of product to the cart. If a line for the product
// already exists its quantity accumulates and both totals are
// recomputed from the unit price.
func (c *Cart) AddLine(product ProductRef, qty int) error {
	if qty < 1 {
		return apperror.NewBadRequestError("Quantity must be at least 1")
	}
	if product.UnitPrice.IsNegative() {
		return apperror.NewBadRequestError("Unit price cannot be negative")
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == product.ID {
			c.Lines[i].Quantity += qty
			c.Lines[i].resetFromQuantity()
			return nil
		}
	}

	gross := product.UnitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2)
	c.Lines = append(c.Lines, CartLine{
		ProductID:         product.ID,
		ProductCode:       product.Code,
		ProductName:       product.Name,
		UnitPrice:         product.UnitPrice,
		Quantity:          qty,
		OriginalLineTotal: gross,
		DiscountAmount:    decimal.Zero,
		LineTotal:         gross,
	})
	return nil
}

// UpdateQuantity adjusts a line's quantity by delta. A resulting
// quantity of zero or less removes the line. Both line_total and
// original_line_total are recomputed from the new quantity, which
// zeroes any discount previously distributed onto the line; that is
// the shipped behavior and is kept pending product clarification.
func (c *Cart) UpdateQuantity(productID uuid.UUID, delta int) error {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		newQty := c.Lines[i].Quantity + delta
		if newQty <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
		c.Lines[i].Quantity = newQty
		c.Lines[i].resetFromQuantity()
		return nil
	}
	return apperror.NewNotFoundError("Cart line")
}

// RemoveLine deletes the line for productID if present
func (c *Cart) RemoveLine(productID uuid.UUID) error {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFoundError("Cart line")
}

// Clear empties the cart. Confirmation is the caller's concern; the
// operation itself is unconditional.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
	c.CustomerID = nil
	c.Discount = nil
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// resetFromQuantity recomputes both totals from unit price and
// quantity, discarding the line's share of any cart discount.
func (l *CartLine) resetFromQuantity() {
	gross := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
	l.OriginalLineTotal = gross
	l.LineTotal = gross
	l.DiscountAmount = decimal.Zero
}

// GrossSubtotal is the pre-discount sum of all lines
func (c *Cart) GrossSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.Lines {
		sum = sum.Add(c.Lines[i].OriginalLineTotal)
	}
	return sum
}

// Subtotal is the discounted sum of all line totals
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.Lines {
		sum = sum.Add(c.Lines[i].LineTotal)
	}
	return sum
}

// DiscountTotal is the sum of per-line discount amounts
func (c *Cart) DiscountTotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.Lines {
		sum = sum.Add(c.Lines[i].DiscountAmount)
	}
	return sum
}

// Tax computes GST on the discounted subtotal
func (c *Cart) Tax(gstRate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Mul(gstRate).Round(2)
}

// Total is the amount due: discounted subtotal plus GST
func (c *Cart) Total(gstRate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Add(c.Tax(gstRate))
}

// ApplyDiscount distributes a single cart-level discount across all
// lines proportionally to their pre-discount totals. Applying a new
// discount replaces the previous one; distribution always starts from
// original_line_total, never from already-discounted values.
func (c *Cart) ApplyDiscount(kind enum.DiscountKind, value decimal.Decimal) error {
	if c.IsEmpty() {
		return apperror.ErrEmptyCart
	}

	gross := c.GrossSubtotal()
	var discount decimal.Decimal
	switch kind {
	case enum.DiscountKindPercentage:
		if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
			return apperror.ErrInvalidDiscount
		}
		discount = gross.Mul(value).Div(decimal.NewFromInt(100)).Round(2)
	case enum.DiscountKindFixed:
		if value.IsNegative() {
			return apperror.NewBadRequestError("Discount amount cannot be negative")
		}
		// A fixed discount never drives the total negative.
		discount = decimal.Min(value, gross).Round(2)
	default:
		return apperror.NewBadRequestError("Unknown discount kind")
	}

	if gross.IsZero() {
		c.Discount = &CartDiscount{Kind: kind, Value: value}
		return nil
	}

	ratio := gross.Sub(discount).Div(gross)
	applied := decimal.Zero
	for i := range c.Lines {
		line := &c.Lines[i]
		if i == len(c.Lines)-1 {
			// Last line absorbs the rounding remainder so the line
			// discounts sum to the header discount exactly.
			line.DiscountAmount = discount.Sub(applied)
			line.LineTotal = line.OriginalLineTotal.Sub(line.DiscountAmount)
			break
		}
		line.LineTotal = line.OriginalLineTotal.Mul(ratio).Round(2)
		line.DiscountAmount = line.OriginalLineTotal.Sub(line.LineTotal)
		applied = applied.Add(line.DiscountAmount)
	}

	c.Discount = &CartDiscount{Kind: kind, Value: value}
	return nil
}

// ClearDiscount restores every line to its pre-discount total
func (c *Cart) ClearDiscount() {
	for i := range c.Lines {
		c.Lines[i].LineTotal = c.Lines[i].OriginalLineTotal
		c.Lines[i].DiscountAmount = decimal.Zero
	}
	c.Discount = nil
}
