package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func productA() ProductRef {
	return ProductRef{ID: uuid.New(), Code: "A-001", Name: "Product A", UnitPrice: dec("100")}
}

func TestAddLineAccumulatesQuantity(t *testing.T) {
	cart := NewCart()
	a := productA()

	require.NoError(t, cart.AddLine(a, 2))
	require.NoError(t, cart.AddLine(a, 3))

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.True(t, cart.Lines[0].LineTotal.Equal(dec("500")))
}

func TestAddLineRejectsBadInput(t *testing.T) {
	cart := NewCart()
	assert.Error(t, cart.AddLine(productA(), 0))

	bad := productA()
	bad.UnitPrice = dec("-1")
	assert.Error(t, cart.AddLine(bad, 1))
}

func TestPercentageDiscountScenario(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddLine(productA(), 2))

	require.NoError(t, cart.ApplyDiscount(enum.DiscountKindPercentage, dec("10")))

	assert.True(t, cart.GrossSubtotal().Equal(dec("200")))
	assert.True(t, cart.DiscountTotal().Equal(dec("20")))
	assert.True(t, cart.Subtotal().Equal(dec("180")))
	assert.True(t, cart.Lines[0].LineTotal.Equal(dec("180")))

	rate := dec("0.17")
	assert.True(t, cart.Tax(rate).Equal(dec("30.6")))
	assert.True(t, cart.Total(rate).Equal(dec("210.6")))
}

func TestPercentageDiscountOutOfRange(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddLine(productA(), 1))

	assert.ErrorIs(t, cart.ApplyDiscount(enum.DiscountKindPercentage, dec("101")), apperror.ErrInvalidDiscount)
	assert.ErrorIs(t, cart.ApplyDiscount(enum.DiscountKindPercentage, dec("-1")), apperror.ErrInvalidDiscount)

	// Nothing distributed after a rejected discount.
	assert.True(t, cart.DiscountTotal().IsZero())
	assert.Nil(t, cart.Discount)
}

func TestFixedDiscountClampedToGross(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddLine(ProductRef{ID: uuid.New(), Name: "Cheap", UnitPrice: dec("30")}, 1))

	require.NoError(t, cart.ApplyDiscount(enum.DiscountKindFixed, dec("100")))

	assert.True(t, cart.DiscountTotal().Equal(dec("30")))
	assert.True(t, cart.Subtotal().IsZero())
}

func TestDiscountOnEmptyCart(t *testing.T) {
	cart := NewCart()
	assert.ErrorIs(t, cart.ApplyDiscount(enum.DiscountKindPercentage, dec("10")), apperror.ErrEmptyCart)
}

func TestDiscountDistributionSumsExactly(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddLine(ProductRef{ID: uuid.New(), Name: "X", UnitPrice: dec("33.33")}, 1))
	require.NoError(t, cart.AddLine(ProductRef{ID: uuid.New(), Name: "Y", UnitPrice: dec("33.33")}, 1))
	require.NoError(t, cart.AddLine(ProductRef{ID: uuid.New(), Name: "Z", UnitPrice: dec("33.34")}, 1))

	require.NoError(t, cart.ApplyDiscount(enum.DiscountKindFixed, dec("10")))

	// The line discounts must sum to the header discount exactly, with
	// the last line absorbing any rounding remainder.
	sum := decimal.Zero
	for _, line := range cart.Lines {
		sum = sum.Add(line.DiscountAmount)
	}
	assert.True(t, sum.Equal(dec("10")), "line discounts sum to %s", sum)
	assert.True(t, cart.Subtotal().Equal(dec("90")))
}

func TestReapplyDiscountStartsFromOriginals(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddLine(productA(), 2))

	require.NoError(t, cart.ApplyDiscount(enum.DiscountKindPercentage, dec("10")))
	require.NoError(t, cart.ApplyDiscount(enum.DiscountKindPercentage, dec("20")))

	// Second application replaces, not stacks.
	assert.True(t, cart.DiscountTotal().Equal(dec("40")))
	assert.True(t, cart.Subtotal().Equal(dec("160")))
}

func TestClearDiscountRoundTrip(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddLine(ProductRef{ID: uuid.New(), Name: "X", UnitPrice: dec("19.99")}, 3))
	require.NoError(t, cart.AddLine(ProductRef{ID: uuid.New(), Name: "Y", UnitPrice: dec("7.45")}, 2))

	require.NoError(t, cart.ApplyDiscount(enum.DiscountKindPercentage, dec("13.5")))
	cart.ClearDiscount()

	for _, line := range cart.Lines {
		expected := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		assert.True(t, line.LineTotal.Equal(expected), "line %s restored to %s, got %s", line.ProductName, expected, line.LineTotal)
		assert.True(t, line.DiscountAmount.IsZero())
	}
	assert.Nil(t, cart.Discount)
}

func TestUpdateQuantityResetsLineDiscount(t *testing.T) {
	cart := NewCart()
	a := productA()
	require.NoError(t, cart.AddLine(a, 2))
	require.NoError(t, cart.ApplyDiscount(enum.DiscountKindPercentage, dec("10")))

	require.NoError(t, cart.UpdateQuantity(a.ID, 1))

	// Changing quantity recomputes the line from scratch and drops its
	// share of the cart discount.
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.True(t, cart.Lines[0].DiscountAmount.IsZero())
	assert.True(t, cart.Lines[0].LineTotal.Equal(dec("300")))
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	cart := NewCart()
	a := productA()
	require.NoError(t, cart.AddLine(a, 2))

	require.NoError(t, cart.UpdateQuantity(a.ID, -2))
	assert.True(t, cart.IsEmpty())
}

func TestUpdateQuantityUnknownProduct(t *testing.T) {
	cart := NewCart()
	assert.Error(t, cart.UpdateQuantity(uuid.New(), 1))
}

func TestRemoveLine(t *testing.T) {
	cart := NewCart()
	a := productA()
	b := ProductRef{ID: uuid.New(), Name: "B", UnitPrice: dec("5")}
	require.NoError(t, cart.AddLine(a, 1))
	require.NoError(t, cart.AddLine(b, 1))

	require.NoError(t, cart.RemoveLine(a.ID))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, b.ID, cart.Lines[0].ProductID)

	assert.Error(t, cart.RemoveLine(a.ID))
}

func TestClearResetsEverything(t *testing.T) {
	cart := NewCart()
	customerID := uuid.New()
	cart.CustomerID = &customerID
	require.NoError(t, cart.AddLine(productA(), 1))
	require.NoError(t, cart.ApplyDiscount(enum.DiscountKindPercentage, dec("5")))

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.CustomerID)
	assert.Nil(t, cart.Discount)
}

func TestSubtotalIsSumOfLineTotals(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddLine(ProductRef{ID: uuid.New(), Name: "X", UnitPrice: dec("12.75")}, 4))
	require.NoError(t, cart.AddLine(ProductRef{ID: uuid.New(), Name: "Y", UnitPrice: dec("0.99")}, 7))
	require.NoError(t, cart.ApplyDiscount(enum.DiscountKindPercentage, dec("7")))

	sum := decimal.Zero
	for _, line := range cart.Lines {
		sum = sum.Add(line.LineTotal)
	}
	assert.True(t, cart.Subtotal().Equal(sum))
}
