package services

import (
	"math"

	"github.com/example/gokhale/internal/models"
)

// Cart pricing rules.
const (
	DeliveryCharge        = 90.0
	FreeDeliveryThreshold = 1800.0

	// Struck-through display price relative to the selling price.
	displayMarkup = 1.17
)

// CartTotals is the price breakdown shown at checkout.
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// DisplayPrice is the struck-through "original" price shown next to the
// selling price.
func DisplayPrice(price float64) float64 {
	return round2(price * displayMarkup)
}

// ComputeCartTotals derives checkout totals from cart lines. Delivery is
// free once the subtotal reaches the threshold, otherwise a flat charge
// applies.
func ComputeCartTotals(items []models.CartItem) CartTotals {
	var subtotal, discount float64
	for _, item := range items {
		qty := float64(item.Quantity)
		subtotal += item.Price * qty
		discount += (item.Price*displayMarkup - item.Price) * qty
	}

	shipping := DeliveryCharge
	if subtotal >= FreeDeliveryThreshold {
		shipping = 0
	}
	if len(items) == 0 {
		shipping = 0
	}

	return CartTotals{
		Subtotal: round2(subtotal),
		Discount: round2(discount),
		Shipping: shipping,
		Total:    round2(subtotal + shipping),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
