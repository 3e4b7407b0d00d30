package services

import (
	"testing"

	"github.com/example/gokhale/internal/models"
)

func cartLine(price float64, quantity int) models.CartItem {
	return models.CartItem{Price: price, Quantity: quantity}
}

func TestComputeCartTotalsShipping(t *testing.T) {
	tests := []struct {
		name         string
		items        []models.CartItem
		wantSubtotal float64
		wantShipping float64
	}{
		{"empty cart pays nothing", nil, 0, 0},
		{"below threshold", []models.CartItem{cartLine(500, 2)}, 1000, DeliveryCharge},
		{"just under threshold", []models.CartItem{cartLine(1799, 1)}, 1799, DeliveryCharge},
		{"exactly at threshold", []models.CartItem{cartLine(900, 2)}, 1800, 0},
		{"over threshold", []models.CartItem{cartLine(1000, 3)}, 3000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeCartTotals(tt.items)
			if totals.Subtotal != tt.wantSubtotal {
				t.Errorf("Subtotal = %v, want %v", totals.Subtotal, tt.wantSubtotal)
			}
			if totals.Shipping != tt.wantShipping {
				t.Errorf("Shipping = %v, want %v", totals.Shipping, tt.wantShipping)
			}
			if totals.Total != tt.wantSubtotal+tt.wantShipping {
				t.Errorf("Total = %v, want %v", totals.Total, tt.wantSubtotal+tt.wantShipping)
			}
		})
	}
}

func TestComputeCartTotalsDiscount(t *testing.T) {
	totals := ComputeCartTotals([]models.CartItem{cartLine(100, 2)})

	// The struck-through price is 17% over the selling price, so the
	// implied saving is 17 per 100 spent.
	if totals.Discount != 34 {
		t.Errorf("Discount = %v, want 34", totals.Discount)
	}
}

func TestDisplayPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  float64
	}{
		{100, 117},
		{0, 0},
		{250, 292.5},
	}

	for _, tt := range tests {
		if got := DisplayPrice(tt.price); got != tt.want {
			t.Errorf("DisplayPrice(%v) = %v, want %v", tt.price, got, tt.want)
		}
	}
}
