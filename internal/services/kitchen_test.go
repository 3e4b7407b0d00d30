package services

import (
	"testing"

	"github.com/example/gokhale/internal/models"
)

func TestParseVariantGrams(t *testing.T) {
	tests := []struct {
		variant string
		want    int
	}{
		{"500gm", 500},
		{"250 g", 250},
		{"1kg", 1000},
		{"1.5kg", 1500},
		{"10pcs", 0},
		{"5 ps", 0},
		{"", 0},
		{"family pack", 0},
	}

	for _, tt := range tests {
		if got := ParseVariantGrams(tt.variant); got != tt.want {
			t.Errorf("ParseVariantGrams(%q) = %d, want %d", tt.variant, got, tt.want)
		}
	}
}

func TestParseVariantPieces(t *testing.T) {
	tests := []struct {
		variant string
		want    int
	}{
		{"10pcs", 10},
		{"5 pcs", 5},
		{"12 ps", 12},
		{"1pc", 1},
		{"500gm", 0},
		{"1kg", 0},
		{"", 0},
		{"pcs", 0},
	}

	for _, tt := range tests {
		if got := ParseVariantPieces(tt.variant); got != tt.want {
			t.Errorf("ParseVariantPieces(%q) = %d, want %d", tt.variant, got, tt.want)
		}
	}
}

func TestKitchenPriority(t *testing.T) {
	tests := []struct {
		name        string
		orderCount  int
		weightGrams int
		pieces      int
		want        string
	}{
		{"all below medium", 1, 500, 2, "low"},
		{"orders at medium", 2, 0, 0, "medium"},
		{"weight at medium", 1, 1000, 0, "medium"},
		{"pieces at medium", 1, 0, 5, "medium"},
		{"orders at high", 3, 0, 0, "high"},
		{"weight at high", 1, 2000, 0, "high"},
		{"pieces at high", 1, 0, 10, "high"},
		{"one high dimension wins", 1, 2500, 1, "high"},
		{"just under high on all", 2, 1999, 9, "medium"},
		{"zero everything", 0, 0, 0, "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KitchenPriority(tt.orderCount, tt.weightGrams, tt.pieces); got != tt.want {
				t.Errorf("KitchenPriority(%d, %d, %d) = %q, want %q",
					tt.orderCount, tt.weightGrams, tt.pieces, got, tt.want)
			}
		})
	}
}

func TestKitchenPrepTime(t *testing.T) {
	tests := []struct {
		weightGrams int
		pieces      int
		want        int
	}{
		{450, 0, 5}, // 4 minutes floored to 5
		{800, 0, 8},
		{0, 0, 5},
		{0, 3, 6},
		{1000, 5, 20},
		{100, 1, 5}, // 3 minutes floored to 5
	}

	for _, tt := range tests {
		if got := KitchenPrepTime(tt.weightGrams, tt.pieces); got != tt.want {
			t.Errorf("KitchenPrepTime(%d, %d) = %d, want %d", tt.weightGrams, tt.pieces, got, tt.want)
		}
	}
}

func prepOrder(id uint, status string, items ...models.OrderItem) models.Order {
	o := models.Order{OrderStatus: status, Items: items}
	o.ID = id
	return o
}

func prepItem(productID uint, name, variant string, quantity, weight int) models.OrderItem {
	item := models.OrderItem{Name: name, Variant: variant, Quantity: quantity, Weight: weight}
	if productID != 0 {
		item.ProductID = &productID
	}
	return item
}

func TestAggregateKitchenPrepTotals(t *testing.T) {
	orders := []models.Order{
		prepOrder(1, models.StatusPlaced,
			prepItem(7, "Mixture", "500gm", 2, 500),
			prepItem(8, "Chakli", "10pcs", 1, 0),
		),
		prepOrder(2, models.StatusConfirmed,
			prepItem(7, "Mixture", "300gm", 1, 300),
		),
		prepOrder(3, models.StatusDelivered,
			prepItem(7, "Mixture", "500gm", 4, 500),
		),
	}

	result := AggregateKitchenPrep(orders, []string{models.StatusPlaced, models.StatusConfirmed})
	if len(result) != 2 {
		t.Fatalf("got %d prep items, want 2", len(result))
	}

	var mixture, chakli *KitchenPrepItem
	for i := range result {
		switch result[i].Name {
		case "Mixture":
			mixture = &result[i]
		case "Chakli":
			chakli = &result[i]
		}
	}
	if mixture == nil || chakli == nil {
		t.Fatalf("missing expected products in %+v", result)
	}

	// Delivered order is out of scope: 2x500 + 1x300.
	if mixture.TotalWeight != 1300 {
		t.Errorf("Mixture TotalWeight = %d, want 1300", mixture.TotalWeight)
	}
	if mixture.TotalQuantity != 3 {
		t.Errorf("Mixture TotalQuantity = %d, want 3", mixture.TotalQuantity)
	}
	if mixture.OrderCount != 2 {
		t.Errorf("Mixture OrderCount = %d, want 2", mixture.OrderCount)
	}
	if mixture.Priority != "medium" {
		t.Errorf("Mixture Priority = %q, want medium", mixture.Priority)
	}
	if len(mixture.Variants) != 2 {
		t.Errorf("Mixture has %d variants, want 2", len(mixture.Variants))
	}

	// Weight is conserved across the variant breakdown.
	var variantWeight int
	for _, v := range mixture.Variants {
		variantWeight += v.Weight
	}
	if variantWeight != mixture.TotalWeight {
		t.Errorf("variant weights sum to %d, total is %d", variantWeight, mixture.TotalWeight)
	}

	if chakli.TotalPieces != 10 {
		t.Errorf("Chakli TotalPieces = %d, want 10", chakli.TotalPieces)
	}
	if chakli.TotalWeight != 0 {
		t.Errorf("Chakli TotalWeight = %d, want 0 for piece-only lines", chakli.TotalWeight)
	}
	if chakli.Priority != "high" {
		t.Errorf("Chakli Priority = %q, want high", chakli.Priority)
	}
}

func TestAggregateKitchenPrepOrderCountDistinct(t *testing.T) {
	// Two lines of the same product in one order count as one order.
	orders := []models.Order{
		prepOrder(1, models.StatusPlaced,
			prepItem(7, "Mixture", "500gm", 1, 500),
			prepItem(7, "Mixture", "250gm", 1, 250),
		),
	}

	result := AggregateKitchenPrep(orders, []string{models.StatusPlaced})
	if len(result) != 1 {
		t.Fatalf("got %d prep items, want 1", len(result))
	}
	if result[0].OrderCount != 1 {
		t.Errorf("OrderCount = %d, want 1", result[0].OrderCount)
	}
	if result[0].TotalWeight != 750 {
		t.Errorf("TotalWeight = %d, want 750", result[0].TotalWeight)
	}
}

func TestAggregateKitchenPrepGroupsByProductID(t *testing.T) {
	// Same product id with a renamed label groups together; a nameless id
	// match must not split the group.
	orders := []models.Order{
		prepOrder(1, models.StatusPlaced, prepItem(7, "Mixture", "500gm", 1, 500)),
		prepOrder(2, models.StatusPlaced, prepItem(7, "Spicy Mixture", "500gm", 1, 500)),
		prepOrder(3, models.StatusPlaced, prepItem(0, "Mixture", "500gm", 1, 500)),
	}

	result := AggregateKitchenPrep(orders, []string{models.StatusPlaced})
	if len(result) != 2 {
		t.Fatalf("got %d prep items, want 2 (id group + name group)", len(result))
	}

	for _, item := range result {
		switch item.TotalWeight {
		case 1000:
			if item.OrderCount != 2 {
				t.Errorf("id-grouped OrderCount = %d, want 2", item.OrderCount)
			}
		case 500:
			if item.Name != "Mixture" {
				t.Errorf("name-grouped item = %q, want Mixture", item.Name)
			}
		default:
			t.Errorf("unexpected TotalWeight %d", item.TotalWeight)
		}
	}
}

func TestAggregateKitchenPrepSorting(t *testing.T) {
	orders := []models.Order{
		prepOrder(1, models.StatusPlaced, prepItem(1, "Light", "100gm", 1, 100)),
		prepOrder(2, models.StatusPlaced, prepItem(2, "Heavy", "1kg", 3, 1000)),
		prepOrder(3, models.StatusPlaced, prepItem(3, "Middle", "600gm", 2, 600)),
	}

	result := AggregateKitchenPrep(orders, []string{models.StatusPlaced})
	if len(result) != 3 {
		t.Fatalf("got %d prep items, want 3", len(result))
	}

	// Heavy: 3000g high. Middle: 1200g medium. Light: 100g low.
	want := []string{"Heavy", "Middle", "Light"}
	for i, name := range want {
		if result[i].Name != name {
			t.Errorf("result[%d] = %q, want %q", i, result[i].Name, name)
		}
	}
}

func TestAggregateKitchenPrepSkipsEmptyLines(t *testing.T) {
	orders := []models.Order{
		prepOrder(1, models.StatusPlaced,
			prepItem(1, "", "500gm", 1, 500),
			prepItem(2, "Chakli", "10pcs", 0, 0),
		),
	}

	result := AggregateKitchenPrep(orders, []string{models.StatusPlaced})
	if len(result) != 0 {
		t.Errorf("got %d prep items, want 0 for nameless or zero-quantity lines", len(result))
	}
}
