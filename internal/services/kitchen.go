package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/example/gokhale/internal/models"
)

// Priority thresholds for kitchen preparation. Fixed by shop-floor
// agreement, deliberately not configurable.
const (
	highOrderCount  = 3
	highWeightGrams = 2000
	highPieces      = 10

	mediumOrderCount  = 2
	mediumWeightGrams = 1000
	mediumPieces      = 5

	minPrepMinutes = 5
)

// KitchenVariant is the per-packing breakdown of one prep item.
type KitchenVariant struct {
	Variant  string `json:"variant"`
	Quantity int    `json:"quantity"`
	Weight   int    `json:"weight"`
	Pieces   int    `json:"pieces"`
}

// KitchenPrepItem is one product's aggregated preparation load. Derived
// on every request, never persisted.
type KitchenPrepItem struct {
	Name              string           `json:"name"`
	TotalQuantity     int              `json:"totalQuantity"`
	TotalWeight       int              `json:"totalWeight"`
	TotalPieces       int              `json:"totalPieces"`
	OrderCount        int              `json:"orderCount"`
	Variants          []KitchenVariant `json:"variants"`
	Priority          string           `json:"priority"`
	EstimatedPrepTime int              `json:"estimatedPrepTime"`
}

var variantNumber = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// ParseVariantGrams extracts a per-unit weight in grams from packaging
// labels like "500gm", "250 g" or "1kg". Piece-style labels return 0.
func ParseVariantGrams(variant string) int {
	v := strings.ReplaceAll(strings.ToLower(variant), " ", "")
	if v == "" {
		return 0
	}

	match := variantNumber.FindString(v)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}

	// kg before g: "1kg" matches both.
	if strings.Contains(v, "kg") {
		return int(value * 1000)
	}
	if strings.Contains(v, "gm") || strings.Contains(v, "g") {
		return int(value)
	}
	return 0
}

// ParseVariantPieces extracts a piece count from packaging labels like
// "10pcs". Weight-style labels ("500gm", "1kg") return 0; per-unit weight
// comes from the order item itself.
func ParseVariantPieces(variant string) int {
	v := strings.ReplaceAll(strings.ToLower(variant), " ", "")
	if v == "" {
		return 0
	}

	match := variantNumber.FindString(v)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}

	if strings.Contains(v, "pcs") || strings.Contains(v, "ps") || strings.Contains(v, "pc") {
		return int(value)
	}
	return 0
}

// KitchenPriority classifies preparation urgency from how many orders
// need a product and how much of it must be made.
func KitchenPriority(orderCount, weightGrams, pieces int) string {
	if orderCount >= highOrderCount || weightGrams >= highWeightGrams || pieces >= highPieces {
		return "high"
	}
	if orderCount >= mediumOrderCount || weightGrams >= mediumWeightGrams || pieces >= mediumPieces {
		return "medium"
	}
	return "low"
}

// KitchenPrepTime estimates preparation minutes: one minute per 100g of
// bulk plus two minutes per piece of manual work, floored at five.
func KitchenPrepTime(weightGrams, pieces int) int {
	minutes := weightGrams/100 + pieces*2
	if minutes < minPrepMinutes {
		return minPrepMinutes
	}
	return minutes
}

func priorityRank(p string) int {
	switch p {
	case "high":
		return 2
	case "medium":
		return 1
	default:
		return 0
	}
}

type prepAccumulator struct {
	name     string
	quantity int
	weight   int
	pieces   int
	orders   map[uint]struct{}
	variants map[string]*KitchenVariant
	order    []string // variant insertion order
}

// AggregateKitchenPrep groups order line items into per-product
// preparation totals. Only orders whose status is in the given set
// contribute; an order counts once per product no matter how many of its
// lines share that product. Output is sorted by priority, then total
// weight, both descending.
func AggregateKitchenPrep(orders []models.Order, statuses []string) []KitchenPrepItem {
	active := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		s = strings.TrimSpace(s)
		if s != "" {
			active[s] = struct{}{}
		}
	}

	groups := make(map[string]*prepAccumulator)
	var keys []string

	for _, order := range orders {
		if _, ok := active[order.OrderStatus]; !ok {
			continue
		}

		for _, item := range order.Items {
			if item.Name == "" || item.Quantity <= 0 {
				continue
			}

			// Group by product id when the line carries one; the display
			// name alone is ambiguous across renames.
			key := "name:" + item.Name
			if item.ProductID != nil {
				key = fmt.Sprintf("id:%d", *item.ProductID)
			}

			acc, ok := groups[key]
			if !ok {
				acc = &prepAccumulator{
					name:     item.Name,
					orders:   make(map[uint]struct{}),
					variants: make(map[string]*KitchenVariant),
				}
				groups[key] = acc
				keys = append(keys, key)
			}

			lineWeight := item.Weight * item.Quantity
			linePieces := ParseVariantPieces(item.Variant) * item.Quantity

			acc.quantity += item.Quantity
			acc.weight += lineWeight
			acc.pieces += linePieces
			acc.orders[order.ID] = struct{}{}

			v, ok := acc.variants[item.Variant]
			if !ok {
				v = &KitchenVariant{Variant: item.Variant}
				acc.variants[item.Variant] = v
				acc.order = append(acc.order, item.Variant)
			}
			v.Quantity += item.Quantity
			v.Weight += lineWeight
			v.Pieces += linePieces
		}
	}

	result := make([]KitchenPrepItem, 0, len(keys))
	for _, key := range keys {
		acc := groups[key]

		variants := make([]KitchenVariant, 0, len(acc.order))
		for _, label := range acc.order {
			variants = append(variants, *acc.variants[label])
		}

		result = append(result, KitchenPrepItem{
			Name:              acc.name,
			TotalQuantity:     acc.quantity,
			TotalWeight:       acc.weight,
			TotalPieces:       acc.pieces,
			OrderCount:        len(acc.orders),
			Variants:          variants,
			Priority:          KitchenPriority(len(acc.orders), acc.weight, acc.pieces),
			EstimatedPrepTime: KitchenPrepTime(acc.weight, acc.pieces),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		ri, rj := priorityRank(result[i].Priority), priorityRank(result[j].Priority)
		if ri != rj {
			return ri > rj
		}
		return result[i].TotalWeight > result[j].TotalWeight
	})

	return result
}
