package models

type Product struct {
	BaseModel
	ItemName      string `json:"item_name"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	ImageSrc      string `json:"image_url"`
	ShelfLifeDays int    `json:"shelf_life_days"`
	LeadTimeDays  int    `json:"lead_time_days"`
	IsEnabled     bool   `gorm:"default:true" json:"is_enabled"`

	// Legacy four-slot variant encoding kept for compatibility with the
	// existing catalog data; consumers read the normalized Variants() list.
	Packing01 string  `json:"packing_01"`
	Price01   float64 `json:"price_01"`
	Packing02 string  `json:"packing_02"`
	Price02   float64 `json:"price_02"`
	Packing03 string  `json:"packing_03"`
	Price03   float64 `json:"price_03"`
	Packing04 string  `json:"packing_04"`
	Price04   float64 `json:"price_04"`
}

// ProductVariant is one normalized (packing, price) pair.
type ProductVariant struct {
	Packing string  `json:"packing"`
	Price   float64 `json:"price"`
}

// Variants normalizes the legacy packing/price slots into a list,
// skipping empty slots (price must be set and positive).
func (p *Product) Variants() []ProductVariant {
	slots := []struct {
		packing string
		price   float64
	}{
		{p.Packing01, p.Price01},
		{p.Packing02, p.Price02},
		{p.Packing03, p.Price03},
		{p.Packing04, p.Price04},
	}

	variants := make([]ProductVariant, 0, len(slots))
	for _, s := range slots {
		if s.price > 0 {
			variants = append(variants, ProductVariant{Packing: s.packing, Price: s.price})
		}
	}
	return variants
}

// MaxPrice returns the highest variant price, or 0 with no variants.
func (p *Product) MaxPrice() float64 {
	var max float64
	for _, v := range p.Variants() {
		if v.Price > max {
			max = v.Price
		}
	}
	return max
}

// CartItem is one line of a customer's server-side cart.
type CartItem struct {
	BaseModel
	UserID    uint    `gorm:"index" json:"user_id"`
	ProductID uint    `gorm:"index" json:"product_id"`
	Name      string  `json:"name"`
	Variant   string  `json:"variant"`
	Quantity  int     `json:"quantity"`
	Weight    int     `json:"weight"`
	Price     float64 `json:"price"`
}
