package models

import (
	"time"
)

// Order statuses. Orders move strictly forward through the main chain;
// rejected and cancelled are terminal side-states reachable only early.
const (
	StatusPlaced     = "placed"
	StatusConfirmed  = "confirmed"
	StatusInProcess  = "inprocess"
	StatusDispatched = "dispatched"
	StatusDelivered  = "delivered"
	StatusCompleted  = "completed"
	StatusRejected   = "rejected"
	StatusCancelled  = "cancelled"
)

// AllowedStatuses is every status an order may hold.
var AllowedStatuses = []string{
	StatusPlaced,
	StatusConfirmed,
	StatusInProcess,
	StatusDispatched,
	StatusDelivered,
	StatusCompleted,
	StatusRejected,
	StatusCancelled,
}

// statusTransitions is the single source of truth for legal status moves.
// Terminal states map to an empty set.
var statusTransitions = map[string][]string{
	StatusPlaced:     {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed:  {StatusInProcess, StatusCancelled},
	StatusInProcess:  {StatusDispatched},
	StatusDispatched: {StatusDelivered},
	StatusDelivered:  {StatusCompleted},
	StatusCompleted:  {},
	StatusRejected:   {},
	StatusCancelled:  {},
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from the given one.
func NextStatuses(from string) []string {
	return statusTransitions[from]
}

// IsTerminalStatus reports whether no further transitions exist.
func IsTerminalStatus(s string) bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

type Order struct {
	BaseModel
	UserID          uint        `gorm:"index" json:"user_id"`
	User            *User       `json:"user,omitempty"`
	FirstName       string      `json:"first_name"`
	MobileNumber    string      `json:"mobile_number"`
	RazorpayOrderID string      `gorm:"index" json:"razorpay_order_id"`
	OrderStatus     string      `gorm:"index;default:placed" json:"order_status"`
	TotalAmount     float64     `json:"total_amount"`
	DeliveryDate    *time.Time  `json:"delivery_date"`
	Items           []OrderItem `json:"items,omitempty"`

	// Delivery address snapshot copied at order time, not a live reference.
	AddressLine1   string `json:"-"`
	AddressCity    string `json:"-"`
	AddressState   string `json:"-"`
	AddressPincode string `json:"-"`
}

type OrderItem struct {
	BaseModel
	OrderID       uint    `gorm:"index" json:"order_id"`
	ProductID     *uint   `json:"product_id,omitempty"`
	Name          string  `json:"name"`
	Variant       string  `json:"variant"`
	Quantity      int     `json:"quantity"`
	Weight        int     `json:"weight"` // grams per unit, 0 when unknown
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
}

// OrderAddress is the embedded delivery snapshot as exposed over the API.
type OrderAddress struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Address returns the snapshot in API shape.
func (o *Order) Address() OrderAddress {
	return OrderAddress{
		Line1:   o.AddressLine1,
		City:    o.AddressCity,
		State:   o.AddressState,
		Pincode: o.AddressPincode,
	}
}
