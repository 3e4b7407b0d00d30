package models

// User represents a registered storefront customer.
type User struct {
	BaseModel
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	MobileNumber string        `gorm:"uniqueIndex" json:"mobile_number"`
	PasswordHash string        `json:"-"`
	CustomerID   string        `gorm:"uniqueIndex" json:"customer_id"`
	InternalID   string        `gorm:"uniqueIndex" json:"internal_id"`
	Role         string        `gorm:"default:user" json:"role"`
	Addresses    []UserAddress `json:"addresses,omitempty"`
	Orders       []Order       `json:"orders,omitempty"`
}

// UserAddress is a saved delivery address. Orders copy the fields they
// need; deleting an address never touches past orders.
type UserAddress struct {
	BaseModel
	UserID  uint   `gorm:"index" json:"user_id"`
	Label   string `json:"label"`
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Admin is a back-office operator account.
type Admin struct {
	BaseModel
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
}
