package models

import (
	"strconv"
	"time"
)

type Product struct {
	ID    string   `json:"_id"`
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Image string   `json:"img"`
	Icons []string `json:"icons"`
}

// Pricing is computed at submission time and sent to the backend verbatim.
// Invariant: Subtotal = UnitPrice * qty, Total = Subtotal + Shipping.
type Pricing struct {
	UnitPrice float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
}

// Shipping is currently always free.
const DefaultShipping float64 = 0

func NewPricing(unitPrice float64, qty int) Pricing {
	subtotal := unitPrice * float64(qty)
	return Pricing{
		UnitPrice: unitPrice,
		Subtotal:  subtotal,
		Shipping:  DefaultShipping,
		Total:     subtotal + DefaultShipping,
	}
}

type Order struct {
	ID        string    `json:"_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Floor     string    `json:"floor,omitempty"`
	Product   Product   `json:"product"`
	Quantity  int       `json:"qty"`
	Pricing   Pricing   `json:"pricing"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatusPending is the status every new order is created with. The admin
// update path uses the capitalized vocabulary below; the backend stores
// whichever form it was given, so both sets are kept exactly as the backend
// produces and consumes them.
const StatusPending = "pending"

// OrderStatuses are the values the admin order list can set.
var OrderStatuses = []string{"Pending", "Shipped", "Delivered", "Canceled"}

func ValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ClampQuantity parses a raw quantity value and clamps it to a minimum of 1.
// Garbage input counts as 1, matching the order form's behavior.
func ClampQuantity(raw string) int {
	q, err := strconv.Atoi(raw)
	if err != nil || q < 1 {
		return 1
	}
	return q
}
