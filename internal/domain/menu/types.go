package menu

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNotFound          = errors.New("menu item not found")
	QueryTimeoutDuration = time.Second * 5
)

const DefaultCategory = "Coffee"

type MenuItem struct {
	ID           int64     `json:"id"`
	CoffeeShopID int64     `json:"coffeeShopId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	PriceCents   int64     `json:"priceCents"`
	Price        string    `json:"price"`
	Category     string    `json:"category"`
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    time.Time `json:"createdAt"`

	// ShopOwnerID is the owner of the shop the item belongs to, if any.
	ShopOwnerID *int64 `json:"-"`
}

// ToCents converts a decimal price to whole cents, rounding half away from zero.
func ToCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// FormatCents renders cents as a two-decimal amount, e.g. 450 -> "4.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
