package checkins

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("check-in not found")
	QueryTimeoutDuration = time.Second * 5
)

type CheckIn struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"-"`
	CoffeeShopID int64     `json:"coffeeShopId"`
	ShopName     string    `json:"shopName"`
	CheckedInAt  time.Time `json:"checkedInAt"`
	Notes        *string   `json:"notes"`
	Reviews      []Review  `json:"reviews"`
}

// Review is the summary of a review nested under its check-in.
type Review struct {
	ID          int64     `json:"id"`
	CheckInID   int64     `json:"-"`
	ProductName string    `json:"productName"`
	Rating      int       `json:"rating"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}
