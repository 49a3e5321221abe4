package coffeeshops

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("coffee shop not found")
	ErrDuplicateShop     = errors.New("a shop with this name and address already exists")
	ErrAlreadyClaimed    = errors.New("this shop has already been claimed")
	QueryTimeoutDuration = time.Second * 5
)

type CoffeeShop struct {
	ID         int64     `json:"id"`
	ExternalID int64     `json:"externalId"`
	Name       string    `json:"name"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Address    *string   `json:"address"`
	CachedAt   time.Time `json:"-"`
	OwnerID    *int64    `json:"ownerId,omitempty"`
	IsClaimed  bool      `json:"isClaimed"`
}

// Ref addresses a shop either by its row id or by its external (map data) id.
type Ref struct {
	ID         int64
	ExternalID int64
	ByExternal bool
}

func ByID(id int64) Ref {
	return Ref{ID: id}
}

func ByExternalID(externalID int64) Ref {
	return Ref{ExternalID: externalID, ByExternal: true}
}

// UserShopExternalID derives the synthetic external id of a user-added shop.
// Real map ids are positive, so user-added ones are negative.
func UserShopExternalID(now time.Time) int64 {
	return -now.UnixMilli()
}

// IsUserShop reports whether externalID belongs to a user-added shop.
func IsUserShop(externalID int64) bool {
	return externalID < 0
}

// SameNameAndAddress is the duplicate rule for user-added shops:
// case-insensitive name and exact address.
func SameNameAndAddress(a CoffeeShop, name string, address *string) bool {
	if !equalFoldTrim(a.Name, name) {
		return false
	}
	if a.Address == nil || address == nil {
		return a.Address == nil && address == nil
	}
	return *a.Address == *address
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
