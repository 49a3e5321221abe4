package reviews

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("review not found")
	QueryTimeoutDuration = time.Second * 5
)

const (
	DefaultFeedLimit = 50
	MaxFeedLimit     = 100

	// GroupPreviewSize bounds the reviews shown per shop in the grouped feed.
	GroupPreviewSize = 10
	TopProductsLimit = 5
)

// Review is a rating of one product, denormalized with reviewer and shop
// fields so clients never join.
type Review struct {
	ID                 int64     `json:"id"`
	CheckInID          int64     `json:"checkInId"`
	UserID             int64     `json:"userId"`
	ProductName        string    `json:"productName"`
	Rating             int       `json:"rating"`
	Notes              *string   `json:"notes"`
	CreatedAt          time.Time `json:"createdAt"`
	Username           string    `json:"username"`
	UserProfilePicture *string   `json:"userProfilePicture"`
	ShopID             int64     `json:"shopId"`
	ShopName           string    `json:"shopName"`
}

type FeedSort string

const (
	SortRecent FeedSort = "recent"
	SortPlace  FeedSort = "place"
)

// ParseFeedSort is case-insensitive; anything but "place" means newest first.
func ParseFeedSort(s string) FeedSort {
	if strings.EqualFold(strings.TrimSpace(s), string(SortPlace)) {
		return SortPlace
	}
	return SortRecent
}

type FeedQuery struct {
	Sort   FeedSort
	Limit  int
	Offset int
}

// Normalize applies the feed bounds: limit defaults to 50 and never exceeds
// 100; negative offsets start at zero.
func (q FeedQuery) Normalize() FeedQuery {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultFeedLimit
	case q.Limit > MaxFeedLimit:
		q.Limit = MaxFeedLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Sort != SortPlace {
		q.Sort = SortRecent
	}
	return q
}

type ShopGroup struct {
	ShopID        int64    `json:"shopId"`
	ShopName      string   `json:"shopName"`
	ReviewCount   int      `json:"reviewCount"`
	AverageRating float64  `json:"averageRating"`
	Reviews       []Review `json:"reviews"`
}

type ProductStat struct {
	Product   string  `json:"product"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avgRating"`
}

type Stats struct {
	TotalReviews  int           `json:"totalReviews"`
	TotalCheckIns int           `json:"totalCheckIns"`
	TotalShops    int           `json:"totalShops"`
	AvgRating     float64       `json:"avgRating"`
	TopProducts   []ProductStat `json:"topProducts"`
}

// RoundTenth rounds half away from zero to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
