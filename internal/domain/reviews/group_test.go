package reviews

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func review(id, shopID int64, shop string, rating int, at time.Time) Review {
	return Review{ID: id, ShopID: shopID, ShopName: shop, Rating: rating, CreatedAt: at, ProductName: "Latte"}
}

func TestGroupByShop(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// newest first, as the store returns them
	list := []Review{
		review(6, 2, "Bean There", 4, now),
		review(5, 1, "Cafe X", 5, now.Add(-time.Minute)),
		review(4, 2, "Bean There", 5, now.Add(-2*time.Minute)),
		review(3, 3, "Aroma", 3, now.Add(-3*time.Minute)),
		review(2, 2, "Bean There", 4, now.Add(-4*time.Minute)),
		review(1, 1, "Cafe X", 2, now.Add(-5*time.Minute)),
	}

	groups := GroupByShop(list)
	require.Len(t, groups, 3)

	assert.Equal(t, "Bean There", groups[0].ShopName)
	assert.Equal(t, 3, groups[0].ReviewCount)
	assert.Equal(t, 4.3, groups[0].AverageRating)
	assert.Equal(t, []int64{6, 4, 2}, ids(groups[0].Reviews))

	assert.Equal(t, "Cafe X", groups[1].ShopName)
	assert.Equal(t, 2, groups[1].ReviewCount)
	assert.Equal(t, 3.5, groups[1].AverageRating)

	assert.Equal(t, "Aroma", groups[2].ShopName)
	assert.Equal(t, 3.0, groups[2].AverageRating)
}

func TestGroupByShopTiesOrderedByName(t *testing.T) {
	now := time.Now()
	groups := GroupByShop([]Review{
		review(2, 9, "Zebra Coffee", 5, now),
		review(1, 8, "Alpha Beans", 5, now.Add(-time.Second)),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "Alpha Beans", groups[0].ShopName)
	assert.Equal(t, "Zebra Coffee", groups[1].ShopName)
}

func TestGroupByShopCapsPreview(t *testing.T) {
	now := time.Now()
	var list []Review
	for i := 0; i < 15; i++ {
		list = append(list, review(int64(100-i), 1, "Busy Bar", 1+i%5, now.Add(-time.Duration(i)*time.Minute)))
	}

	groups := GroupByShop(list)
	require.Len(t, groups, 1)
	assert.Equal(t, 15, groups[0].ReviewCount)
	assert.Len(t, groups[0].Reviews, GroupPreviewSize)
	assert.Equal(t, int64(100), groups[0].Reviews[0].ID)
	assert.Equal(t, 3.0, groups[0].AverageRating)
}

func TestGroupByShopEmpty(t *testing.T) {
	groups := GroupByShop(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 4.3, RoundTenth(13.0/3.0))
	assert.Equal(t, 4.7, RoundTenth(14.0/3.0))
	assert.Equal(t, 2.5, RoundTenth(2.45))
	assert.Equal(t, 0.0, RoundTenth(0))
}

func TestFeedQueryNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   FeedQuery
		want FeedQuery
	}{
		{"defaults", FeedQuery{}, FeedQuery{Sort: SortRecent, Limit: 50}},
		{"capped", FeedQuery{Limit: 500}, FeedQuery{Sort: SortRecent, Limit: 100}},
		{"negative offset", FeedQuery{Limit: 10, Offset: -4}, FeedQuery{Sort: SortRecent, Limit: 10}},
		{"place kept", FeedQuery{Sort: SortPlace, Limit: 100, Offset: 20}, FeedQuery{Sort: SortPlace, Limit: 100, Offset: 20}},
		{"unknown sort", FeedQuery{Sort: "rating", Limit: 5}, FeedQuery{Sort: SortRecent, Limit: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestParseFeedSort(t *testing.T) {
	assert.Equal(t, SortPlace, ParseFeedSort("place"))
	assert.Equal(t, SortPlace, ParseFeedSort("PLACE"))
	assert.Equal(t, SortPlace, ParseFeedSort(" Place "))
	assert.Equal(t, SortRecent, ParseFeedSort(""))
	assert.Equal(t, SortRecent, ParseFeedSort("recent"))
}

func ids(list []Review) []int64 {
	out := make([]int64, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}
