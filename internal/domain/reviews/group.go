package reviews

import "sort"

// GroupByShop groups reviews by shop. Input must be ordered newest first;
// each group keeps that order and at most GroupPreviewSize entries. Groups are
// ordered by review count descending, then shop name, then shop id.
func GroupByShop(list []Review) []ShopGroup {
	type acc struct {
		group ShopGroup
		sum   int
	}

	byShop := make(map[int64]*acc)
	order := []int64{}
	for _, r := range list {
		a, ok := byShop[r.ShopID]
		if !ok {
			a = &acc{group: ShopGroup{ShopID: r.ShopID, ShopName: r.ShopName, Reviews: []Review{}}}
			byShop[r.ShopID] = a
			order = append(order, r.ShopID)
		}
		a.group.ReviewCount++
		a.sum += r.Rating
		if len(a.group.Reviews) < GroupPreviewSize {
			a.group.Reviews = append(a.group.Reviews, r)
		}
	}

	groups := make([]ShopGroup, 0, len(order))
	for _, id := range order {
		a := byShop[id]
		a.group.AverageRating = RoundTenth(float64(a.sum) / float64(a.group.ReviewCount))
		groups = append(groups, a.group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].ReviewCount != groups[j].ReviewCount {
			return groups[i].ReviewCount > groups[j].ReviewCount
		}
		if groups[i].ShopName != groups[j].ShopName {
			return groups[i].ShopName < groups[j].ShopName
		}
		return groups[i].ShopID < groups[j].ShopID
	})
	return groups
}
