package main

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"coffeecheckin/internal/domain/reviews"
	"coffeecheckin/internal/overpass"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearbyValidatesCoordinates(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "a@x.com", "secret1")

	bad := []string{
		"lat=91&lng=0",
		"lat=-90.5&lng=0",
		"lat=0&lng=180.1",
		"lat=0&lng=-181",
		"lng=10",
		"lat=north&lng=10",
	}
	for _, q := range bad {
		rr := e.do(t, http.MethodGet, "/v1/coffeeshops/nearby?"+q, alice.Token, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
	assert.Empty(t, e.finder.radius)
}

func TestNearbyClampsRadius(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "a@x.com", "secret1")

	tests := []struct {
		query string
		want  int
	}{
		{"", 1000},
		{"&radius=50", 1000},
		{"&radius=100", 100},
		{"&radius=5000", 5000},
		{"&radius=5001", 1000},
		{"&radius=wide", 1000},
	}

	for _, tt := range tests {
		rr := e.do(t, http.MethodGet, "/v1/coffeeshops/nearby?lat=51.5&lng=-0.12"+tt.query, alice.Token, nil)
		require.Equal(t, http.StatusOK, rr.Code, tt.query)
		assert.Equal(t, tt.want, e.finder.lastRadius(), tt.query)
	}
}

func TestNearbyRoundsDistance(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "a@x.com", "secret1")

	addr := "1 High St"
	e.finder.shops = []overpass.Shop{
		{ExternalID: 10, Name: "Near", Latitude: 51.5, Longitude: -0.12, Address: &addr, Distance: 12.4},
		{ExternalID: 11, Name: "Far", Latitude: 51.6, Longitude: -0.12, Distance: 812.5},
	}

	rr := e.do(t, http.MethodGet, "/v1/coffeeshops/nearby?lat=51.5&lng=-0.12", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	shops := decodeData[[]ShopResponse](t, rr)
	require.Len(t, shops, 2)
	require.NotNil(t, shops[0].Distance)
	assert.Equal(t, 12.0, *shops[0].Distance)
	assert.Equal(t, 813.0, *shops[1].Distance)
	assert.Equal(t, int64(10), shops[0].ExternalID)
	assert.Equal(t, "1 High St", *shops[0].Address)
}

func TestNearbyEmptyWhenLookupDegrades(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "a@x.com", "secret1")

	rr := e.do(t, http.MethodGet, "/v1/coffeeshops/nearby?lat=0&lng=0", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[]}`, rr.Body.String())
}

func TestAddShopAndDuplicate(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "a@x.com", "secret1")
	bob := e.register(t, "bob", "b@x.com", "secret1")

	body := map[string]any{"name": "Corner Roast", "address": "1 Main St", "lat": 51.5, "lng": -0.12}
	rr := e.do(t, http.MethodPost, "/v1/coffeeshops/add", alice.Token, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	shop := decodeData[ShopResponse](t, rr)
	assert.Less(t, shop.ExternalID, int64(0))
	assert.True(t, shop.IsClaimed)

	body["name"] = "corner roast"
	rr = e.do(t, http.MethodPost, "/v1/coffeeshops/add", bob.Token, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "a shop with this name and address already exists", decodeError(t, rr).Message)

	rr = e.do(t, http.MethodGet, "/v1/coffeeshops/mine", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeData[[]ShopResponse](t, rr), 1)

	rr = e.do(t, http.MethodGet, "/v1/coffeeshops/mine", bob.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeData[[]ShopResponse](t, rr))
}

func TestConcurrentAddShopOneWins(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "a@x.com", "secret1")
	bob := e.register(t, "bob", "b@x.com", "secret1")

	body := map[string]any{"name": "Twin Cafe", "address": "2 Side St", "lat": 1.0, "lng": 1.0}

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i, token := range []string{alice.Token, bob.Token} {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			codes[i] = e.do(t, http.MethodPost, "/v1/coffeeshops/add", token, body).Code
		}(i, token)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusBadRequest}, codes)
	assert.Len(t, e.db.shops, 1)
}

func TestAddShopValidation(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "a@x.com", "secret1")

	for _, body := range []map[string]any{
		{"name": "", "lat": 1, "lng": 1},
		{"name": "No coords"},
		{"name": "Bad lat", "lat": 95, "lng": 1},
	} {
		rr := e.do(t, http.MethodPost, "/v1/coffeeshops/add", alice.Token, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestClaimShop(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "a@x.com", "secret1")
	bob := e.register(t, "bob", "b@x.com", "secret1")

	c := checkIn(t, e, alice.Token, 42, "Cafe X")

	rr := e.do(t, http.MethodPost, fmt.Sprintf("/v1/coffeeshops/%d/claim", c.CoffeeShopID), alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = e.do(t, http.MethodPost, "/v1/coffeeshops/osm/42/claim", bob.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "this shop has already been claimed", decodeError(t, rr).Message)

	require.NotNil(t, e.db.shops[0].OwnerID)
	assert.Equal(t, alice.UserID, *e.db.shops[0].OwnerID)

	rr = e.do(t, http.MethodPost, "/v1/coffeeshops/osm/777/claim", bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = e.do(t, http.MethodPost, "/v1/coffeeshops/777/claim", bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestShopLookupsAndReviews(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "a@x.com", "secret1")

	c := checkIn(t, e, alice.Token, 42, "Cafe X")
	postReview(t, e, alice.Token, c.ID, "Latte", 5)

	rr := e.do(t, http.MethodGet, fmt.Sprintf("/v1/coffeeshops/%d", c.CoffeeShopID), alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(42), decodeData[ShopResponse](t, rr).ExternalID)

	rr = e.do(t, http.MethodGet, "/v1/coffeeshops/12345", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = e.do(t, http.MethodGet, fmt.Sprintf("/v1/coffeeshops/%d/reviews", c.CoffeeShopID), alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decodeData[[]reviews.Review](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Username)

	rr = e.do(t, http.MethodGet, "/v1/coffeeshops/osm/42/reviews", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeData[[]reviews.Review](t, rr), 1)

	rr = e.do(t, http.MethodGet, "/v1/coffeeshops/osm/1/reviews", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeData[[]reviews.Review](t, rr))

	rr = e.do(t, http.MethodGet, "/v1/coffeeshops/seeded", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeData[[]ShopResponse](t, rr), 1)
}

func TestShopQR(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "a@x.com", "secret1")

	rr := e.do(t, http.MethodGet, "/v1/coffeeshops/osm/42/qr", alice.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	qr := decodeData[QRResponse](t, rr)
	assert.Equal(t, "coffeecheckin://shop/42", qr.QRData)
	assert.Equal(t, int64(42), qr.ExternalID)
}
