package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"coffeecheckin/internal/domain/coffeeshops"
	"coffeecheckin/internal/geo"
	"coffeecheckin/internal/params"
)

var errInvalidCoordinates = errors.New("invalid coordinates")

// ShopResponse is a coffee shop as clients see it. Nearby results carry a
// distance in whole metres and no id until someone checks in there.
type ShopResponse struct {
	ID         int64    `json:"id,omitempty"`
	ExternalID int64    `json:"externalId"`
	Name       string   `json:"name"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Address    *string  `json:"address"`
	Distance   *float64 `json:"distance,omitempty"`
	IsClaimed  bool     `json:"isClaimed"`
}

func toShopResponse(s coffeeshops.CoffeeShop) ShopResponse {
	return ShopResponse{
		ID:         s.ID,
		ExternalID: s.ExternalID,
		Name:       s.Name,
		Latitude:   s.Latitude,
		Longitude:  s.Longitude,
		Address:    s.Address,
		IsClaimed:  s.IsClaimed,
	}
}

func toShopResponses(list []coffeeshops.CoffeeShop) []ShopResponse {
	out := make([]ShopResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toShopResponse(s))
	}
	return out
}

type AddShopPayload struct {
	Name    string   `json:"name" validate:"required,max=200"`
	Address *string  `json:"address" validate:"omitempty,max=500"`
	Lat     *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng     *float64 `json:"lng" validate:"required,min=-180,max=180"`
}

type QRResponse struct {
	QRData     string `json:"qrData"`
	ExternalID int64  `json:"externalId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// nearbyCoffeeShopsHandler godoc
//
//	@Summary		Find coffee shops nearby
//	@Description	Looks up cafes around a point in OpenStreetMap, nearest first. The radius is clamped to 1000m when outside 100-5000m. A failed lookup returns an empty list.
//	@Tags			coffeeshops
//	@Produce		json
//	@Param			lat		query		number	true	"Latitude"
//	@Param			lng		query		number	true	"Longitude"
//	@Param			radius	query		int		false	"Radius in metres"	default(1000)
//	@Success		200		{array}		ShopResponse
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/coffeeshops/nearby [get]
func (app *application) nearbyCoffeeShopsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := params.Float(q, "lat")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	lng, err := params.Float(q, "lng")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if !geo.ValidCoordinates(lat, lng) {
		app.badRequestResponse(w, r, errInvalidCoordinates)
		return
	}
	radius := geo.ClampRadius(params.IntOr(q, "radius", geo.DefaultRadius))

	shops := app.shopFinder.NearbyCoffeeShops(r.Context(), lat, lng, radius)

	out := make([]ShopResponse, 0, len(shops))
	for _, s := range shops {
		distance := geo.RoundMeters(s.Distance)
		out = append(out, ShopResponse{
			ExternalID: s.ExternalID,
			Name:       s.Name,
			Latitude:   s.Latitude,
			Longitude:  s.Longitude,
			Address:    s.Address,
			Distance:   &distance,
		})
	}

	if err := app.jsonResponse(w, http.StatusOK, out); err != nil {
		app.internalServerError(w, r, err)
	}
}

// seededCoffeeShopsHandler godoc
//
//	@Summary		List known coffee shops
//	@Description	Every shop persisted so far, ordered by name. Clients merge it with nearby results.
//	@Tags			coffeeshops
//	@Produce		json
//	@Success		200	{array}		ShopResponse
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/coffeeshops/seeded [get]
func (app *application) seededCoffeeShopsHandler(w http.ResponseWriter, r *http.Request) {
	shops, err := app.store.CoffeeShops.ListAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, toShopResponses(shops)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myCoffeeShopsHandler godoc
//
//	@Summary		List shops I own
//	@Tags			coffeeshops
//	@Produce		json
//	@Success		200	{array}		ShopResponse
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/coffeeshops/mine [get]
func (app *application) myCoffeeShopsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	shops, err := app.store.CoffeeShops.ListByOwner(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, toShopResponses(shops)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCoffeeShopHandler godoc
//
//	@Summary		Get a coffee shop
//	@Tags			coffeeshops
//	@Produce		json
//	@Param			shopID	path		int	true	"Shop ID"
//	@Success		200		{object}	ShopResponse
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/coffeeshops/{shopID} [get]
func (app *application) getCoffeeShopHandler(w http.ResponseWriter, r *http.Request) {
	shopID, err := int64URLParam(r, "shopID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	shop, err := app.store.CoffeeShops.Get(r.Context(), coffeeshops.ByID(shopID))
	if err != nil {
		app.shopLookupError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, toShopResponse(*shop)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addCoffeeShopHandler godoc
//
//	@Summary		Add a coffee shop
//	@Description	Adds a shop missing from map data. The creator owns it immediately.
//	@Tags			coffeeshops
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		AddShopPayload	true	"Shop"
//	@Success		201		{object}	ShopResponse
//	@Failure		400		{object}	ErrorBadRequestResponse	"Invalid payload or duplicate name and address"
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/coffeeshops/add [post]
func (app *application) addCoffeeShopHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload AddShopPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Address = trimmedOrNil(payload.Address)

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	shop, err := app.store.CoffeeShops.AddUserShop(r.Context(), payload.Name, *payload.Lat, *payload.Lng, payload.Address, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, coffeeshops.ErrDuplicateShop):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, toShopResponse(*shop)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// claimCoffeeShopHandler godoc
//
//	@Summary		Claim a coffee shop
//	@Description	Makes the caller the owner of an unclaimed shop
//	@Tags			coffeeshops
//	@Produce		json
//	@Param			shopID	path		int	true	"Shop ID"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	ErrorBadRequestResponse	"Already claimed"
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/coffeeshops/{shopID}/claim [post]
func (app *application) claimCoffeeShopHandler(w http.ResponseWriter, r *http.Request) {
	shopID, err := int64URLParam(r, "shopID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	app.claim(w, r, coffeeshops.ByID(shopID))
}

// claimCoffeeShopByExternalIDHandler godoc
//
//	@Summary		Claim a coffee shop by external id
//	@Tags			coffeeshops
//	@Produce		json
//	@Param			externalID	path		int	true	"External (map) ID"
//	@Success		200			{object}	MessageResponse
//	@Failure		400			{object}	ErrorBadRequestResponse	"Already claimed"
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/coffeeshops/osm/{externalID}/claim [post]
func (app *application) claimCoffeeShopByExternalIDHandler(w http.ResponseWriter, r *http.Request) {
	externalID, err := int64URLParam(r, "externalID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	app.claim(w, r, coffeeshops.ByExternalID(externalID))
}

func (app *application) claim(w http.ResponseWriter, r *http.Request, ref coffeeshops.Ref) {
	user := getUserFromContext(r)

	if err := app.store.CoffeeShops.Claim(r.Context(), ref, user.ID); err != nil {
		switch {
		case errors.Is(err, coffeeshops.ErrAlreadyClaimed):
			app.conflictResponse(w, r, err)
		default:
			app.shopLookupError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, MessageResponse{Message: "Shop claimed successfully"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// coffeeShopReviewsHandler godoc
//
//	@Summary		List a shop's reviews
//	@Tags			coffeeshops
//	@Produce		json
//	@Param			shopID	path		int	true	"Shop ID"
//	@Success		200		{array}		reviews.Review
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/coffeeshops/{shopID}/reviews [get]
func (app *application) coffeeShopReviewsHandler(w http.ResponseWriter, r *http.Request) {
	shopID, err := int64URLParam(r, "shopID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()
	ref := coffeeshops.ByID(shopID)
	if _, err := app.store.CoffeeShops.Get(ctx, ref); err != nil {
		app.shopLookupError(w, r, err)
		return
	}

	list, err := app.store.Reviews.ListByShop(ctx, ref)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// coffeeShopReviewsByExternalIDHandler godoc
//
//	@Summary		List a shop's reviews by external id
//	@Description	Unknown shops have no reviews yet, so they yield an empty list
//	@Tags			coffeeshops
//	@Produce		json
//	@Param			externalID	path	int	true	"External (map) ID"
//	@Success		200			{array}	reviews.Review
//	@Security		ApiKeyAuth
//	@Router			/coffeeshops/osm/{externalID}/reviews [get]
func (app *application) coffeeShopReviewsByExternalIDHandler(w http.ResponseWriter, r *http.Request) {
	externalID, err := int64URLParam(r, "externalID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	list, err := app.store.Reviews.ListByShop(r.Context(), coffeeshops.ByExternalID(externalID))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// coffeeShopQRHandler godoc
//
//	@Summary		Deep link for a shop
//	@Tags			coffeeshops
//	@Produce		json
//	@Param			externalID	path		int	true	"External (map) ID"
//	@Success		200			{object}	QRResponse
//	@Security		ApiKeyAuth
//	@Router			/coffeeshops/osm/{externalID}/qr [get]
func (app *application) coffeeShopQRHandler(w http.ResponseWriter, r *http.Request) {
	externalID, err := int64URLParam(r, "externalID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := QRResponse{
		QRData:     fmt.Sprintf("coffeecheckin://shop/%d", externalID),
		ExternalID: externalID,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) shopLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, coffeeshops.ErrNotFound):
		app.notFoundResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
