package main

import (
	"errors"
	"net/http"
	"strings"

	"coffeecheckin/internal/domain/checkins"
	"coffeecheckin/internal/geo"
)

type CreateCheckInPayload struct {
	ExternalID int64   `json:"externalId" validate:"required"`
	ShopName   string  `json:"shopName" validate:"required,max=200"`
	Lat        float64 `json:"lat" validate:"min=-90,max=90"`
	Lng        float64 `json:"lng" validate:"min=-180,max=180"`
	Address    *string `json:"address" validate:"omitempty,max=500"`
	Notes      *string `json:"notes" validate:"omitempty,max=500"`
}

// createCheckInHandler godoc
//
//	@Summary		Check in at a coffee shop
//	@Description	Resolves the shop by its external id, creating it on first sight, and records a check-in
//	@Tags			checkins
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateCheckInPayload	true	"Check-in"
//	@Success		201		{object}	checkins.CheckIn
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error	"Unknown user-added shop"
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/checkins [post]
func (app *application) createCheckInHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload CreateCheckInPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	payload.ShopName = strings.TrimSpace(payload.ShopName)
	payload.Address = trimmedOrNil(payload.Address)

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if !geo.ValidCoordinates(payload.Lat, payload.Lng) {
		app.badRequestResponse(w, r, errInvalidCoordinates)
		return
	}

	ctx := r.Context()

	shop, err := app.store.CoffeeShops.FindOrCreateByExternalID(ctx, payload.ExternalID, payload.ShopName, payload.Lat, payload.Lng, payload.Address)
	if err != nil {
		app.shopLookupError(w, r, err)
		return
	}

	checkIn := &checkins.CheckIn{
		UserID:       user.ID,
		CoffeeShopID: shop.ID,
		Notes:        trimmedOrNil(payload.Notes),
	}
	if err := app.store.CheckIns.Create(ctx, checkIn); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, checkIn); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCheckInsHandler godoc
//
//	@Summary		List my check-ins
//	@Description	Returns the caller's check-ins newest first with their reviews
//	@Tags			checkins
//	@Produce		json
//	@Success		200	{array}		checkins.CheckIn
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/checkins [get]
func (app *application) listCheckInsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	list, err := app.store.CheckIns.ListByUser(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCheckInHandler godoc
//
//	@Summary		Get one of my check-ins
//	@Tags			checkins
//	@Produce		json
//	@Param			checkInID	path		int	true	"Check-in ID"
//	@Success		200			{object}	checkins.CheckIn
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/checkins/{checkInID} [get]
func (app *application) getCheckInHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	checkInID, err := int64URLParam(r, "checkInID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	checkIn, err := app.store.CheckIns.GetForUser(r.Context(), checkInID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, checkins.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, checkIn); err != nil {
		app.internalServerError(w, r, err)
	}
}

// trimmedOrNil treats blank optional strings as absent.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
