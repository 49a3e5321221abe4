package main

import (
	"errors"
	"net/http"
	"strings"

	"coffeecheckin/internal/domain/coffeeshops"
	"coffeecheckin/internal/domain/menu"
)

type CreateMenuItemPayload struct {
	CoffeeShopID int64    `json:"coffeeShopId" validate:"required"`
	Name         string   `json:"name" validate:"required,max=100"`
	Description  *string  `json:"description" validate:"omitempty,max=500"`
	Price        *float64 `json:"price" validate:"required,min=0"`
	Category     string   `json:"category" validate:"omitempty,max=50"`
}

// shopMenuHandler godoc
//
//	@Summary		Menu of a shop
//	@Description	Available items ordered by category, then name
//	@Tags			menu
//	@Produce		json
//	@Param			shopID	path		int	true	"Shop ID"
//	@Success		200		{array}		menu.MenuItem
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/menu/shop/{shopID} [get]
func (app *application) shopMenuHandler(w http.ResponseWriter, r *http.Request) {
	shopID, err := int64URLParam(r, "shopID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	app.writeMenu(w, r, shopID)
}

// shopMenuByExternalIDHandler godoc
//
//	@Summary		Menu of a shop by external id
//	@Description	Shops nobody has checked in at yet have an empty menu
//	@Tags			menu
//	@Produce		json
//	@Param			externalID	path		int	true	"External (map) ID"
//	@Success		200			{array}		menu.MenuItem
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/menu/shop/osm/{externalID} [get]
func (app *application) shopMenuByExternalIDHandler(w http.ResponseWriter, r *http.Request) {
	externalID, err := int64URLParam(r, "externalID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	shop, err := app.store.CoffeeShops.Get(r.Context(), coffeeshops.ByExternalID(externalID))
	if err != nil {
		if errors.Is(err, coffeeshops.ErrNotFound) {
			if err := app.jsonResponse(w, http.StatusOK, []menu.MenuItem{}); err != nil {
				app.internalServerError(w, r, err)
			}
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	app.writeMenu(w, r, shop.ID)
}

func (app *application) writeMenu(w http.ResponseWriter, r *http.Request, shopID int64) {
	items, err := app.store.Menu.ListAvailableByShop(r.Context(), shopID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, items); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createMenuItemHandler godoc
//
//	@Summary		Add a menu item
//	@Description	Only the shop owner may add items
//	@Tags			menu
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateMenuItemPayload	true	"Menu item"
//	@Success		201		{object}	menu.MenuItem
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error	"Shop not found"
//	@Security		ApiKeyAuth
//	@Router			/menu [post]
func (app *application) createMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload CreateMenuItemPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Category = strings.TrimSpace(payload.Category)

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	shop, err := app.store.CoffeeShops.Get(ctx, coffeeshops.ByID(payload.CoffeeShopID))
	if err != nil {
		app.shopLookupError(w, r, err)
		return
	}
	if !ownedBy(shop.OwnerID, user.ID) {
		app.forbiddenResponse(w, r)
		return
	}

	item := &menu.MenuItem{
		CoffeeShopID: shop.ID,
		Name:         payload.Name,
		Description:  trimmedOrNil(payload.Description),
		PriceCents:   menu.ToCents(*payload.Price),
		Category:     payload.Category,
	}
	if err := app.store.Menu.Create(ctx, item); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMenuItemHandler godoc
//
//	@Summary		Delete a menu item
//	@Tags			menu
//	@Param			itemID	path	int	true	"Menu item ID"
//	@Success		204
//	@Failure		403	{object}	error
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/menu/{itemID} [delete]
func (app *application) deleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	itemID, err := int64URLParam(r, "itemID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	item, err := app.store.Menu.GetByID(ctx, itemID)
	if err != nil {
		app.menuLookupError(w, r, err)
		return
	}
	if !ownedBy(item.ShopOwnerID, user.ID) {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.store.Menu.Delete(ctx, itemID); err != nil {
		app.menuLookupError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) menuLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, menu.ErrNotFound):
		app.notFoundResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}

func ownedBy(ownerID *int64, userID int64) bool {
	return ownerID != nil && *ownerID == userID
}
