package main

import (
	"fmt"
	"net/http"

	"coffeecheckin/internal/coffeeinfo"

	"github.com/go-chi/chi/v5"
)

// listRoastsHandler godoc
//
//	@Summary		Roast levels
//	@Tags			coffeeinfo
//	@Produce		json
//	@Success		200	{object}	map[string]coffeeinfo.Roast
//	@Security		ApiKeyAuth
//	@Router			/coffeeinfo/roasts [get]
func (app *application) listRoastsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, coffeeinfo.Roasts()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRoastHandler godoc
//
//	@Summary		One roast level
//	@Tags			coffeeinfo
//	@Produce		json
//	@Param			id	path		string	true	"Roast id, e.g. medium-dark"
//	@Success		200	{object}	coffeeinfo.Roast
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/coffeeinfo/roasts/{id} [get]
func (app *application) getRoastHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	roast, ok := coffeeinfo.RoastByID(id)
	if !ok {
		app.notFoundResponse(w, r, fmt.Errorf("roast %q not found", id))
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, roast); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOriginsHandler godoc
//
//	@Summary		Growing origins
//	@Tags			coffeeinfo
//	@Produce		json
//	@Success		200	{object}	map[string]coffeeinfo.Origin
//	@Security		ApiKeyAuth
//	@Router			/coffeeinfo/origins [get]
func (app *application) listOriginsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, coffeeinfo.Origins()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOriginHandler godoc
//
//	@Summary		One growing origin
//	@Tags			coffeeinfo
//	@Produce		json
//	@Param			id	path		string	true	"Origin id, e.g. costa-rica"
//	@Success		200	{object}	coffeeinfo.Origin
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/coffeeinfo/origins/{id} [get]
func (app *application) getOriginHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	origin, ok := coffeeinfo.OriginByID(id)
	if !ok {
		app.notFoundResponse(w, r, fmt.Errorf("origin %q not found", id))
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, origin); err != nil {
		app.internalServerError(w, r, err)
	}
}
