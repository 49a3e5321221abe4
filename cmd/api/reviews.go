package main

import (
	"errors"
	"net/http"
	"strings"

	"coffeecheckin/internal/domain/checkins"
	"coffeecheckin/internal/domain/reviews"
	"coffeecheckin/internal/params"
)

// CreateReviewPayload accepts the product under either "productName" or the
// shorter "product".
type CreateReviewPayload struct {
	CheckInID   int64   `json:"checkInId" validate:"required"`
	ProductName string  `json:"productName" validate:"required,max=100"`
	Product     string  `json:"product" validate:"omitempty,max=100"`
	Rating      int     `json:"rating" validate:"min=1,max=5"`
	Notes       *string `json:"notes" validate:"omitempty,max=1000"`
}

// createReviewHandler godoc
//
//	@Summary		Review a product
//	@Description	Rates a product (1-5) drunk during one of the caller's check-ins
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateReviewPayload	true	"Review"
//	@Success		201		{object}	reviews.Review
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error	"Check-in not found"
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload CreateReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	payload.ProductName = strings.TrimSpace(payload.ProductName)
	if payload.ProductName == "" {
		payload.ProductName = strings.TrimSpace(payload.Product)
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	if _, err := app.store.CheckIns.GetForUser(ctx, payload.CheckInID, user.ID); err != nil {
		switch {
		case errors.Is(err, checkins.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	review := &reviews.Review{
		UserID:      user.ID,
		CheckInID:   payload.CheckInID,
		ProductName: payload.ProductName,
		Rating:      payload.Rating,
		Notes:       trimmedOrNil(payload.Notes),
	}
	if err := app.store.Reviews.Create(ctx, review); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listMyReviewsHandler godoc
//
//	@Summary		List my reviews
//	@Tags			reviews
//	@Produce		json
//	@Success		200	{array}		reviews.Review
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews [get]
func (app *application) listMyReviewsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	list, err := app.store.Reviews.ListByUser(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// feedHandler godoc
//
//	@Summary		Community feed
//	@Description	Reviews newest first, or by shop name (then newest first) with sort=place
//	@Tags			reviews
//	@Produce		json
//	@Param			sort	query		string	false	"recent or place"	default(recent)
//	@Param			limit	query		int		false	"Page size, at most 100"	default(50)
//	@Param			offset	query		int		false	"Offset"	default(0)
//	@Success		200		{array}		reviews.Review
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/feed [get]
func (app *application) feedHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := params.ParsePagination(q)

	list, err := app.store.Reviews.ListFeed(r.Context(), reviews.FeedQuery{
		Sort:   reviews.ParseFeedSort(q.Get("sort")),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// groupedFeedHandler godoc
//
//	@Summary		Feed grouped by shop
//	@Description	Per shop: review count, average rating and the 10 latest reviews. Busiest shops first.
//	@Tags			reviews
//	@Produce		json
//	@Success		200	{array}		reviews.ShopGroup
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/feed/grouped [get]
func (app *application) groupedFeedHandler(w http.ResponseWriter, r *http.Request) {
	all, err := app.store.Reviews.ListAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, reviews.GroupByShop(all)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// feedStatsHandler godoc
//
//	@Summary		Feed statistics
//	@Tags			reviews
//	@Produce		json
//	@Success		200	{object}	reviews.Stats
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/feed/stats [get]
func (app *application) feedStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.store.Reviews.Stats(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}
