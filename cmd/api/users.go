package main

import (
	"errors"
	"net/http"
	"strings"

	"coffeecheckin/internal/domain/users"
)

const maxAvatarBytes = 2 << 20 // 2 MB

type UpdateProfilePayload struct {
	Bio               *string `json:"bio" validate:"omitempty,max=500"`
	ProfilePictureURL *string `json:"profilePictureUrl" validate:"omitempty,url,max=200"`
	ThemeColor        *string `json:"themeColor" validate:"omitempty,hexcolor,max=7"`
	InstagramHandle   *string `json:"instagramHandle" validate:"omitempty,max=50"`
}

// getMyProfileHandler godoc
//
//	@Summary		My profile
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	users.Profile
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) getMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	app.writeProfile(w, r, user.ID)
}

// getUserProfileHandler godoc
//
//	@Summary		A user's profile
//	@Tags			users
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	users.Profile
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/{userID} [get]
func (app *application) getUserProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := int64URLParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	app.writeProfile(w, r, userID)
}

// updateMyProfileHandler godoc
//
//	@Summary		Update my profile
//	@Description	Only fields present in the body change
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UpdateProfilePayload	true	"Profile fields"
//	@Success		200		{object}	users.Profile
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/me [put]
func (app *application) updateMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload UpdateProfilePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	update := users.ProfileUpdate{
		Bio:               payload.Bio,
		ProfilePictureURL: payload.ProfilePictureURL,
		ThemeColor:        payload.ThemeColor,
		InstagramHandle:   payload.InstagramHandle,
	}
	if update.InstagramHandle != nil {
		handle := strings.TrimPrefix(strings.TrimSpace(*update.InstagramHandle), "@")
		update.InstagramHandle = &handle
	}

	if !update.Empty() {
		if err := app.store.Users.UpdateProfile(r.Context(), user.ID, update); err != nil {
			app.profileLookupError(w, r, err)
			return
		}
	}

	app.writeProfile(w, r, user.ID)
}

// uploadAvatarHandler godoc
//
//	@Summary		Upload profile picture
//	@Description	Uploads a JPEG or PNG (max 2MB) and stores its URL on the profile
//	@Tags			users
//	@Accept			mpfd
//	@Produce		json
//	@Param			profile_picture	formData	file	true	"Profile picture, 2MB max"
//	@Success		200				{object}	users.Profile
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		503				{object}	error	"Uploads not configured"
//	@Security		ApiKeyAuth
//	@Router			/users/me/avatar [post]
func (app *application) uploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	if app.avatars == nil {
		app.serviceUnavailableResponse(w, r, "avatar uploads are not configured")
		return
	}

	user := getUserFromContext(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes+(512<<10))
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		app.badRequestResponse(w, r, errors.New("unable to parse form, file size limit is 2MB"))
		return
	}

	file, fileHeader, err := r.FormFile("profile_picture")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("unable to retrieve file"))
		return
	}
	defer file.Close()

	if fileHeader.Size > maxAvatarBytes {
		app.badRequestResponse(w, r, errors.New("file size limit is 2MB"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		app.badRequestResponse(w, r, errors.New("only JPEG and PNG images are allowed"))
		return
	}

	ctx := r.Context()
	previous := user.ProfilePictureURL

	url, err := app.avatars.Upload(ctx, file, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.SetProfilePicture(ctx, user.ID, url); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if old := previous; old != nil && *old != "" && *old != url {
		if err := app.avatars.Delete(ctx, *old); err != nil {
			app.logger.Warnw("failed to delete previous profile picture", "url", *old, "error", err)
		}
	}

	app.writeProfile(w, r, user.ID)
}

func (app *application) writeProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	profile, err := app.store.Users.GetProfile(r.Context(), userID)
	if err != nil {
		app.profileLookupError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, profile); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) profileLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		app.notFoundResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
