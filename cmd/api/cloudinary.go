package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const avatarFolder = "profile_pictures"

// avatarStore keeps profile pictures in an external image host.
type avatarStore interface {
	Upload(ctx context.Context, file io.Reader, userID int64) (string, error)
	Delete(ctx context.Context, photoURL string) error
}

type cloudinaryAvatars struct {
	cld *cloudinary.Cloudinary
}

// Upload stores the image under a fresh public id and returns its secure URL.
func (c *cloudinaryAvatars) Upload(ctx context.Context, file io.Reader, userID int64) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         avatarFolder,
		PublicID:       fmt.Sprintf("%d_%s", userID, uuid.NewString()),
		Overwrite:      api.Bool(false),
		Transformation: "w_300,h_300,c_fill,q_auto", // 300x300, auto quality
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}

func (c *cloudinaryAvatars) Delete(ctx context.Context, photoURL string) error {
	publicID, err := publicIDFromURL(photoURL)
	if err != nil {
		return fmt.Errorf("failed to extract public ID: %w", err)
	}

	_, err = c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete photo from Cloudinary: %w", err)
	}
	return nil
}

// publicIDFromURL extracts the public id from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/profile_pictures/7_ab.jpg
// which yields "profile_pictures/7_ab".
func publicIDFromURL(photoURL string) (string, error) {
	parsedURL, err := url.Parse(photoURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	pathParts := strings.Split(parsedURL.Path, "/")
	for i, part := range pathParts {
		if part != "upload" || i+1 >= len(pathParts) {
			continue
		}

		rest := pathParts[i+1:]
		if len(rest) > 1 && isVersionSegment(rest[0]) {
			rest = rest[1:]
		}
		id := strings.Join(rest, "/")
		id = strings.TrimSuffix(id, path.Ext(id))
		if id == "" {
			break
		}
		return id, nil
	}

	return "", errors.New("failed to extract public ID from URL")
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
