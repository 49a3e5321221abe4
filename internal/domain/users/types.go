package users

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
	QueryTimeoutDuration = time.Second * 5
)

const DefaultThemeColor = "#6F4E37"

type User struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Password          password  `json:"-"`
	Bio               *string   `json:"bio"`
	ProfilePictureURL *string   `json:"profilePictureUrl"`
	ThemeColor        string    `json:"themeColor"`
	InstagramHandle   *string   `json:"instagramHandle"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Profile is the public view of a user with activity totals.
type Profile struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	Bio               *string   `json:"bio"`
	ProfilePictureURL *string   `json:"profilePictureUrl"`
	ThemeColor        string    `json:"themeColor"`
	InstagramHandle   *string   `json:"instagramHandle"`
	CreatedAt         time.Time `json:"createdAt"`
	TotalCheckIns     int       `json:"totalCheckIns"`
	TotalReviews      int       `json:"totalReviews"`
}

// ProfileUpdate carries only the fields a caller wants to change; nil leaves
// the stored value as it is.
type ProfileUpdate struct {
	Bio               *string
	ProfilePictureURL *string
	ThemeColor        *string
	InstagramHandle   *string
}

func (u ProfileUpdate) Empty() bool {
	return u.Bio == nil && u.ProfilePictureURL == nil && u.ThemeColor == nil && u.InstagramHandle == nil
}

type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}
