package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"coffeecheckin/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) error
	SetProfilePicture(ctx context.Context, userID int64, url string) error
	Delete(ctx context.Context, userID int64) error
	Count(ctx context.Context) (int, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, user *User) error {
	query := `
	  INSERT INTO users (username, email, password, theme_color)
	  VALUES ($1, $2, $3, $4)
	  RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if user.ThemeColor == "" {
		user.ThemeColor = DefaultThemeColor
	}

	err := r.db.QueryRow(
		ctx, query, user.Username, user.Email, user.Password.hash, user.ThemeColor,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if constraint, ok := dbx.IsUniqueViolation(err); ok {
			switch constraint {
			case "users_email_key":
				return ErrDuplicateEmail
			case "users_username_key":
				return ErrDuplicateUsername
			}
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

const userColumns = `id, username, email, password, bio, profile_picture_url, theme_color, instagram_handle, created_at`

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password.hash,
		&user.Bio,
		&user.ProfilePictureURL,
		&user.ThemeColor,
		&user.InstagramHandle,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetByID(ctx context.Context, userID int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *Repository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	query := `
		SELECT
			u.id,
			u.username,
			u.bio,
			u.profile_picture_url,
			u.theme_color,
			u.instagram_handle,
			u.created_at,
			(SELECT COUNT(*) FROM check_ins c WHERE c.user_id = u.id) AS total_check_ins,
			(SELECT COUNT(*) FROM reviews rv WHERE rv.user_id = u.id) AS total_reviews
		FROM users u
		WHERE u.id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var p Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.Username,
		&p.Bio,
		&p.ProfilePictureURL,
		&p.ThemeColor,
		&p.InstagramHandle,
		&p.CreatedAt,
		&p.TotalCheckIns,
		&p.TotalReviews,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) error {
	if update.Empty() {
		return nil
	}

	setClauses := []string{}
	args := []any{}
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("bio", update.Bio)
	add("profile_picture_url", update.ProfilePictureURL)
	add("theme_color", update.ThemeColor)
	add("instagram_handle", update.InstagramHandle)

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), len(args))

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetProfilePicture(ctx context.Context, userID int64, url string) error {
	return r.UpdateProfile(ctx, userID, ProfileUpdate{ProfilePictureURL: &url})
}

// Delete removes the user; check-ins and reviews go with it via ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
