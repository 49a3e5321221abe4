package checkins

import (
	"context"
	"errors"
	"fmt"

	"coffeecheckin/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Create(ctx context.Context, checkIn *CheckIn) error
	ListByUser(ctx context.Context, userID int64) ([]CheckIn, error)
	GetForUser(ctx context.Context, checkInID, userID int64) (*CheckIn, error)
	Count(ctx context.Context) (int, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) *Repository {
	return &Repository{db: db}
}

// Create inserts the check-in and fills its id, timestamp and shop name.
// A fresh check-in always has an empty review list.
func (r *Repository) Create(ctx context.Context, c *CheckIn) error {
	query := `
	  WITH inserted AS (
	    INSERT INTO check_ins (user_id, coffee_shop_id, notes)
	    VALUES ($1, $2, $3)
	    RETURNING id, coffee_shop_id, checked_in_at
	  )
	  SELECT i.id, i.checked_in_at, s.name
	  FROM inserted i
	  JOIN coffee_shops s ON s.id = i.coffee_shop_id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, c.UserID, c.CoffeeShopID, c.Notes).
		Scan(&c.ID, &c.CheckedInAt, &c.ShopName)
	if err != nil {
		return fmt.Errorf("create check-in: %w", err)
	}
	c.Reviews = []Review{}
	return nil
}

const checkInSelect = `
  SELECT c.id, c.user_id, c.coffee_shop_id, s.name, c.checked_in_at, c.notes
  FROM check_ins c
  JOIN coffee_shops s ON s.id = c.coffee_shop_id
`

func scanCheckIn(row pgx.Row) (*CheckIn, error) {
	var c CheckIn
	if err := row.Scan(&c.ID, &c.UserID, &c.CoffeeShopID, &c.ShopName, &c.CheckedInAt, &c.Notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.Reviews = []Review{}
	return &c, nil
}

// ListByUser returns the user's check-ins newest first, each with its reviews.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]CheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, checkInSelect+` WHERE c.user_id = $1 ORDER BY c.checked_in_at DESC, c.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	defer rows.Close()

	list := []CheckIn{}
	ids := []int64{}
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	byCheckIn, err := r.reviewsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if rs, ok := byCheckIn[list[i].ID]; ok {
			list[i].Reviews = rs
		}
	}
	return list, nil
}

// GetForUser returns the check-in only when it belongs to userID.
func (r *Repository) GetForUser(ctx context.Context, checkInID, userID int64) (*CheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	c, err := scanCheckIn(r.db.QueryRow(ctx, checkInSelect+` WHERE c.id = $1 AND c.user_id = $2`, checkInID, userID))
	if err != nil {
		return nil, err
	}

	byCheckIn, err := r.reviewsFor(ctx, []int64{c.ID})
	if err != nil {
		return nil, err
	}
	if rs, ok := byCheckIn[c.ID]; ok {
		c.Reviews = rs
	}
	return c, nil
}

func (r *Repository) reviewsFor(ctx context.Context, checkInIDs []int64) (map[int64][]Review, error) {
	rows, err := r.db.Query(ctx, `
	  SELECT id, check_in_id, product_name, rating, notes, created_at
	  FROM reviews
	  WHERE check_in_id = ANY($1)
	  ORDER BY created_at DESC, id DESC`, checkInIDs)
	if err != nil {
		return nil, fmt.Errorf("list check-in reviews: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]Review, len(checkInIDs))
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.CheckInID, &rv.ProductName, &rv.Rating, &rv.Notes, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out[rv.CheckInID] = append(out[rv.CheckInID], rv)
	}
	return out, rows.Err()
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM check_ins`).Scan(&n)
	return n, err
}
