package reviews

import (
	"context"
	"fmt"

	"coffeecheckin/internal/domain/coffeeshops"
	"coffeecheckin/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

type Store interface {
	Create(ctx context.Context, review *Review) error
	ListByUser(ctx context.Context, userID int64) ([]Review, error)
	ListByShop(ctx context.Context, ref coffeeshops.Ref) ([]Review, error)
	ListFeed(ctx context.Context, q FeedQuery) ([]Review, error)
	ListAll(ctx context.Context) ([]Review, error)
	Stats(ctx context.Context) (*Stats, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) *Repository {
	return &Repository{db: db}
}

const reviewSelect = `
  SELECT r.id, r.check_in_id, r.user_id, r.product_name, r.rating, r.notes, r.created_at,
         u.username, u.profile_picture_url, s.id, s.name
  FROM reviews r
  JOIN users u ON u.id = r.user_id
  JOIN check_ins c ON c.id = r.check_in_id
  JOIN coffee_shops s ON s.id = c.coffee_shop_id
`

func scanReview(row pgx.Row, r *Review) error {
	return row.Scan(
		&r.ID,
		&r.CheckInID,
		&r.UserID,
		&r.ProductName,
		&r.Rating,
		&r.Notes,
		&r.CreatedAt,
		&r.Username,
		&r.UserProfilePicture,
		&r.ShopID,
		&r.ShopName,
	)
}

// Create inserts the review and fills the generated and denormalized fields.
// The caller checks that the check-in belongs to the reviewer.
func (r *Repository) Create(ctx context.Context, review *Review) error {
	query := `
	  WITH r AS (
	    INSERT INTO reviews (user_id, check_in_id, product_name, rating, notes)
	    VALUES ($1, $2, $3, $4, $5)
	    RETURNING id, check_in_id, user_id, product_name, rating, notes, created_at
	  )
	  SELECT r.id, r.check_in_id, r.user_id, r.product_name, r.rating, r.notes, r.created_at,
	         u.username, u.profile_picture_url, s.id, s.name
	  FROM r
	  JOIN users u ON u.id = r.user_id
	  JOIN check_ins c ON c.id = r.check_in_id
	  JOIN coffee_shops s ON s.id = c.coffee_shop_id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	row := r.db.QueryRow(ctx, query, review.UserID, review.CheckInID, review.ProductName, review.Rating, review.Notes)
	if err := scanReview(row, review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Review{}
	for rows.Next() {
		var rv Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, err
		}
		list = append(list, rv)
	}
	return list, rows.Err()
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Review, error) {
	return r.list(ctx, reviewSelect+` WHERE r.user_id = $1 ORDER BY r.created_at DESC, r.id DESC`, userID)
}

// ListByShop flattens the reviews of every check-in at the shop, newest first.
func (r *Repository) ListByShop(ctx context.Context, ref coffeeshops.Ref) ([]Review, error) {
	if ref.ByExternal {
		return r.list(ctx, reviewSelect+` WHERE s.external_id = $1 ORDER BY r.created_at DESC, r.id DESC`, ref.ExternalID)
	}
	return r.list(ctx, reviewSelect+` WHERE s.id = $1 ORDER BY r.created_at DESC, r.id DESC`, ref.ID)
}

func (r *Repository) ListFeed(ctx context.Context, q FeedQuery) ([]Review, error) {
	q = q.Normalize()

	order := `ORDER BY r.created_at DESC, r.id DESC`
	if q.Sort == SortPlace {
		order = `ORDER BY s.name ASC, r.created_at DESC, r.id DESC`
	}
	return r.list(ctx, reviewSelect+order+` LIMIT $1 OFFSET $2`, q.Limit, q.Offset)
}

// ListAll returns every review newest first; it feeds the grouped view.
func (r *Repository) ListAll(ctx context.Context) ([]Review, error) {
	return r.list(ctx, reviewSelect+` ORDER BY r.created_at DESC, r.id DESC`)
}

// Stats runs its aggregate queries concurrently.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	stats := &Stats{TopProducts: []ProductStat{}}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.QueryRow(gctx, `SELECT COUNT(*), COALESCE(AVG(rating), 0)::float8 FROM reviews`).
			Scan(&stats.TotalReviews, &stats.AvgRating)
	})
	g.Go(func() error {
		return r.db.QueryRow(gctx, `SELECT COUNT(*) FROM check_ins`).Scan(&stats.TotalCheckIns)
	})
	g.Go(func() error {
		return r.db.QueryRow(gctx, `SELECT COUNT(*) FROM coffee_shops`).Scan(&stats.TotalShops)
	})

	var top []ProductStat
	g.Go(func() error {
		rows, err := r.db.Query(gctx, `
		  SELECT product_name, COUNT(*), AVG(rating)::float8
		  FROM reviews
		  GROUP BY product_name
		  ORDER BY COUNT(*) DESC, product_name ASC
		  LIMIT $1`, TopProductsLimit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p ProductStat
			if err := rows.Scan(&p.Product, &p.Count, &p.AvgRating); err != nil {
				return err
			}
			p.AvgRating = RoundTenth(p.AvgRating)
			top = append(top, p)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("feed stats: %w", err)
	}

	stats.AvgRating = RoundTenth(stats.AvgRating)
	if top != nil {
		stats.TopProducts = top
	}
	return stats, nil
}
