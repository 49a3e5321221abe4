package coffeeshops

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coffeecheckin/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	FindOrCreateByExternalID(ctx context.Context, externalID int64, name string, lat, lng float64, address *string) (*CoffeeShop, error)
	AddUserShop(ctx context.Context, name string, lat, lng float64, address *string, ownerID int64) (*CoffeeShop, error)
	Claim(ctx context.Context, ref Ref, userID int64) error
	Get(ctx context.Context, ref Ref) (*CoffeeShop, error)
	ListAll(ctx context.Context) ([]CoffeeShop, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]CoffeeShop, error)
	Count(ctx context.Context) (int, error)
}

type Repository struct {
	db  dbx.Querier
	now func() time.Time
}

func NewRepository(db dbx.Querier) *Repository {
	return &Repository{db: db, now: time.Now}
}

// WithClock overrides the time source used for cache stamps and synthetic ids.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	return r
}

const shopColumns = `id, external_id, name, latitude, longitude, address, cached_at, owner_id, is_claimed`

func scanShop(row pgx.Row) (*CoffeeShop, error) {
	var s CoffeeShop
	err := row.Scan(
		&s.ID,
		&s.ExternalID,
		&s.Name,
		&s.Latitude,
		&s.Longitude,
		&s.Address,
		&s.CachedAt,
		&s.OwnerID,
		&s.IsClaimed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindOrCreateByExternalID returns the shop with externalID, inserting it when
// absent. The unique index on external_id settles concurrent inserts: the
// loser's insert is a no-op and it re-reads the winner's row. User-added ids
// are only ever looked up; an unknown one is ErrNotFound.
func (r *Repository) FindOrCreateByExternalID(ctx context.Context, externalID int64, name string, lat, lng float64, address *string) (*CoffeeShop, error) {
	if IsUserShop(externalID) {
		return r.Get(ctx, ByExternalID(externalID))
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	shop, err := scanShop(r.db.QueryRow(ctx, `
		INSERT INTO coffee_shops (external_id, name, latitude, longitude, address, cached_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING `+shopColumns,
		externalID, name, lat, lng, address, r.now().UTC(),
	))
	switch {
	case err == nil:
		return shop, nil
	case errors.Is(err, ErrNotFound):
		// conflict: row already exists
	default:
		return nil, fmt.Errorf("insert coffee shop: %w", err)
	}

	shop, err = r.Get(ctx, ByExternalID(externalID))
	if err != nil {
		return nil, fmt.Errorf("read existing coffee shop %d: %w", externalID, err)
	}
	return shop, nil
}

const maxSyntheticIDAttempts = 5

// AddUserShop persists a shop created by a user, already claimed by them.
func (r *Repository) AddUserShop(ctx context.Context, name string, lat, lng float64, address *string, ownerID int64) (*CoffeeShop, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM coffee_shops
			WHERE LOWER(name) = LOWER($1) AND COALESCE(address, '') = COALESCE($2, '')
		)`, name, address).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check duplicate shop: %w", err)
	}
	if exists {
		return nil, ErrDuplicateShop
	}

	externalID := UserShopExternalID(r.now())
	for attempt := 0; attempt < maxSyntheticIDAttempts; attempt++ {
		shop, err := scanShop(r.db.QueryRow(ctx, `
			INSERT INTO coffee_shops (external_id, name, latitude, longitude, address, cached_at, owner_id, is_claimed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
			RETURNING `+shopColumns,
			externalID, name, lat, lng, address, r.now().UTC(), ownerID,
		))
		if err == nil {
			return shop, nil
		}

		constraint, ok := dbx.IsUniqueViolation(err)
		if !ok {
			return nil, fmt.Errorf("insert user shop: %w", err)
		}
		if constraint == "coffee_shops_user_name_address_key" {
			return nil, ErrDuplicateShop
		}
		// synthetic id taken by a shop added in the same millisecond
		externalID--
	}

	return nil, fmt.Errorf("insert user shop: no free synthetic id after %d attempts", maxSyntheticIDAttempts)
}

// Claim assigns the shop to userID. The conditional update is the only guard
// against concurrent claims: exactly one caller sees a row affected.
func (r *Repository) Claim(ctx context.Context, ref Ref, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	column, key := refColumn(ref)
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`
		UPDATE coffee_shops
		SET owner_id = $1, is_claimed = TRUE
		WHERE %s = $2 AND is_claimed = FALSE`, column), userID, key)
	if err != nil {
		return fmt.Errorf("claim coffee shop: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.Get(ctx, ref); err != nil {
		return err
	}
	return ErrAlreadyClaimed
}

func refColumn(ref Ref) (string, int64) {
	if ref.ByExternal {
		return "external_id", ref.ExternalID
	}
	return "id", ref.ID
}

func (r *Repository) Get(ctx context.Context, ref Ref) (*CoffeeShop, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	column, key := refColumn(ref)
	return scanShop(r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM coffee_shops WHERE %s = $1`, shopColumns, column), key))
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]CoffeeShop, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []CoffeeShop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, *shop)
	}
	return shops, rows.Err()
}

// ListAll returns every persisted shop ordered by name. Clients merge this
// list with nearby lookups.
func (r *Repository) ListAll(ctx context.Context) ([]CoffeeShop, error) {
	return r.list(ctx, `SELECT `+shopColumns+` FROM coffee_shops ORDER BY name, id`)
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]CoffeeShop, error) {
	return r.list(ctx, `SELECT `+shopColumns+` FROM coffee_shops WHERE owner_id = $1 ORDER BY name, id`, ownerID)
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM coffee_shops`).Scan(&n)
	return n, err
}
