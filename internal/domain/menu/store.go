package menu

import (
	"context"
	"errors"
	"fmt"

	"coffeecheckin/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	ListAvailableByShop(ctx context.Context, shopID int64) ([]MenuItem, error)
	Create(ctx context.Context, item *MenuItem) error
	GetByID(ctx context.Context, id int64) (*MenuItem, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) *Repository {
	return &Repository{db: db}
}

const itemColumns = `m.id, m.coffee_shop_id, m.name, m.description, m.price_cents, m.category, m.is_available, m.created_at, s.owner_id`

func scanItem(row pgx.Row) (*MenuItem, error) {
	var m MenuItem
	err := row.Scan(
		&m.ID,
		&m.CoffeeShopID,
		&m.Name,
		&m.Description,
		&m.PriceCents,
		&m.Category,
		&m.IsAvailable,
		&m.CreatedAt,
		&m.ShopOwnerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	m.Price = FormatCents(m.PriceCents)
	return &m, nil
}

// ListAvailableByShop returns the shop's available items by category, then name.
func (r *Repository) ListAvailableByShop(ctx context.Context, shopID int64) ([]MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
	  SELECT `+itemColumns+`
	  FROM menu_items m
	  JOIN coffee_shops s ON s.id = m.coffee_shop_id
	  WHERE m.coffee_shop_id = $1 AND m.is_available
	  ORDER BY m.category, m.name, m.id`, shopID)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	defer rows.Close()

	items := []MenuItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *Repository) Create(ctx context.Context, item *MenuItem) error {
	if item.Category == "" {
		item.Category = DefaultCategory
	}

	query := `
	  INSERT INTO menu_items (coffee_shop_id, name, description, price_cents, category)
	  VALUES ($1, $2, $3, $4, $5)
	  RETURNING id, is_available, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, item.CoffeeShopID, item.Name, item.Description, item.PriceCents, item.Category).
		Scan(&item.ID, &item.IsAvailable, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	item.Price = FormatCents(item.PriceCents)
	return nil
}

// GetByID returns the item along with its shop's owner.
func (r *Repository) GetByID(ctx context.Context, id int64) (*MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanItem(r.db.QueryRow(ctx, `
	  SELECT `+itemColumns+`
	  FROM menu_items m
	  JOIN coffee_shops s ON s.id = m.coffee_shop_id
	  WHERE m.id = $1`, id))
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
