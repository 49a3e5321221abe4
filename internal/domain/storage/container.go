package storage

import (
	"context"
	"fmt"

	"coffeecheckin/internal/db"
	"coffeecheckin/internal/domain/checkins"
	"coffeecheckin/internal/domain/coffeeshops"
	"coffeecheckin/internal/domain/menu"
	"coffeecheckin/internal/domain/reviews"
	"coffeecheckin/internal/domain/users"
	"coffeecheckin/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool        *pgxpool.Pool // nil for tx-scoped containers
	Users       users.Store
	CoffeeShops coffeeshops.Store
	CheckIns    checkins.Store
	Reviews     reviews.Store
	Menu        menu.Store
}

func NewContainer(pool *pgxpool.Pool) *Container {
	c := newRepositories(pool)
	c.pool = pool
	return c
}

func newRepositories(q dbx.Querier) *Container {
	return &Container{
		Users:       users.NewRepository(q),
		CoffeeShops: coffeeshops.NewRepository(q),
		CheckIns:    checkins.NewRepository(q),
		Reviews:     reviews.NewRepository(q),
		Menu:        menu.NewRepository(q),
	}
}

// WithTx runs fn against repositories bound to a single transaction.
func (c *Container) WithTx(ctx context.Context, fn func(tx *Container) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage: WithTx needs a pool-backed container")
	}

	return db.WithTx(c.pool, ctx, func(tx pgx.Tx) error {
		return fn(newRepositories(tx))
	})
}
