package main

import (
	"context"
	"expvar"
	"time"
)

// Registry counters exposed on /v1/debug/vars.
var registryStats = expvar.NewMap("registry")

func (app *application) refreshRegistryStats(ctx context.Context) error {
	counts := []struct {
		name  string
		count func(context.Context) (int, error)
	}{
		{"users", app.store.Users.Count},
		{"coffee_shops", app.store.CoffeeShops.Count},
		{"check_ins", app.store.CheckIns.Count},
	}

	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			return err
		}
		v := new(expvar.Int)
		v.Set(int64(n))
		registryStats.Set(c.name, v)
	}
	return nil
}

func (app *application) refreshRegistryStatsEvery(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Run once immediately
		app.logRegistryRefresh()

		for range ticker.C {
			app.logRegistryRefresh()
		}
	}()
}

func (app *application) logRegistryRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.refreshRegistryStats(ctx); err != nil {
		app.logger.Errorw("failed to refresh registry stats", "error", err)
	}
}
