package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coffeecheckin/docs" // registers the swagger spec
	"coffeecheckin/internal/auth"
	"coffeecheckin/internal/domain/storage"
	"coffeecheckin/internal/overpass"
	"coffeecheckin/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// shopFinder looks up coffee shops around a point. Lookups never fail; a
// degraded lookup yields an empty list.
type shopFinder interface {
	NearbyCoffeeShops(ctx context.Context, lat, lng float64, radius int) []overpass.Shop
}

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	shopFinder    shopFinder
	avatars       avatarStore // nil when uploads are not configured
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr          string
	db            dbConfig
	env           string
	apiURL        string
	auth          authConfig
	overpass      overpass.Config
	cloudinaryURL string
	corsOrigin    string
	rateLimiter   ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	r.Use(app.RateLimiterMiddleware)

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.registerUserHandler)
			r.Post("/login", app.loginHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Route("/checkins", func(r chi.Router) {
				r.Post("/", app.createCheckInHandler)
				r.Get("/", app.listCheckInsHandler)
				r.Get("/{checkInID}", app.getCheckInHandler)
			})

			r.Route("/coffeeshops", func(r chi.Router) {
				r.Get("/nearby", app.nearbyCoffeeShopsHandler)
				r.Get("/seeded", app.seededCoffeeShopsHandler)
				r.Get("/mine", app.myCoffeeShopsHandler)
				r.Post("/add", app.addCoffeeShopHandler)

				r.Route("/osm/{externalID}", func(r chi.Router) {
					r.Get("/reviews", app.coffeeShopReviewsByExternalIDHandler)
					r.Get("/qr", app.coffeeShopQRHandler)
					r.Post("/claim", app.claimCoffeeShopByExternalIDHandler)
				})

				r.Route("/{shopID}", func(r chi.Router) {
					r.Get("/", app.getCoffeeShopHandler)
					r.Get("/reviews", app.coffeeShopReviewsHandler)
					r.Post("/claim", app.claimCoffeeShopHandler)
				})
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", app.createReviewHandler)
				r.Get("/", app.listMyReviewsHandler)
				r.Get("/feed", app.feedHandler)
				r.Get("/feed/grouped", app.groupedFeedHandler)
				r.Get("/feed/stats", app.feedStatsHandler)
			})

			r.Route("/menu", func(r chi.Router) {
				r.Get("/shop/{shopID}", app.shopMenuHandler)
				r.Get("/shop/osm/{externalID}", app.shopMenuByExternalIDHandler)
				r.Post("/", app.createMenuItemHandler)
				r.Delete("/{itemID}", app.deleteMenuItemHandler)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", app.getMyProfileHandler)
				r.Put("/me", app.updateMyProfileHandler)
				r.Post("/me/avatar", app.uploadAvatarHandler)
				r.Get("/{userID}", app.getUserProfileHandler)
			})

			r.Route("/coffeeinfo", func(r chi.Router) {
				r.Get("/roasts", app.listRoastsHandler)
				r.Get("/roasts/{id}", app.getRoastHandler)
				r.Get("/origins", app.listOriginsHandler)
				r.Get("/origins/{id}", app.getOriginHandler)
			})
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
