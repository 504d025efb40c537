// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/config"
	httptransport "cabdesk/internal/http"
	"cabdesk/internal/infra"
	"cabdesk/internal/logging"
	"cabdesk/internal/modules/booking"
	"cabdesk/internal/modules/fleet"
	"cabdesk/internal/modules/matching"
	"cabdesk/internal/modules/pricing"
	"cabdesk/internal/modules/route"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logging.New("cabdesk-api", cfg.Log.Level)
	if err := run(cfg, log); err != nil {
		log.Error("cabdesk-api stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		catalog     pricing.Catalog
		driverStore fleet.Repository
		bookingRepo booking.Repository
	)
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		pricingStore := pricing.NewStore(dbPool)
		vehicles, err := pricingStore.Vehicles(ctx)
		if err != nil {
			return err
		}
		if len(vehicles) == 0 {
			for i, v := range pricing.DefaultVehicles() {
				if err := pricingStore.Upsert(ctx, v, i); err != nil {
					return err
				}
			}
			log.Info("vehicle catalog seeded")
		}
		catalog = pricingStore
		driverStore = fleet.NewStore(dbPool)
		bookingRepo = booking.NewStore(dbPool)
		log.Info("using postgres stores")
	} else {
		catalog = pricing.DefaultCatalog()
		driverStore = fleet.NewMemoryStore()
		bookingRepo = booking.NewMemoryStore()
		log.Info("using in-memory stores")
	}

	var reserver matching.Reserver
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		reserver = matching.NewRedisReserver(redisClient, cfg.Matching.ReservationTTL)
	} else {
		reserver = matching.NewMemoryReserver(cfg.Matching.ReservationTTL)
	}

	routes, closeRoutes, err := route.Build(ctx, route.Options{
		GeminiKey: cfg.AI.GeminiKey,
		MapsKey:   cfg.Maps.APIKey,
		CacheTTL:  cfg.Route.CacheTTL,
		Log:       log,
	})
	if err != nil {
		return err
	}
	defer closeRoutes()

	pricingSvc := pricing.NewService(catalog, pricing.DefaultPackages())
	fleetSvc := fleet.NewService(driverStore)
	// An empty roster gets the demo drivers so that dispatch has someone to find.
	drivers, err := fleetSvc.List(ctx)
	if err != nil {
		return err
	}
	if len(drivers) == 0 {
		if err := fleetSvc.Seed(ctx, fleet.DemoRoster()); err != nil {
			return err
		}
		log.Info("driver roster seeded", "drivers", len(fleet.DemoRoster()))
	}
	matchingSvc := matching.NewService(reserver)
	bookingSvc := booking.NewService(booking.Deps{
		Store:   bookingRepo,
		Pricing: pricingSvc,
		Routes:  routes,
		Roster:  fleetSvc,
		Matcher: matchingSvc,
		Log:     log,
	})

	gin.SetMode(gin.ReleaseMode)
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Booking: bookingSvc,
		Fleet:   fleetSvc,
		Pricing: pricingSvc,
		Log:     log,
	})
	return httptransport.NewServer(cfg.HTTP.Addr, router, log).Run(ctx)
}
