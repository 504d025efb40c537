// README: Estimates one pickup/drop through the configured route chain and prints a quote per vehicle.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cabdesk/internal/config"
	"cabdesk/internal/logging"
	"cabdesk/internal/modules/pricing"
	"cabdesk/internal/modules/route"
)

func main() {
	pickup := flag.String("pickup", "Chennai Central", "pickup location")
	drop := flag.String("drop", "Pondicherry", "drop location")
	hint := flag.String("hint", "", "optional route hint, e.g. \"via ECR\"")
	ac := flag.Bool("ac", true, "price the AC tariff")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New("route-demo", cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	routes, closeRoutes, err := route.Build(ctx, route.Options{
		GeminiKey: cfg.AI.GeminiKey,
		MapsKey:   cfg.Maps.APIKey,
		CacheTTL:  cfg.Route.CacheTTL,
		Log:       log,
	})
	if err != nil {
		log.Error("build route chain", "error", err)
		os.Exit(1)
	}
	defer closeRoutes()

	est, err := routes.Estimate(ctx, route.Request{Pickup: *pickup, Drop: *drop, Hint: *hint})
	if err != nil {
		log.Error("estimate route", "pickup", *pickup, "drop", *drop, "error", err)
		os.Exit(1)
	}
	fmt.Printf("%s -> %s: %.1f km, %.0f min (%s)\n", *pickup, *drop, est.DistanceKm, est.DurationMin, est.Source)
	if est.Description != "" {
		fmt.Printf("  %s\n", est.Description)
	}

	svc := pricing.NewService(pricing.DefaultCatalog(), pricing.DefaultPackages())
	vehicles, err := svc.Vehicles(ctx)
	if err != nil {
		log.Error("load vehicles", "error", err)
		os.Exit(1)
	}
	for _, v := range vehicles {
		f := pricing.ComputeFare(est.DistanceKm, v, *ac)
		note := ""
		if f.Fallback {
			note = " (flat fallback)"
		}
		fmt.Printf("  %-16s %s %d%s\n", v.Class, f.Currency, f.TotalFare, note)
	}
}
