// README: Assembles the estimator chain from whichever providers are configured.
package route

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cabdesk/internal/ai"
	"cabdesk/internal/maps"
)

type Options struct {
	GeminiKey string
	MapsKey   string
	CacheTTL  time.Duration
	Log       *slog.Logger
}

// Build returns registry -> Gemini -> Google Maps, skipping providers without a key, behind
// a TTL cache. The returned close func releases provider clients.
func Build(ctx context.Context, opts Options) (Estimator, func(), error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	closers := []func(){}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	estimators := []Estimator{DefaultRegistry()}
	if opts.GeminiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, opts.GeminiKey)
		if err != nil {
			return nil, func() {}, fmt.Errorf("gemini provider: %w", err)
		}
		closers = append(closers, provider.Close)
		estimators = append(estimators, NewGeminiEstimator(provider))
		log.Info("route provider enabled", "source", SourceGemini)
	}
	if opts.MapsKey != "" {
		svc, err := maps.NewRouteService(opts.MapsKey)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		estimators = append(estimators, NewMapsEstimator(svc))
		log.Info("route provider enabled", "source", SourceMaps)
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return NewCached(NewChain(log, estimators...), ttl), closeAll, nil
}
