// Command inspectorbot wires every package under internal/ into the
// running service described in spec.md §6: an HTTP surface, a chat
// ingestion chain ready to run once a concrete adapter is plugged in, and
// the shared risk-scoring state both feed. Grounded on the teacher's
// cmd/main.go runServers: a signal channel, an error channel, a blocking
// select, and a bounded graceful shutdown.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/freifahren/sichtungskern/internal/api"
	"github.com/freifahren/sichtungskern/internal/catalog"
	"github.com/freifahren/sichtungskern/internal/config"
	"github.com/freifahren/sichtungskern/internal/logging"
	"github.com/freifahren/sichtungskern/internal/ner"
	"github.com/freifahren/sichtungskern/internal/pipeline"
	"github.com/freifahren/sichtungskern/internal/ratelimit"
	"github.com/freifahren/sichtungskern/internal/risk"
	"github.com/freifahren/sichtungskern/internal/topology"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "no .env file found or error loading it: %v\n", err)
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.Pretty)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	topo, err := loadTopology(loadCtx, cfg)
	loadCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load topology")
	}
	log.Info().
		Int("lines", len(topo.LineIDsByDescendingLength())).
		Str("stations", humanize.Comma(int64(len(topo.AllStationIDs())))).
		Msg("topology loaded")

	tagger, err := buildTagger(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build NER tagger")
	}

	catalogClient := buildCatalogClient(cfg)
	limiter := buildLimiter(cfg)
	engine := risk.NewEngine(topo, riskVariant(cfg.RiskEngineVariant))
	store := risk.NewStore()

	// The chain is fully wired and exercised by internal/pipeline's own
	// tests; it only needs a concrete chat.Poller (a real messaging
	// platform adapter, out of scope per spec.md §1) to be driven by
	// FanOut/WorkerPool in a running process.
	resolver := pipeline.NewResolverStage(topo, catalogClient)
	resolver.Sink = store
	_ = pipeline.NewChain(
		&pipeline.GuardStage{},
		&pipeline.ExtractorStage{Topo: topo, Tagger: tagger},
		&pipeline.VerifierStage{Topo: topo, Tagger: tagger},
		resolver,
	)

	server := api.NewServer(api.Config{
		Addr:             cfg.HTTPAddr,
		Catalog:          catalogClient,
		Notifier:         nil, // no concrete chat platform adapter is wired; see internal/chat
		Limiter:          limiter,
		Engine:           engine,
		Store:            store,
		ReportPassword:   cfg.ReportPassword,
		RestartPassword:  cfg.RestartPassword,
		ChatChannelID:    cfg.ChatChannelID,
		MiniAppPublicURL: cfg.MiniAppPublicURL,
		Log:              log,
	})

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	errChan := make(chan error, 1)

	go func() {
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("inspectorbot started")

	select {
	case sig := <-signalChan:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-errChan:
		log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error shutting down HTTP server")
	}
	log.Info().Msg("shutdown complete")
}

func loadTopology(ctx context.Context, cfg *config.Config) (*topology.Topology, error) {
	var src topology.Source
	switch {
	case strings.HasPrefix(cfg.TopologySource, "s3://"):
		rest := strings.TrimPrefix(cfg.TopologySource, "s3://")
		parts := strings.SplitN(rest, "/", 2)
		bucket := parts[0]
		prefix := ""
		if len(parts) == 2 {
			prefix = parts[1]
		}
		s3src, err := topology.NewS3Source(bucket, prefix)
		if err != nil {
			return nil, fmt.Errorf("building s3 topology source: %w", err)
		}
		src = s3src
	default:
		src = topology.FileSource{Dir: cfg.TopologySource}
	}
	return topology.LoadFromSource(ctx, src, cfg.RingLineIDs)
}

func buildTagger(cfg *config.Config) (ner.Tagger, error) {
	switch cfg.NERBackend {
	case "rpc":
		if cfg.NERRPCURL == "" {
			return nil, errors.New("ner-rpc-url is required when ner-backend=rpc")
		}
		return ner.NewRPCTagger(cfg.NERRPCURL, cfg.NERRPCTimeout), nil
	case "llm":
		if cfg.LLMAPIKey == "" {
			return nil, errors.New("llm-api-key is required when ner-backend=llm")
		}
		llm, err := openai.New(
			openai.WithModel(cfg.LLMModel),
			openai.WithToken(cfg.LLMAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("building llm client: %w", err)
		}
		return ner.NewLLMTagger(llm), nil
	case "rule-based", "":
		return ner.NewRuleBasedTagger(), nil
	default:
		return nil, fmt.Errorf("unrecognized ner-backend %q", cfg.NERBackend)
	}
}

func buildCatalogClient(cfg *config.Config) catalog.Client {
	base := catalog.NewHTTPClient(cfg.BackendURL, cfg.ReportPassword, 10*time.Second)
	cached, err := catalog.NewCachedClient(base)
	if err != nil {
		return base
	}
	return cached
}

func buildLimiter(cfg *config.Config) ratelimit.Limiter {
	if cfg.RedisAddr == "" {
		return ratelimit.NewMemoryLimiter(cfg.RateLimitWindow)
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return ratelimit.NewRedisLimiter(client, cfg.RateLimitWindow)
}

func riskVariant(name string) risk.Variant {
	switch name {
	case "minimal":
		return risk.VariantMinimal
	case "temporal":
		return risk.VariantTemporal
	default:
		return risk.VariantFull
	}
}
