// Package config loads the environment-provided configuration named in
// spec.md §6, following the teacher's cmd/main.go idiom: flag.String(name,
// default, "... can also be set via X env var") with an explicit
// flag-then-env-then-default precedence.
package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config holds every environment-provided and tunable setting from §6.
type Config struct {
	BackendURL        string
	NLPBotToken       string
	ChatChannelID     string
	ReportPassword    string
	RestartPassword   string
	TelemetryDSN      string
	MiniAppPublicURL  string
	TopologySource    string // local dir, or s3://bucket/prefix

	HTTPAddr string

	RingLineIDs      []string
	FuzzyThreshold   float64
	RateLimitWindow  time.Duration
	RiskEngineVariant string // "minimal" | "temporal" | "full"

	NERBackend   string // "rule-based" | "rpc" | "llm" — see §9
	NERRPCURL    string
	NERRPCTimeout time.Duration
	LLMAPIKey    string
	LLMModel     string

	RedisAddr   string // empty means use the in-process rate limiter
	WorkerCount int

	LogLevel string
	Pretty   bool
}

// Load parses CLI flags with environment-variable fallback, matching the
// teacher's precedence (explicit flag wins, then env var, then default).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("sichtungskern", flag.ContinueOnError)

	cfg := &Config{}
	fs.StringVar(&cfg.BackendURL, "backend-url", envOr("BACKEND_URL", "http://localhost:8000"), "backend catalog base URL (env BACKEND_URL)")
	fs.StringVar(&cfg.NLPBotToken, "bot-token", envOr("NLP_BOT_TOKEN", ""), "chat bot token (env NLP_BOT_TOKEN)")
	fs.StringVar(&cfg.ChatChannelID, "chat-channel-id", envOr("CHAT_CHANNEL_ID", ""), "chat channel id to notify (env CHAT_CHANNEL_ID)")
	fs.StringVar(&cfg.ReportPassword, "report-password", envOr("REPORT_PASSWORD", ""), "password required on X-Password for /report-inspector (env REPORT_PASSWORD)")
	fs.StringVar(&cfg.RestartPassword, "restart-password", envOr("RESTART_PASSWORD", ""), "password required to trigger a restart (env RESTART_PASSWORD)")
	fs.StringVar(&cfg.TelemetryDSN, "telemetry-dsn", envOr("TELEMETRY_DSN", ""), "optional telemetry DSN (env TELEMETRY_DSN)")
	fs.StringVar(&cfg.MiniAppPublicURL, "mini-app-url", envOr("MINI_APP_PUBLIC_URL", ""), "public URL of the mini-app (env MINI_APP_PUBLIC_URL)")
	fs.StringVar(&cfg.TopologySource, "topology-source", envOr("TOPOLOGY_SOURCE", "./testdata/topology"), "directory or s3://bucket/prefix holding lines.json/stations.json/synonyms.json")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", envOr("HTTP_ADDR", ":8080"), "HTTP server address")
	fs.Float64Var(&cfg.FuzzyThreshold, "fuzzy-threshold", envOrFloat("FUZZY_MATCH_THRESHOLD", 75), "minimum token-ratio score (0-100) for a station fuzzy match; parsed but not read by the extractor, which uses a fixed cutoff of 75")
	fs.DurationVar(&cfg.RateLimitWindow, "rate-limit-window", envOrDuration("RATE_LIMIT_MINUTES", 5*time.Minute), "minimum time between chat notifications on the same channel")
	fs.StringVar(&cfg.RiskEngineVariant, "risk-engine-variant", envOr("RISK_ENGINE_VARIANT", "full"), "risk engine variant: full (default), temporal, or minimal — see spec.md §9")
	fs.StringVar(&cfg.NERBackend, "ner-backend", envOr("NER_BACKEND", "rule-based"), "station tagger backend: rule-based (default), rpc, or llm — see spec.md §9")
	fs.StringVar(&cfg.NERRPCURL, "ner-rpc-url", envOr("NER_RPC_URL", ""), "endpoint for the rpc NER backend (env NER_RPC_URL)")
	fs.DurationVar(&cfg.NERRPCTimeout, "ner-rpc-timeout", envOrSeconds("NER_RPC_TIMEOUT_SECONDS", 2*time.Second), "per-call deadline for the rpc NER backend")
	fs.StringVar(&cfg.LLMAPIKey, "llm-api-key", envOr("LLM_API_KEY", ""), "API key for the llm NER backend (env LLM_API_KEY)")
	fs.StringVar(&cfg.LLMModel, "llm-model", envOr("LLM_MODEL", "gpt-4o-mini"), "model name for the llm NER backend")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", envOr("REDIS_ADDR", ""), "redis address for distributed rate limiting; empty uses an in-process limiter (env REDIS_ADDR)")
	fs.IntVar(&cfg.WorkerCount, "workers", int(envOrFloat("WORKER_COUNT", 4)), "number of concurrent chat pipeline workers")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr("LOG_LEVEL", "info"), "log level")
	fs.BoolVar(&cfg.Pretty, "pretty-logs", os.Getenv("PRETTY_LOGS") == "true", "use human-readable console log output")

	ringEnv := envOr("RING_LINE_IDS", "S41,S42")
	var ringFlag string
	fs.StringVar(&ringFlag, "ring-line-ids", ringEnv, "comma-separated ring line ids (§3)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.RingLineIDs = splitNonEmpty(ringFlag, ',')

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envOrFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envOrDuration(minutesKey string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(minutesKey); ok {
		if m, err := strconv.Atoi(v); err == nil {
			return time.Duration(m) * time.Minute
		}
	}
	return fallback
}

func envOrSeconds(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if s, err := strconv.Atoi(v); err == nil {
			return time.Duration(s) * time.Second
		}
	}
	return fallback
}

func splitNonEmpty(s string, sep rune) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == sep {
			if cur != "" {
				out = append(out, cur)
			}
			cur = ""
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
