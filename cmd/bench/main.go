// README: Smoke runner for a deployed planner; checks the API, Postgres and Redis and prints a summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	AuthToken      string
	ApplyMigration bool
	Strict         bool
	Timeout        time.Duration
	PlanTimeout    time.Duration
	Concurrency    int
	Duration       time.Duration
}

func main() {
	cfg := parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	counts := map[string]int{}
	for _, r := range NewRunner(cfg).RunAll(ctx) {
		counts[r.Status]++
	}
	fmt.Printf("\n%s=%d %s=%d %s=%d %s=%d\n",
		StatusPass, counts[StatusPass], StatusFail, counts[StatusFail],
		StatusPending, counts[StatusPending], StatusSkip, counts[StatusSkip])

	if counts[StatusFail] > 0 || (cfg.Strict && counts[StatusPending] > 0) {
		os.Exit(1)
	}
}

// parseFlags reads flags whose defaults come from TRIPDRAFT_* variables.
func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", env("TRIPDRAFT_BENCH_BASE_URL", "http://localhost:8080"), "planner API base URL")
	flag.StringVar(&cfg.DSN, "dsn", env("TRIPDRAFT_STORE_DSN", ""), "Postgres DSN; empty skips database checks")
	flag.StringVar(&cfg.RedisAddr, "redis", env("TRIPDRAFT_REDIS_ADDR", ""), "Redis address; empty skips cache checks")
	flag.StringVar(&cfg.AuthToken, "token", env("TRIPDRAFT_BENCH_TOKEN", ""), "Firebase ID token for protected routes")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", envBool("TRIPDRAFT_BENCH_APPLY_MIGRATION"), "run embedded migrations first")
	flag.BoolVar(&cfg.Strict, "strict", envBool("TRIPDRAFT_BENCH_STRICT"), "treat pending checks as failures")
	flag.DurationVar(&cfg.Timeout, "timeout", envDuration("TRIPDRAFT_BENCH_TIMEOUT", 3*time.Minute), "overall deadline")
	flag.DurationVar(&cfg.PlanTimeout, "plan-timeout", envDuration("TRIPDRAFT_BENCH_PLAN_TIMEOUT", 90*time.Second), "per-request HTTP timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", 20, "workers for the load check")
	flag.DurationVar(&cfg.Duration, "duration", 10*time.Second, "length of the load check")
	flag.Parse()

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return cfg
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return def
}
