// README: Smoke cases; environment, migration, planning API and a health-endpoint load check.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"tripdraft/internal/infra"
	"tripdraft/migrations"
)

const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusPending = "PENDING"
	StatusSkip    = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.PlanTimeout},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	validPlan := map[string]any{
		"origin":      "Delhi",
		"destination": "Jaipur",
		"startDate":   time.Now().AddDate(0, 0, 14).Format("2006-01-02"),
		"endDate":     time.Now().AddDate(0, 0, 16).Format("2006-01-02"),
		"pax":         2,
		"budget":      25000,
		"mood":        "cultural",
		"themes":      []string{"forts", "street food"},
	}

	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "DB reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "dsn not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "Redis reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "Apply embedded goose migrations",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: StatusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: StatusFail, Note: "db not configured"}
				}
				n, err := infra.Migrate(ctx, r.db)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass, Note: fmt.Sprintf("applied=%d", n)}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "Every table created by the migrations exists",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(migrations.FS)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: StatusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: StatusPass}
			},
		},

		httpCaseMethod("API: liveness", http.MethodGet, base+"/", nil, []int{200}, nil),
		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),
		{
			Name:  "API: metrics exposed",
			Focus: "Prometheus endpoint carries planner collectors",
			Run: func(ctx context.Context, r *Runner) Result {
				status, body, latency, err := r.do(ctx, http.MethodGet, base+"/metrics", nil)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if status != http.StatusOK || !bytes.Contains(body, []byte("tripdraft_")) {
					return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: StatusPass, Latency: latency}
			},
		},

		// Planning flow
		{
			Name:  "Plan: draft, store and read back",
			Focus: "POST /plan returns tripId and a full draft; GET /api/trips/:id finds it",
			Run: func(ctx context.Context, r *Runner) Result {
				return planRoundTrip(ctx, r, base, validPlan)
			},
		},
		httpCase("Plan: missing dates -> 400", base+"/plan", map[string]any{"destination": "Jaipur"}, []int{400}, []int{401}),
		httpCase("Plan: zero pax -> 400", base+"/plan", map[string]any{
			"destination": "Jaipur",
			"startDate":   "2024-03-01",
			"endDate":     "2024-03-01",
			"pax":         0,
		}, []int{400}, []int{401}),
		httpCaseMethod("Trip: unknown id -> 404", http.MethodGet, base+"/api/trips/00000000-0000-0000-0000-000000000000", nil, []int{404}, []int{401}),

		manualCase("Plan: fallback template with generation disabled", "restart without AI keys and compare against plan_demo --offline"),

		{
			Name:  "Perf: health under load",
			Focus: "Throughput of the cheapest route",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/health")
			},
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, 0, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.AuthToken)
	}

	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	return resp.StatusCode, data, time.Since(start), err
}

type planResponse struct {
	TripID string `json:"tripId"`
	Draft  struct {
		City string `json:"city"`
		Days []struct {
			Date   string            `json:"date"`
			Blocks []json.RawMessage `json:"blocks"`
		} `json:"days"`
		TotalBudget *float64 `json:"total_budget"`
	} `json:"draft"`
}

func planRoundTrip(ctx context.Context, r *Runner, base string, payload map[string]any) Result {
	status, body, latency, err := r.do(ctx, http.MethodPost, base+"/plan", payload)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if status == http.StatusUnauthorized {
		return Result{Status: StatusPending, Latency: latency, Note: "auth enabled; pass -token"}
	}
	if status != http.StatusOK {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
	}

	var res planResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return Result{Status: StatusFail, Latency: latency, Note: "decode: " + err.Error()}
	}
	switch {
	case res.TripID == "":
		return Result{Status: StatusFail, Latency: latency, Note: "missing tripId"}
	case len(res.Draft.Days) != 3:
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("days=%d, want 3", len(res.Draft.Days))}
	case res.Draft.TotalBudget == nil:
		return Result{Status: StatusFail, Latency: latency, Note: "missing total_budget"}
	}

	status, _, _, err = r.do(ctx, http.MethodGet, base+"/api/trips/"+res.TripID, nil)
	if err != nil || status != http.StatusOK {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("read back status=%d err=%v", status, err)}
	}
	return Result{Status: StatusPass, Latency: latency, Note: "trip=" + res.TripID}
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			status, _, latency, err := r.do(ctx, method, url, body)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			note := fmt.Sprintf("status=%d", status)
			if contains(okStatuses, status) {
				return Result{Status: StatusPass, Latency: latency, Note: note}
			}
			if contains(pendingStatuses, status) {
				return Result{Status: StatusPending, Latency: latency, Note: note}
			}
			return Result{Status: StatusFail, Latency: latency, Note: note}
		},
	}
}

func manualCase(name, note string) TestCase {
	return TestCase{
		Name:  name,
		Focus: "Manual",
		Run: func(ctx context.Context, r *Runner) Result {
			return Result{Status: StatusSkip, Note: note}
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, url string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
				resp, err := r.httpc.Do(req)
				mu.Lock()
				if err != nil {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
				if err == nil {
					_, _ = io.Copy(io.Discard, resp.Body)
					resp.Body.Close()
				}
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

var createTableRe = regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)

func extractTables(fsys fs.FS) ([]string, error) {
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	var tables []string
	for _, name := range files {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		up, _, _ := strings.Cut(string(b), "-- +goose Down")
		for _, m := range createTableRe.FindAllStringSubmatch(up, -1) {
			tables = append(tables, m[1])
		}
	}
	return tables, nil
}
