// README: Demo CLI; drafts one itinerary from flags and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tripdraft/internal/app"
	"tripdraft/internal/config"
	"tripdraft/internal/modules/trip"
)

type demoFlags struct {
	req     trip.PlanRequest
	pax     int
	budget  float64
	mood    string
	offline bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &demoFlags{}
	cmd := &cobra.Command{
		Use:   "plan_demo",
		Short: "Draft a trip itinerary and print it",
		Example: `  plan_demo --destination Jaipur --start 2024-03-01 --end 2024-03-03
  plan_demo --destination Goa --start 2024-03-01 --end 2024-03-02 --offline`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.req.Origin, "origin", "", "origin city")
	flags.StringVar(&f.req.Destination, "destination", "", "destination city")
	flags.StringVar(&f.req.StartDate, "start", time.Now().Format("2006-01-02"), "start date (YYYY-MM-DD)")
	flags.StringVar(&f.req.EndDate, "end", time.Now().Format("2006-01-02"), "end date (YYYY-MM-DD)")
	flags.IntVar(&f.pax, "pax", trip.DefaultPax, "party size")
	flags.Float64Var(&f.budget, "budget", trip.DefaultBudget, "budget ceiling in INR")
	flags.StringVar(&f.mood, "mood", "balanced", "mood name or 0..1 slider value")
	flags.StringSliceVar(&f.req.Themes, "theme", nil, "interest themes (repeatable)")
	flags.BoolVar(&f.offline, "offline", false, "skip generation and maps; print the fallback itinerary")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}

func run(cmd *cobra.Command, f *demoFlags) error {
	v := viper.New()
	v.Set("store.backend", config.StoreMemory)
	v.Set("redis.addr", "")
	v.Set("auth.enabled", false)
	if f.offline {
		v.Set("ai.gemini_key", "")
		v.Set("ai.openai_key", "")
		v.Set("maps.api_key", "")
	}
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return err
	}

	f.req.Pax = &f.pax
	f.req.Budget = &f.budget
	f.req.Mood = f.mood
	prefs, err := f.req.Preferences()
	if err != nil {
		return err
	}

	logger := app.NewLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.AI.Timeout+2*cfg.Maps.Timeout)
	defer cancel()

	a, err := app.Build(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Planner.Plan(ctx, prefs, "")
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
