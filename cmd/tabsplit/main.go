package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/config"
	"github.com/mmynk/tabsplit/internal/draft"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/scheduler"
	"github.com/mmynk/tabsplit/internal/service"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/internal/storage/memory"
	"github.com/mmynk/tabsplit/internal/storage/sqlite"
	"github.com/mmynk/tabsplit/internal/tabs"
	"github.com/mmynk/tabsplit/pkg/logging"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file to load")
	demo := flag.Bool("demo", false, "record a sample outing before printing")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if err := run(cfg, *demo); err != nil {
		slog.Error("tabsplit failed", "error", err)
		os.Exit(1)
	}
}

// run wires the store and service and prints the tab lists. Deferred
// cleanup finishes before main exits.
func run(cfg *config.Config, demo bool) error {
	blobs, err := openBlobStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.Backend, err)
	}
	defer blobs.Close()
	slog.Info("Storage initialized", "backend", cfg.Backend, "database", cfg.DBPath)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	sched := scheduler.New(slog.Default())
	defer sched.Stop()

	ctx := context.Background()
	store := tabs.New(ctx, blobs,
		tabs.WithKey(cfg.StoreKey),
		tabs.WithMetrics(m),
		tabs.WithCanceller(sched),
	)
	svc := service.NewOutingService(store, sched, service.Config{
		SettleDelay: cfg.SettleDelay,
		ToastDelay:  cfg.ToastDelay,
		Toast: func(message string, visible bool) {
			if visible {
				slog.Info("Toast", "message", message)
			}
		},
	})

	if demo {
		if err := recordDemoOuting(ctx, svc); err != nil {
			return fmt.Errorf("failed to record demo outing: %w", err)
		}
	}

	printTabs(os.Stdout, "Active", store.ByMonth(false))
	printTabs(os.Stdout, "Settled", store.ByMonth(true))
	printSummary(os.Stdout, svc.Summary())

	logMetrics(reg)
	return nil
}

func openBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.Backend == config.BackendMemory {
		return memory.New(), nil
	}
	return sqlite.New(cfg.DBPath)
}

// recordDemoOuting saves a three-way dinner paid by the user.
func recordDemoOuting(ctx context.Context, svc *service.OutingService) error {
	d := draft.New()
	d.LocationName = "Nopa"
	d.SetIcon("fork.knife")
	d.AddFriend("Sam", "sam@example.com")
	d.AddFriend("Lee", "")

	tab, err := svc.SaveEqualSplit(ctx, d, calculator.BillInput{Bill: "75", Tax: "6", TipPercent: "12"}, d.Friends[0].ID)
	if err != nil {
		return err
	}
	slog.Info("Demo outing recorded", "tab_id", tab.ID, "total", tab.TotalAmount)
	return nil
}

func printTabs(w io.Writer, title string, groups []tabs.MonthGroup) {
	fmt.Fprintf(w, "%s tabs\n", title)
	if len(groups) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "  %s\n", g.Label())
		for _, tab := range g.Tabs {
			fmt.Fprintf(w, "    %-24s %s  $%.2f\n", tab.RestaurantName, tab.Date.Format(time.DateOnly), tab.TotalAmount)
			for _, f := range tab.Friends {
				if f.OwesAmount > 0 {
					fmt.Fprintf(w, "      %-20s $%.2f\n", f.DisplayName(), f.OwesAmount)
				}
			}
		}
	}
}

func printSummary(w io.Writer, s calculator.Summary) {
	fmt.Fprintf(w, "Owed to you: $%.2f\n", s.OwedToYou)
	if s.YouOwe > 0 {
		fmt.Fprintf(w, "You owe:     $%.2f\n", s.YouOwe)
	}
	for _, b := range s.Balances {
		fmt.Fprintf(w, "  %-20s $%.2f across %d tab(s)\n", b.Name, b.Owes, len(b.TabIDs))
	}
}

// logMetrics writes the store counters at debug level.
func logMetrics(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		slog.Warn("Failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			var value float64
			switch {
			case metric.GetCounter() != nil:
				value = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				value = metric.GetGauge().GetValue()
			}
			attrs := []any{"name", mf.GetName(), "value", value}
			for _, lp := range metric.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			slog.Debug("Metric", attrs...)
		}
	}
}
