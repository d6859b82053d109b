package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/models"
	"github.com/noah-isme/pbis-gateway/pkg/config"
	"github.com/noah-isme/pbis-gateway/pkg/pbisapi"
)

// probe is one read-only call against the PBIS API. Critical probes back
// pages that cannot render without them.
type probe struct {
	Name     string
	Critical bool
	Run      func(ctx context.Context, c *pbisapi.Client) error
}

type result struct {
	Probe    probe
	Err      error
	Duration time.Duration
}

func main() {
	var (
		base    string
		timeout time.Duration
		month   int
		days    int
		only    string
	)

	flag.StringVar(&base, "base", config.DefaultUpstreamURL, "PBIS API base URL")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "per-probe timeout")
	flag.IntVar(&month, "month", int(time.Now().Month()), "CICO month to probe (3-12)")
	flag.IntVar(&days, "days", 28, "trailing window for analytics probes")
	flag.StringVar(&only, "only", "", "comma separated probe names to run")
	flag.Parse()

	if month < 3 || month > 12 {
		log.Fatalf("month must be between 3 and 12, got %d", month)
	}

	client := pbisapi.New(config.UpstreamConfig{BaseURL: strings.TrimRight(base, "/")}, zap.NewNop())
	today := time.Now()
	window := models.DateRange{
		Start: today.AddDate(0, 0, -days).Format(models.DateLayout),
		End:   today.Format(models.DateLayout),
	}

	results := runProbes(context.Background(), client, selectProbes(defaultProbes(window, month, today.Year()), only), timeout)
	printReport(client.BaseURL(), results)

	if failed := criticalFailures(results); failed > 0 {
		fmt.Printf("Critical failures: %d\n", failed)
		os.Exit(1)
	}
}

func defaultProbes(window models.DateRange, month, year int) []probe {
	return []probe{
		{Name: "health", Critical: true, Run: func(ctx context.Context, c *pbisapi.Client) error {
			return c.Ping(ctx)
		}},
		{Name: "dashboard", Critical: true, Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.Dashboard(ctx, window)
			return err
		}},
		{Name: "tier-status", Critical: true, Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.TierStatus(ctx)
			return err
		}},
		{Name: "roster", Critical: true, Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.Roster(ctx)
			return err
		}},
		{Name: "roster-codes", Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.RosterCodes(ctx)
			return err
		}},
		{Name: "cico-monthly", Critical: true, Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.CICOMonthly(ctx, month)
			return err
		}},
		{Name: "business-days", Critical: true, Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.BusinessDays(ctx, year, month)
			return err
		}},
		{Name: "tier2-cards", Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.CICORecords(ctx, models.CICORecordFilter{StartDate: window.Start, EndDate: window.End})
			return err
		}},
		{Name: "holidays", Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.ListHolidays(ctx)
			return err
		}},
		{Name: "board", Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.BoardPosts(ctx)
			return err
		}},
		{Name: "meeting-notes", Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.MeetingNotes(ctx, models.MeetingNoteFilter{StartDate: window.Start, EndDate: window.End})
			return err
		}},
		{Name: "meeting-analysis", Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.MeetingAnalysis(ctx, window)
			return err
		}},
		{Name: "tier3-report", Run: func(ctx context.Context, c *pbisapi.Client) error {
			_, err := c.Tier3Report(ctx, window)
			return err
		}},
	}
}

func selectProbes(all []probe, only string) []probe {
	if strings.TrimSpace(only) == "" {
		return all
	}
	wanted := make(map[string]bool)
	for _, name := range strings.Split(only, ",") {
		if name = strings.TrimSpace(name); name != "" {
			wanted[name] = true
		}
	}
	selected := make([]probe, 0, len(wanted))
	for _, p := range all {
		if wanted[p.Name] {
			selected = append(selected, p)
		}
	}
	return selected
}

func runProbes(ctx context.Context, client *pbisapi.Client, probes []probe, timeout time.Duration) []result {
	results := make([]result, 0, len(probes))
	for _, p := range probes {
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		start := time.Now()
		err := p.Run(probeCtx, client)
		cancel()
		results = append(results, result{Probe: p, Err: err, Duration: time.Since(start)})
	}
	return results
}

func criticalFailures(results []result) int {
	failed := 0
	for _, res := range results {
		if res.Err != nil && res.Probe.Critical {
			failed++
		}
	}
	return failed
}

func printReport(base string, results []result) {
	fmt.Printf("Upstream Probe Report (%s)\n", base)
	fmt.Println("=========================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s (%s) critical=%t\n", status, res.Probe.Name, res.Duration.Round(time.Millisecond), res.Probe.Critical)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
		}
	}
}
