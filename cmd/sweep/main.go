// Package main runs headless simulations across deposit policies and seeds
// and writes the final stats window of each run to a CSV file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/physarum/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 1800, "Frames per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per policy")
	policies := flag.String("policies", "deferred,immediate", "Comma-separated deposit policies to compare")
	agents := flag.Int("agents", 0, "Override swarm.agents (0 = use config)")
	parallel := flag.Int("parallel", 2, "Runs in flight at once")
	windowSec := flag.Float64("stats-window", 1, "Stats window in seconds")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if *outputDir == "" {
		fmt.Fprintln(os.Stderr, "--output is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	base, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *agents > 0 {
		base.Swarm.Agents = *agents
	}

	policyList := strings.Split(*policies, ",")
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	total := len(policyList) * len(evalSeeds)
	fmt.Printf("Sweeping %d policies x %d seeds, %d ticks per run, %d agents\n",
		len(policyList), len(evalSeeds), *ticks, base.Swarm.Agents)

	var (
		mu      sync.Mutex
		results = make([]RunResult, 0, total)
		done    int
		start   = time.Now()
	)

	var eg errgroup.Group
	eg.SetLimit(max(*parallel, 1))
	for _, policy := range policyList {
		for _, seed := range evalSeeds {
			eg.Go(func() error {
				res, err := runOne(base, strings.TrimSpace(policy), seed, int32(*ticks), *windowSec)
				if err != nil {
					return err
				}

				mu.Lock()
				defer mu.Unlock()
				results = append(results, res)
				done++
				elapsed := time.Since(start)
				remaining := time.Duration(total-done) * (elapsed / time.Duration(done))
				fmt.Printf("Run %d/%d: policy=%s seed=%d coverage=%.3f mass=%.0f | elapsed: %s, ETA: %s\n",
					done, total, res.Policy, res.Seed, res.FieldCoverage, res.FieldMass,
					formatDuration(elapsed), formatDuration(remaining))
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "sweep failed: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(*outputDir, "sweep.csv")
	if err := writeResults(outPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nSweep complete in %s\n", formatDuration(time.Since(start)))
	for _, s := range summarize(results) {
		fmt.Printf("  %-10s coverage %.3f +/- %.3f  turn rate %.3f +/- %.3f\n",
			s.Policy, s.CoverageMean, s.CoverageStd, s.TurnRateMean, s.TurnRateStd)
	}
	fmt.Printf("\nResults saved to: %s\n", outPath)
}

func writeResults(path string, results []RunResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&results, f)
}

// PolicySummary aggregates the runs of one policy.
type PolicySummary struct {
	Policy       string
	Runs         int
	CoverageMean float64
	CoverageStd  float64
	TurnRateMean float64
	TurnRateStd  float64
}

// summarize groups results by policy in first-seen order.
func summarize(results []RunResult) []PolicySummary {
	var order []string
	coverage := make(map[string][]float64)
	turns := make(map[string][]float64)
	for _, r := range results {
		if _, ok := coverage[r.Policy]; !ok {
			order = append(order, r.Policy)
		}
		coverage[r.Policy] = append(coverage[r.Policy], r.FieldCoverage)
		turns[r.Policy] = append(turns[r.Policy], r.TurnRate)
	}

	out := make([]PolicySummary, 0, len(order))
	for _, p := range order {
		s := PolicySummary{Policy: p, Runs: len(coverage[p])}
		s.CoverageMean, s.CoverageStd = stat.PopMeanStdDev(coverage[p], nil)
		s.TurnRateMean, s.TurnRateStd = stat.PopMeanStdDev(turns[p], nil)
		out = append(out, s)
	}
	return out
}
