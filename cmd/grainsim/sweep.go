package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"grain-ca/internal/sims/graingrowth"
)

var (
	sweepRuns    int
	sweepWorkers int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the scenario over consecutive seeds in parallel",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadScenario()
		if err != nil {
			return err
		}
		start := time.Now()
		results, err := sweepSeeds(cmd.Context(), cfg, sweepRuns, sweepWorkers)
		if err != nil {
			return err
		}
		writeTable(cmd.OutOrStdout(), results)
		logrus.WithFields(logrus.Fields{
			"runs":    len(results),
			"elapsed": time.Since(start).Round(time.Millisecond),
		}).Info("sweep finished")
		return nil
	},
}

func init() {
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "number of seeds to run, starting at the scenario seed")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", runtime.NumCPU(), "number of scenarios run at once")
}

// sweepSeeds runs cfg for seeds cfg.Seed .. cfg.Seed+runs-1, each on its own
// grid, and returns the results ordered by seed. The first failure cancels
// the remaining runs.
func sweepSeeds(ctx context.Context, cfg graingrowth.Config, runs, workers int) ([]result, error) {
	if runs < 1 {
		return nil, fmt.Errorf("runs must be positive, got %d", runs)
	}
	if workers < 1 {
		workers = 1
	}
	results := make([]result, runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < runs; i++ {
		i := i
		g.Go(func() error {
			c := cfg
			c.Seed = cfg.Seed + int64(i)
			res, _, err := runScenario(ctx, c)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(a, b int) bool { return results[a].Seed < results[b].Seed })
	return results, nil
}

func writeTable(out io.Writer, results []result) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "seed\tnuclei\tgenerations\tgrains\trecrystallized\tmean density\telapsed")
	for _, r := range results {
		s := r.Stats
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.1f%%\t%.4g\t%s\n",
			r.Seed, r.Nuclei, s.Generation, s.Grains,
			percent(s.Recrystallized, s.Cells), s.MeanDensity, r.Elapsed.Round(time.Millisecond))
	}
	tw.Flush()
}
