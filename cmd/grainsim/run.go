package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"grain-ca/internal/grain"
	"grain-ca/internal/sims/graingrowth"
)

var (
	timeout   time.Duration
	showTrace bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scenario through every enabled phase",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadScenario()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		logrus.WithFields(logrus.Fields{
			"size":     fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
			"topology": cfg.Topology.String(),
			"boundary": cfg.Boundary.String(),
			"seed":     cfg.Seed,
		}).Info("starting scenario")

		res, trace, err := runScenario(ctx, cfg)
		if err != nil {
			return err
		}
		writeSummary(cmd.OutOrStdout(), res)
		if showTrace {
			writeTrace(cmd.OutOrStdout(), trace)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the run after this long (0 disables)")
	runCmd.Flags().BoolVar(&showTrace, "trace", false, "print the dislocation pool samples")
}

// result summarizes one finished scenario.
type result struct {
	Seed    int64
	Nuclei  int
	Stats   grain.Stats
	Elapsed time.Duration
}

// runScenario drives a fresh world to completion.
func runScenario(ctx context.Context, cfg graingrowth.Config) (result, []grain.PoolSample, error) {
	start := time.Now()
	w, err := graingrowth.New(cfg)
	if err != nil {
		return result{}, nil, err
	}
	if err := w.Run(ctx); err != nil {
		return result{}, nil, fmt.Errorf("seed %d: %w", cfg.Seed, err)
	}
	res := result{
		Seed:    cfg.Seed,
		Nuclei:  w.Nuclei(),
		Stats:   w.Grid().Stats(),
		Elapsed: time.Since(start),
	}
	logrus.WithFields(logrus.Fields{
		"seed":           res.Seed,
		"generations":    res.Stats.Generation,
		"grains":         res.Stats.Grains,
		"recrystallized": res.Stats.Recrystallized,
		"elapsed":        res.Elapsed.Round(time.Millisecond),
	}).Info("scenario finished")
	return res, w.PoolTrace(), nil
}

func writeSummary(out io.Writer, r result) {
	s := r.Stats
	fmt.Fprintf(out, "seed            %d\n", r.Seed)
	fmt.Fprintf(out, "nuclei          %d\n", r.Nuclei)
	fmt.Fprintf(out, "generations     %d\n", s.Generation)
	fmt.Fprintf(out, "cells           %d (%d populated)\n", s.Cells, s.Populated)
	fmt.Fprintf(out, "grains          %d\n", s.Grains)
	fmt.Fprintf(out, "boundary cells  %d\n", s.BoundaryCells)
	fmt.Fprintf(out, "recrystallized  %d (%.1f%%)\n", s.Recrystallized, percent(s.Recrystallized, s.Cells))
	fmt.Fprintf(out, "density         mean %.4g, max %.4g\n", s.MeanDensity, s.MaxDensity)
	fmt.Fprintf(out, "elapsed         %s\n", r.Elapsed.Round(time.Millisecond))
}

func writeTrace(out io.Writer, samples []grain.PoolSample) {
	fmt.Fprintln(out, "\nt\tpool")
	for _, s := range samples {
		fmt.Fprintf(out, "%.4f\t%.6g\n", s.Time, s.Pool)
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

