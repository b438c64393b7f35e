package graingrowth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"grain-ca/internal/core"
	"grain-ca/internal/grain"
)

// Phase enumerates the stages a scenario moves through.
type Phase int

const (
	PhaseGrowth Phase = iota
	PhaseAnnealing
	PhaseDislocations
	PhaseRecrystallizationNucleation
	PhaseRecrystallization
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseGrowth:
		return "growth"
	case PhaseAnnealing:
		return "annealing"
	case PhaseDislocations:
		return "dislocations"
	case PhaseRecrystallizationNucleation:
		return "recrystallization nucleation"
	case PhaseRecrystallization:
		return "recrystallization"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// World drives a grain grid through the configured phases, one discrete step
// per Step call.
type World struct {
	cfg  Config
	grid *grain.Grid
	log  logrus.FieldLogger

	phase     Phase
	phaseStep int
	placed    int
	err       error
	pool      *grain.PoolTrace
	view      View
}

// New returns a World built from cfg. The grid stays empty until Reset.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg: cfg,
		log: logrus.WithField("sim", "graingrowth"),
	}
	w.Reset(cfg.Seed)
	if w.err != nil {
		return nil, w.err
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "graingrowth" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Config returns the scenario the world runs.
func (w *World) Config() Config { return w.cfg }

// Grid exposes the underlying grid.
func (w *World) Grid() *grain.Grid { return w.grid }

// Phase returns the current phase.
func (w *World) Phase() Phase { return w.phase }

// Err returns the error that moved the world into PhaseFailed.
func (w *World) Err() error { return w.err }

// Done reports whether further steps are no-ops.
func (w *World) Done() bool { return w.phase == PhaseDone || w.phase == PhaseFailed }

// Nuclei returns the number of nuclei placed by the last Reset.
func (w *World) Nuclei() int { return w.placed }

// PoolTrace returns the pool samples of the last dislocation phase.
func (w *World) PoolTrace() []grain.PoolSample {
	if w.pool == nil {
		return nil
	}
	return w.pool.Samples
}

// Reset rebuilds the grid with the given seed and places the nuclei. A zero
// seed reuses the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.pool = &grain.PoolTrace{}
	w.err = nil
	w.phase = PhaseGrowth
	w.phaseStep = 0
	grid, err := grain.New(w.cfg.Layout(),
		grain.WithSeed(seed),
		grain.WithLogger(w.log),
		grain.WithPoolSink(w.pool),
	)
	if err != nil {
		w.fail(err)
		return
	}
	w.grid = grid
	if err := w.nucleate(); err != nil {
		w.fail(err)
	}
}

func (w *World) nucleate() error {
	n := w.cfg.Nucleation
	switch n.Method {
	case NucleationUniform:
		if err := w.grid.NucleateUniform(n.Columns, n.Rows); err != nil {
			return err
		}
		w.placed = w.grid.PopulatedCount()
	case NucleationRandomRadius:
		placed, err := w.grid.NucleateRandomWithRadius(n.Count, n.Radius)
		if err != nil {
			return err
		}
		w.placed = placed
	default:
		if err := w.grid.NucleateRandom(n.Count); err != nil {
			return err
		}
		w.placed = n.Count
	}
	return nil
}

// PlaceNucleusAt adds a grain at (row, col) while the grid is still growing.
func (w *World) PlaceNucleusAt(row, col int) bool {
	if w.phase != PhaseGrowth || w.grid == nil {
		return false
	}
	if !w.grid.PlaceNucleusAt(row, col) {
		return false
	}
	w.placed++
	return true
}

// Step advances the current phase by one discrete step.
func (w *World) Step() {
	_ = w.StepContext(context.Background())
}

// StepContext is Step with cancellation. Annealing and dislocation spreading
// check ctx between their own iterations; a cancelled step returns the
// context error and leaves the phase in place so a later step redoes it.
// Any other error moves the world into PhaseFailed and is returned.
func (w *World) StepContext(ctx context.Context) error {
	if w.Done() || w.grid == nil {
		return w.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	switch w.phase {
	case PhaseGrowth:
		if w.grid.Evolve() == 0 {
			w.advance()
		}
	case PhaseAnnealing:
		if w.phaseStep >= w.cfg.Annealing.Iterations {
			w.advance()
			return nil
		}
		if err := w.grid.SmoothWithMonteCarlo(ctx, w.cfg.Annealing.KT, 1); err != nil {
			return w.stepError(err)
		}
		w.phaseStep++
	case PhaseDislocations:
		d := w.cfg.Dislocations
		w.pool.Samples = w.pool.Samples[:0]
		if err := w.grid.SpreadDislocations(ctx, d.A, d.B, d.Duration, d.Dt, d.FirstSetPercentage); err != nil {
			return w.stepError(err)
		}
		w.advance()
	case PhaseRecrystallizationNucleation:
		if _, err := w.grid.NucleateRecrystallized(w.cfg.CriticalDensity()); err != nil {
			return w.stepError(err)
		}
		w.advance()
	case PhaseRecrystallization:
		limit := w.cfg.Recrystallization.MaxSteps
		if limit > 0 && w.phaseStep >= limit {
			w.advance()
			return nil
		}
		n, err := w.grid.Recrystallize()
		if err != nil {
			return w.stepError(err)
		}
		w.phaseStep++
		if n == 0 {
			w.advance()
		}
	}
	return nil
}

// Run steps until the world is done or ctx is cancelled, and returns the
// error that stopped it, if any.
func (w *World) Run(ctx context.Context) error {
	for !w.Done() {
		if err := w.StepContext(ctx); err != nil {
			return err
		}
	}
	return w.err
}

// stepError keeps cancellations retryable and fails the world on anything
// else.
func (w *World) stepError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		w.log.WithError(err).WithField("phase", w.phase.String()).Info("step interrupted")
		return err
	}
	w.fail(err)
	return err
}

// advance moves to the next enabled phase.
func (w *World) advance() {
	from := w.phase
	next := w.phase + 1
	for ; next < PhaseDone; next++ {
		if w.enabled(next) {
			break
		}
	}
	w.phase = next
	w.phaseStep = 0
	w.log.WithFields(logrus.Fields{
		"from":      from.String(),
		"to":        next.String(),
		"populated": w.grid.PopulatedCount(),
	}).Info("phase complete")
}

func (w *World) enabled(p Phase) bool {
	switch p {
	case PhaseAnnealing:
		return w.cfg.Annealing.Enabled
	case PhaseDislocations:
		return w.cfg.Dislocations.Enabled
	case PhaseRecrystallizationNucleation, PhaseRecrystallization:
		return w.cfg.Recrystallization.Enabled
	}
	return true
}

func (w *World) fail(err error) {
	w.err = err
	w.phase = PhaseFailed
	w.log.WithError(err).Error("simulation stopped")
}

func init() {
	core.Register("graingrowth", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		if err := c.Validate(); err != nil {
			logrus.WithError(err).Warn("falling back to default grain growth config")
			c = DefaultConfig()
		}
		w, err := New(c)
		if err != nil {
			logrus.WithError(err).Fatal("grain growth setup failed")
		}
		return w
	})
}
