package graingrowth

import "grain-ca/internal/core"

// Parameters implements core.ParameterProvider.
func (w *World) Parameters() core.ParameterSnapshot {
	cfg := w.cfg
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("w", "Width", cfg.Width),
				core.IntParam("h", "Height", cfg.Height),
				core.Int64Param("seed", "Seed", cfg.Seed),
				core.StringParam("topology", "Topology", cfg.Topology.String()),
				core.StringParam("boundary", "Boundary", cfg.Boundary.String()),
				core.IntParam("radius", "Radius", cfg.Radius),
			},
		},
		{
			Name: "Nucleation",
			Params: []core.Parameter{
				core.StringParam("nucleation", "Method", cfg.Nucleation.Method),
				core.IntParam("nuclei", "Nuclei", cfg.Nucleation.Count),
				core.IntParam("nucleus_radius", "Nucleus radius", cfg.Nucleation.Radius),
			},
		},
		{
			Name: "Annealing",
			Params: []core.Parameter{
				core.BoolParam("anneal", "Enabled", cfg.Annealing.Enabled),
				core.FloatParam("kt", "kT", cfg.Annealing.KT),
				core.IntParam("mc_iterations", "Iterations", cfg.Annealing.Iterations),
			},
		},
		{
			Name: "Dislocations",
			Params: []core.Parameter{
				core.BoolParam("dislocations", "Enabled", cfg.Dislocations.Enabled),
				core.FloatParam("disloc_a", "A", cfg.Dislocations.A),
				core.FloatParam("disloc_b", "B", cfg.Dislocations.B),
				core.FloatParam("disloc_duration", "Duration", cfg.Dislocations.Duration),
				core.FloatParam("disloc_dt", "Time step", cfg.Dislocations.Dt),
			},
		},
		{
			Name: "Recrystallization",
			Params: []core.Parameter{
				core.BoolParam("recrystallize", "Enabled", cfg.Recrystallization.Enabled),
				core.FloatParam("critical_density", "Critical density", cfg.CriticalDensity()),
			},
		},
	}

	if w.grid != nil {
		st := w.grid.Stats()
		groups = append(groups, core.ParameterGroup{
			Name: "State",
			Params: []core.Parameter{
				core.StringParam("phase", "Phase", w.phase.String()),
				core.StringParam("view", "View", w.view.String()),
				core.IntParam("generation", "Generation", st.Generation),
				core.IntParam("populated", "Populated", st.Populated),
				core.IntParam("grains", "Grains", st.Grains),
				core.IntParam("recrystallized", "Recrystallized", st.Recrystallized),
				core.FloatParam("mean_density", "Mean density", st.MeanDensity),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}
