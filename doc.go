// Package decoplan is a Bühlmann ZHL-16C decompression planner with
// gradient factors.
//
// What is in the box?
//
//	• Tissue model: 17 nitrogen and helium compartments, Schreiner loading
//	• Limits: M-values, gradient-factor ceilings, standard stop depths
//	• No-decompression limits by incremental search
//	• Staged ascents with automatic decompression gas selection
//	• Oxygen toxicity: CNS clock, single-dive and daily OTU
//	• Gas planning: MOD, END, hypoxic threshold, work of breathing, tanks
//	• Multi-dive plans with surface intervals, read from YAML
//
// Everything is organized in subpackages:
//
//	tissue/      — compartment table and tissue tensions
//	gas/         — breathing gases and their depth limits
//	toxicity/    — oxygen partial pressure and exposure accounting
//	consumption/ — breathing rates and cylinder arithmetic
//	deco/        — loading, ceilings, NDL and ascent planning
//	profile/     — multi-dive plans, alarms and totals
//	config/      — YAML plan files with environment overrides
//	cmd/decoplan — command-line front end
//
// Quick example:
//
//	e := deco.Default()
//	s := deco.DefaultSettings()
//	st, _ := tissue.NewState(s.Altitude.InitialPressure())
//	r, _ := e.LoadSegment(st, 0, deco.Segment{Depth: 130, Duration: 25 * time.Minute, Gas: gas.Air()}, gas.Air(), s)
//	plan, _ := e.Plan(deco.Bottom{State: r.State, Depth: 130, Gas: gas.Air()}, []gas.Gas{gas.Air()}, s)
//
// A planner is a tool for preparation, not a substitute for training or a dive computer.
package decoplan
