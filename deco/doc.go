// Package deco is the decompression engine: Bühlmann ZHL-16C tissue loading
// with gradient factors, no-decompression limits and staged ascent planning.
//
// 🚀 What does it compute?
//
//	Given a tissue snapshot, a depth and a breathing gas, the engine advances
//	inert-gas tensions with Schreiner-style stepping, derives the ceiling the
//	diver may not ascend above, and plans a sequence of decompression stops,
//	switching to the richest breathable gas on the way up.
//
// ✨ Key features:
//   - 1 s steps in water, 60 s steps on the surface (surface half-times)
//   - gradient factors interpolated from GF-low at the first stop to GF-high
//     at the surface
//   - bounded searches (NDL, stop length, stop cycles) reported explicitly
//     through Status and ErrIncompletePlan rather than silently truncated
//   - per-leg CNS/OTU and gas accounting
//
// ⚙️ Usage:
//
//	e, err := deco.New(deco.DefaultOptions())
//	s := deco.DefaultSettings()
//	st, _ := tissue.NewState(s.Altitude.InitialPressure())
//	st, _ = e.Load(st, 100, 100, 25*time.Minute, gas.Air(), s.Altitude.InitialPressure(), false)
//	plan, err := e.Plan(deco.Bottom{State: st, Depth: 100, Gas: gas.Air()}, gases, s)
//	if errors.Is(err, deco.ErrIncompletePlan) {
//	  // plan.Stops holds what was computed before a search bound was hit
//	}
//
// Units: depths in feet of seawater, pressures in fsw, rates in ft/min,
// consumption in cuft/min.
//
// Every call works on values supplied by the caller, so an Engine may be
// shared between goroutines.
package deco
