// Package toxicity computes oxygen exposure: partial pressure of oxygen, the
// NOAA CNS% clock and oxygen toxicity units (OTU).
//
// Two OTU accumulators are kept apart:
//   - single-dive OTU (ROTS rate), which decays over surface intervals with a
//     90-minute half-life;
//   - daily OTU (ROTD rate), which never decays.
//
// CNS% is accumulated from a 12-point piecewise-linear table and is not decayed.
//
// All functions are pure. Exposure is a value type whose Add returns a new
// Exposure.
package toxicity
