// Package gas describes breathing gases and the physical depth limits derived
// from them.
//
// A Gas is an immutable value built by New, which rejects impossible mixes at
// construction time. Nitrogen is the remainder after oxygen and helium.
//
// Properties (all depths in the chosen Units):
//   - MOD              deepest depth where PO2 stays within the gas's max PO2
//   - END              equivalent narcotic depth at a given depth
//   - ENDAlarmDepth    depth where END reaches a target
//   - HypoxicThreshold shallowest depth where the mix carries 0.21 ATA of O2
//   - WOB              gas-density (work of breathing) equivalent depth
//   - WOBAlarmDepth    depth where WOB reaches a target
package gas
