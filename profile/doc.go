// Package profile runs whole dive plans: one or more dives separated by
// surface intervals, each made of segments, followed by a decompression
// ascent.
//
// Run chains the deco engine across the plan. Tissues and oxygen exposure are
// carried from dive to dive. Single-dive OTU decays during surface intervals,
// and CNS% and daily OTU do not. The result per dive reports the NDL at the
// end of the bottom phase, the ascent plan, oxygen dose, gas used per gas and
// any END or work-of-breathing alarms.
package profile
