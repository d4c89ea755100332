// Package tissue holds the ZHL-16C compartment table and the inert-gas
// tension snapshot that every decompression calculation starts from.
//
// 🚀 What is a tissue compartment?
//
//	The Bühlmann model abstracts the body as 17 parallel gas pools. Each pool
//	on-gasses and off-gasses nitrogen and helium exponentially with its own
//	half-time, and tolerates a maximum tension (the M-value) described by a
//	pair of coefficients a and b per gas.
//
// ✨ Key features:
//   - fixed 17-row table (index 0 fastest, 16 slowest), built once
//   - State is a plain value: two [17]float64 arrays, copied on assignment
//   - tension-weighted mixed a/b coefficients for trimix loadings
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/decoplan/tissue"
//
//	s, err := tissue.NewState(33.0) // saturated on air at sea level
//	c := tissue.Table()[4]
//	a, b := c.Mix(s.N2[4], s.He[4])
//
// Pressures are in feet-of-seawater (fsw) units throughout.
package tissue
