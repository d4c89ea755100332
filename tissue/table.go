package tissue

import "fmt"

// Compartments is the number of tissue pools in ZHL-16C.
const Compartments = 17

// AirN2 is the nitrogen fraction used to saturate a fresh State.
const AirN2 = 0.79

// degenerate is the tension total below which a compartment is treated as empty.
const degenerate = 1e-6

// Compartment holds the constants of one tissue pool. Half-times are in
// minutes, a coefficients in fsw, b coefficients are dimensionless.
type Compartment struct {
	Index int

	N2HalfTime        float64
	N2SurfaceHalfTime float64
	N2A               float64
	N2B               float64

	HeHalfTime        float64
	HeSurfaceHalfTime float64
	HeA               float64
	HeB               float64
}

var (
	n2HalfTimes = [Compartments]float64{5.77, 7.22, 11.5, 18.0, 26.7, 39.0, 55.3, 78.4, 111, 157, 211, 270, 345, 440, 563, 719, 916}
	n2Surface   = [Compartments]float64{86.6, 86.6, 86.6, 86.6, 86.6, 86.6, 86.6, 86.6, 111, 157, 211, 270, 345, 440, 563, 719, 916}
	heHalfTimes = [Compartments]float64{2.18, 2.71, 4.36, 6.81, 10.1, 14.7, 20.9, 29.6, 42.0, 59.5, 79.6, 102, 130, 166, 213, 272, 346}
	heSurface   = [Compartments]float64{32.7, 32.7, 32.7, 32.7, 32.7, 32.7, 32.7, 32.7, 42.0, 59.5, 79.6, 102, 130, 166, 213, 272, 346}
	n2A         = [Compartments]float64{41.0, 38.1, 32.6, 28.1, 24.6, 20.2, 16.4, 14.4, 13.0, 11.0, 10.0, 9.1, 8.2, 7.5, 6.8, 6.1, 5.6}
	heA         = [Compartments]float64{56.7, 52.7, 45.0, 38.8, 34.1, 30.0, 26.7, 23.8, 21.2, 19.4, 18.1, 17.4, 16.9, 16.9, 16.9, 16.8, 16.7}
	n2B         = [Compartments]float64{0.505, 0.558, 0.651, 0.722, 0.783, 0.813, 0.843, 0.869, 0.891, 0.909, 0.922, 0.932, 0.94, 0.948, 0.954, 0.96, 0.965}
	heB         = [Compartments]float64{0.425, 0.477, 0.575, 0.653, 0.722, 0.758, 0.796, 0.828, 0.855, 0.876, 0.89, 0.9, 0.907, 0.912, 0.917, 0.922, 0.927}
)

// table is assembled once at package init and only ever copied out.
var table = buildTable()

func buildTable() [Compartments]Compartment {
	var t [Compartments]Compartment
	for i := 0; i < Compartments; i++ {
		t[i] = Compartment{
			Index:             i,
			N2HalfTime:        n2HalfTimes[i],
			N2SurfaceHalfTime: n2Surface[i],
			N2A:               n2A[i],
			N2B:               n2B[i],
			HeHalfTime:        heHalfTimes[i],
			HeSurfaceHalfTime: heSurface[i],
			HeA:               heA[i],
			HeB:               heB[i],
		}
	}

	return t
}

// Table returns a copy of the full compartment table.
//
// Complexity: O(1), the array is copied by value.
func Table() [Compartments]Compartment {
	return table
}

// At returns the compartment with the given index.
func At(i int) (Compartment, error) {
	if i < 0 || i >= Compartments {
		return Compartment{}, fmt.Errorf("%w: %d", ErrIndex, i)
	}

	return table[i], nil
}

// Mix returns the coefficients a and b for the current loading, weighting the
// nitrogen and helium values by their tensions. When the combined tension is
// negligible the coefficients of whichever gas is present are used, falling
// back to nitrogen.
func (c Compartment) Mix(pN2, pHe float64) (a, b float64) {
	total := pN2 + pHe
	if total <= degenerate {
		if pN2 > degenerate || pHe <= degenerate {
			return c.N2A, c.N2B
		}

		return c.HeA, c.HeB
	}

	a = (c.N2A*pN2 + c.HeA*pHe) / total
	b = (c.N2B*pN2 + c.HeB*pHe) / total

	return a, b
}
