package gas

import "errors"

var (
	// ErrFraction indicates an O2 or He fraction outside [0,1], O2 of zero, or fO2+fHe > 1.
	ErrFraction = errors.New("gas: invalid gas fractions")

	// ErrMaxPO2 indicates a non-positive max PO2, or a max PO2 set on a closed-circuit gas.
	ErrMaxPO2 = errors.New("gas: invalid max PO2")

	// ErrTank indicates a negative tank capacity or a reserve outside 0..100 %.
	ErrTank = errors.New("gas: invalid tank parameters")
)
