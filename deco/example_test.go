package deco_test

import (
	"fmt"
	"time"

	"github.com/katalvlaran/decoplan/deco"
	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/tissue"
)

// ExampleGradientFactor shows the GF ramp between a 60 ft first stop and the surface.
func ExampleGradientFactor() {
	s := deco.DefaultSettings()
	for _, d := range []float64{60, 40, 20, 0} {
		fmt.Printf("%2.0f ft: GF %.2f\n", d, deco.GradientFactor(d, 60, s))
	}
	// Output:
	// 60 ft: GF 0.30
	// 40 ft: GF 0.48
	// 20 ft: GF 0.67
	//  0 ft: GF 0.85
}

// ExampleEngine_NextStopDepth rounds ceilings to stop depths.
func ExampleEngine_NextStopDepth() {
	e := deco.Default()
	for _, c := range []float64{0, 12, 33.2} {
		fmt.Printf("ceiling %.1f -> stop %.0f\n", c, e.NextStopDepth(c, deco.LastStop20))
	}
	// Output:
	// ceiling 0.0 -> stop 0
	// ceiling 12.0 -> stop 20
	// ceiling 33.2 -> stop 40
}

// ExampleEngine_Plan plans the ascent from a 130 ft air dive with a nitrox
// deco gas.
func ExampleEngine_Plan() {
	e := deco.Default()
	s := deco.DefaultSettings()
	pInit := s.Altitude.InitialPressure()

	st, _ := tissue.NewState(pInit)
	st, _ = e.Load(st, 0, 130, 2*time.Minute+10*time.Second, gas.Air(), pInit, false)
	st, _ = e.Load(st, 130, 130, 25*time.Minute, gas.Air(), pInit, false)

	nx50, _ := gas.Nitrox(0.50, gas.WithMaxPO2(1.6))
	plan, err := e.Plan(deco.Bottom{State: st, Depth: 130, Gas: gas.Air()}, []gas.Gas{gas.Air(), nx50}, s)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for _, stop := range plan.Stops {
		fmt.Printf("%3.0f ft %3d min %s\n", stop.Depth, stop.Minutes, stop.Gas.Name)
	}
	fmt.Println("time to surface:", plan.Ascent.Round(time.Minute))
}
