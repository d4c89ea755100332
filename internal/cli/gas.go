package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/decoplan/deco"
	"github.com/katalvlaran/decoplan/gas"
)

func init() {
	cmd := &cobra.Command{
		Use:   "gas",
		Short: "Operating limits of a breathing gas",
		Args:  cobra.NoArgs,
		RunE:  runGas,
	}

	gasFlags(cmd)
	cmd.Flags().Float64("depth", 0, "Depth for END and work of breathing")
	cmd.Flags().Bool("metric", false, "Depths in metres of sea water")
	cmd.Flags().Bool("oxygen-narcotic", false, "Count oxygen as narcotic for END")
	cmd.Flags().Float64("end-threshold", deco.DefaultAlarmThreshold, "END alarm threshold")
	cmd.Flags().Float64("wob-threshold", deco.DefaultAlarmThreshold, "Work-of-breathing alarm threshold")

	RootCmd.AddCommand(cmd)
}

// gasFlags registers the flags read by readGas.
func gasFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("o2", gas.O2InAir, "Oxygen fraction")
	cmd.Flags().Float64("he", 0, "Helium fraction")
	cmd.Flags().Float64("max-po2", gas.DefaultMaxPO2, "Open-circuit working PO2 limit")
	cmd.Flags().Bool("cc", false, "Closed-circuit diluent")
}

func readGas(cmd *cobra.Command) (gas.Gas, error) {
	o2, _ := cmd.Flags().GetFloat64("o2")
	he, _ := cmd.Flags().GetFloat64("he")
	maxPO2, _ := cmd.Flags().GetFloat64("max-po2")
	cc, _ := cmd.Flags().GetBool("cc")

	opt := gas.WithMaxPO2(maxPO2)
	if cc {
		opt = gas.WithClosedCircuit()
	}
	g, err := gas.New(o2, he, opt)
	if err != nil {
		return gas.Gas{}, fmt.Errorf("gas: %w", err)
	}

	return g, nil
}

type gasView struct {
	Name          string   `json:"name"`
	Circuit       string   `json:"circuit"`
	MOD           *float64 `json:"mod,omitempty"`
	Hypoxic       *float64 `json:"hypoxic_above,omitempty"`
	Depth         float64  `json:"depth"`
	END           float64  `json:"end"`
	WOB           float64  `json:"wob"`
	ENDAlarmDepth *float64 `json:"end_alarm_depth,omitempty"`
	WOBAlarmDepth *float64 `json:"wob_alarm_depth,omitempty"`
	Units         string   `json:"units"`
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}

	return &v
}

func runGas(cmd *cobra.Command, args []string) error {
	g, err := readGas(cmd)
	if err != nil {
		return err
	}
	depth, _ := cmd.Flags().GetFloat64("depth")
	metric, _ := cmd.Flags().GetBool("metric")
	narc, _ := cmd.Flags().GetBool("oxygen-narcotic")
	endT, _ := cmd.Flags().GetFloat64("end-threshold")
	wobT, _ := cmd.Flags().GetFloat64("wob-threshold")

	u, unit := gas.Imperial, "ft"
	if metric {
		u, unit = gas.Metric, "m"
	}

	v := gasView{
		Name:          g.Name,
		Circuit:       g.Circuit.String(),
		MOD:           optional(g.MOD(u)),
		Hypoxic:       optional(g.HypoxicThreshold(u)),
		Depth:         depth,
		END:           round1(g.END(depth, u, narc)),
		WOB:           round1(g.WOB(depth, u)),
		ENDAlarmDepth: optional(g.ENDAlarmDepth(endT, u, narc)),
		WOBAlarmDepth: optional(g.WOBAlarmDepth(wobT, u)),
		Units:         unit,
	}

	w := cmd.OutOrStdout()
	if jsonFlag {
		return writeJSON(w, v)
	}
	st := newStyles(w)
	fmt.Fprintln(w, st.title.Render(fmt.Sprintf("%s (%s)", v.Name, v.Circuit)))
	if v.MOD != nil {
		fmt.Fprintf(w, "  MOD %.0f %s at PO2 %.2f\n", *v.MOD, unit, g.MaxPO2)
	}
	if v.Hypoxic != nil {
		fmt.Fprintf(w, "  hypoxic shallower than %.0f %s\n", *v.Hypoxic, unit)
	}
	fmt.Fprintf(w, "  at %.0f %s: END %.0f %s  WOB %.1f\n", depth, unit, v.END, unit, v.WOB)
	if v.ENDAlarmDepth != nil {
		fmt.Fprintf(w, "  END reaches %.0f %s at %.0f %s\n", endT, unit, *v.ENDAlarmDepth, unit)
	}
	if v.WOBAlarmDepth != nil {
		fmt.Fprintf(w, "  WOB reaches %.0f at %.0f %s\n", wobT, *v.WOBAlarmDepth, unit)
	}

	return nil
}
