package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/decoplan/toxicity"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tox",
		Short: "Oxygen toxicity of an exposure",
		Long:  "Uses --po2 when given, otherwise the PO2 of the gas flags at --depth (and --setpoint for closed circuit).",
		Args:  cobra.NoArgs,
		RunE:  runTox,
	}

	cmd.Flags().Float64("po2", 0, "Oxygen partial pressure (ATA)")
	cmd.Flags().Float64("minutes", 0, "Exposure time")
	cmd.Flags().Float64("cns", 0, "CNS clock before the exposure (percent)")
	cmd.Flags().Float64("depth", 0, "Depth (fsw) used when --po2 is not set")
	cmd.Flags().Float64("setpoint", 1.3, "Closed-circuit setpoint (ATA)")
	gasFlags(cmd)

	RootCmd.AddCommand(cmd)
}

type toxView struct {
	PO2           float64  `json:"po2"`
	CNSRate       float64  `json:"cns_rate_pct_min"`
	CNS           float64  `json:"cns_pct"`
	OTU           float64  `json:"otu"`
	DailyOTU      float64  `json:"daily_otu"`
	TimeRemaining *float64 `json:"time_remaining_min,omitempty"`
}

func runTox(cmd *cobra.Command, args []string) error {
	po2, _ := cmd.Flags().GetFloat64("po2")
	minutes, _ := cmd.Flags().GetFloat64("minutes")
	cns, _ := cmd.Flags().GetFloat64("cns")

	if !cmd.Flags().Changed("po2") {
		g, err := readGas(cmd)
		if err != nil {
			return err
		}
		depth, _ := cmd.Flags().GetFloat64("depth")
		sp, _ := cmd.Flags().GetFloat64("setpoint")
		if po2, err = toxicity.PO2(g, depth, 33, sp); err != nil {
			return err
		}
	}

	exp := toxicity.Exposure{CNS: cns}.Add(po2, minutes)
	v := toxView{
		PO2:      math.Round(po2*100) / 100,
		CNSRate:  toxicity.CNSRate(po2),
		CNS:      round1(exp.CNS),
		OTU:      round1(exp.OTU),
		DailyOTU: round1(exp.DailyOTU),
	}
	if left := toxicity.OxygenTimeRemaining(po2, exp.CNS); !math.IsInf(left, 1) {
		v.TimeRemaining = &left
	}

	w := cmd.OutOrStdout()
	if jsonFlag {
		return writeJSON(w, v)
	}
	st := newStyles(w)
	fmt.Fprintf(w, "PO2 %.2f  CNS rate %.3f%%/min\n", v.PO2, v.CNSRate)
	line := fmt.Sprintf("CNS %.1f%%  OTU %.1f  daily OTU %.1f", v.CNS, v.OTU, v.DailyOTU)
	if exp.CNS >= toxicity.CNSLimitPercent {
		fmt.Fprintln(w, st.warn.Render(line+"  ! CNS limit reached"))
	} else {
		fmt.Fprintln(w, line)
	}
	if v.TimeRemaining != nil {
		fmt.Fprintf(w, "%.0f min left at this PO2\n", math.Floor(*v.TimeRemaining))
	}

	return nil
}
