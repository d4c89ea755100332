package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/decoplan/deco"
	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/tissue"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ndl",
		Short: "No-decompression limits for a fresh diver",
		Long:  "Prints the no-decompression limit at --depth, or a table from 30 to 190 ft when --depth is omitted.",
		Args:  cobra.NoArgs,
		RunE:  runNDL,
	}

	cmd.Flags().Float64("depth", 0, "Bottom depth (ft)")
	gasFlags(cmd)
	settingsFlags(cmd)

	RootCmd.AddCommand(cmd)
}

type ndlRow struct {
	Depth float64 `json:"depth_ft"`
	ndlView
}

func runNDL(cmd *cobra.Command, args []string) error {
	s, err := readSettings(cmd)
	if err != nil {
		return err
	}
	g, err := readGas(cmd)
	if err != nil {
		return err
	}
	e, err := engine()
	if err != nil {
		return err
	}
	st, err := tissue.NewState(s.Altitude.InitialPressure())
	if err != nil {
		return err
	}

	depths := []float64{}
	if d, _ := cmd.Flags().GetFloat64("depth"); d > 0 {
		depths = append(depths, d)
	} else {
		for d := 30.0; d <= 190; d += 10 {
			depths = append(depths, d)
		}
	}

	limit := e.Options().MaxNDLMinutes
	results := make([]deco.NDLResult, 0, len(depths))
	rows := make([]ndlRow, 0, len(depths))
	for _, d := range depths {
		r, err := e.NDL(st, d, g, s)
		if err != nil {
			return fmt.Errorf("ndl at %.0f ft: %w", d, err)
		}
		results = append(results, r)
		rows = append(rows, ndlRow{Depth: d, ndlView: newNDLView(r)})
	}

	w := cmd.OutOrStdout()
	if jsonFlag {
		return writeJSON(w, rows)
	}
	fmt.Fprintf(w, "%s  GF %d/%d  %s\n", g.Name, s.GFLow, s.GFHigh, s.Altitude)
	mod, modOK := g.MOD(gas.Imperial)
	for i, d := range depths {
		note := ""
		if modOK && d > mod {
			note = "  (beyond MOD)"
		}
		fmt.Fprintf(w, "%4.0f ft  %s%s\n", d, ndlText(results[i], limit), note)
	}

	return nil
}
