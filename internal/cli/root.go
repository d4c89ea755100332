// Package cli implements the decoplan commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/decoplan/deco"
	"github.com/katalvlaran/decoplan/internal/log"
)

var (
	debugFlag bool
	jsonFlag  bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:          "decoplan",
	Short:        "Bühlmann ZHL-16C decompression planner",
	Long:         "Plans staged ascents, no-decompression limits and oxygen exposure for open and closed circuit dives.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.Init(debugFlag)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Verbose development logging")
	RootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Write JSON instead of text")
}

// engine returns an engine with default options logging to the package logger.
func engine() (*deco.Engine, error) {
	opts := deco.DefaultOptions()
	opts.Logger = log.Logger()

	return deco.New(opts)
}

// settingsFlags registers the planning preferences shared by ndl and friends.
func settingsFlags(cmd *cobra.Command) {
	cmd.Flags().Int("gf-low", deco.DefaultGFLow, "Gradient factor low (percent)")
	cmd.Flags().Int("gf-high", deco.DefaultGFHigh, "Gradient factor high (percent)")
	cmd.Flags().Float64("altitude", 0, "Site altitude (ft)")
	cmd.Flags().Int("last-stop", int(deco.LastStop20), "Last stop depth: 10 or 20 (ft)")
}

func readSettings(cmd *cobra.Command) (deco.Settings, error) {
	s := deco.DefaultSettings()
	s.GFLow, _ = cmd.Flags().GetInt("gf-low")
	s.GFHigh, _ = cmd.Flags().GetInt("gf-high")
	alt, _ := cmd.Flags().GetFloat64("altitude")
	s.Altitude = deco.AltitudeForFeet(alt)
	last, _ := cmd.Flags().GetInt("last-stop")
	s.LastStop = deco.LastStop(last)
	if err := s.Validate(); err != nil {
		return deco.Settings{}, fmt.Errorf("settings: %w", err)
	}

	return s, nil
}
