package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/decoplan/config"
	"github.com/katalvlaran/decoplan/deco"
	"github.com/katalvlaran/decoplan/internal/log"
	"github.com/katalvlaran/decoplan/profile"
)

func init() {
	cmd := &cobra.Command{
		Use:   "plan FILE",
		Short: "Plan the dives described in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return planFile(cmd.OutOrStdout(), args[0])
		},
	}

	RootCmd.AddCommand(cmd)
}

// planFile loads, runs and renders one plan file. An incomplete ascent is
// rendered before its error is returned.
func planFile(w io.Writer, path string) error {
	p, err := config.Load(path)
	if err != nil {
		return err
	}

	e, err := engine()
	if err != nil {
		return err
	}

	res, err := profile.Run(e, p)
	if err != nil && !errors.Is(err, deco.ErrIncompletePlan) {
		return fmt.Errorf("plan %s: %w", path, err)
	}
	log.Infow("plan computed", "path", path, "id", res.PlanID, "dives", len(res.Dives))

	var werr error
	if jsonFlag {
		werr = writeJSON(w, newPlanView(p, res))
	} else {
		werr = renderPlan(w, p, res, e.Options().MaxNDLMinutes)
	}
	if werr != nil {
		return werr
	}
	if err != nil {
		return fmt.Errorf("plan %s: %w", path, err)
	}

	return nil
}
