package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/decoplan/consumption"
	"github.com/katalvlaran/decoplan/deco"
	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/profile"
)

type styles struct {
	title lipgloss.Style
	warn  lipgloss.Style
	dim   lipgloss.Style
}

// newStyles colours output only when w is a terminal.
func newStyles(w io.Writer) styles {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return styles{title: lipgloss.NewStyle(), warn: lipgloss.NewStyle(), dim: lipgloss.NewStyle()}
	}

	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		warn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

type stopView struct {
	Depth   float64 `json:"depth_ft"`
	Minutes int     `json:"minutes"`
	Gas     string  `json:"gas"`
}

type alarmView struct {
	Kind      string  `json:"kind"`
	Segment   int     `json:"segment"`
	Gas       string  `json:"gas"`
	Depth     float64 `json:"depth_ft"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
}

type ndlView struct {
	Minutes  int  `json:"minutes"`
	Exceeded bool `json:"exceeded"`
	Capped   bool `json:"capped"`
}

type diveView struct {
	MaxDepth   float64            `json:"max_depth_ft"`
	BottomMin  float64            `json:"bottom_min"`
	NDL        ndlView            `json:"ndl"`
	FirstStop  float64            `json:"first_stop_ft"`
	Stops      []stopView         `json:"stops"`
	Status     string             `json:"status"`
	AscentMin  float64            `json:"ascent_min"`
	RuntimeMin float64            `json:"runtime_min"`
	CNS        float64            `json:"cns_pct"`
	OTU        float64            `json:"otu"`
	GasUsed    map[string]float64 `json:"gas_used_cuft"`
	Alarms     []alarmView        `json:"alarms,omitempty"`
}

type planView struct {
	ID         string             `json:"id"`
	Title      string             `json:"title,omitempty"`
	Dives      []diveView         `json:"dives"`
	RuntimeMin float64            `json:"runtime_min"`
	CNS        float64            `json:"cns_pct"`
	OTU        float64            `json:"otu"`
	DailyOTU   float64            `json:"daily_otu"`
	GasUsed    map[string]float64 `json:"gas_used_cuft"`
}

func minutesOf(d time.Duration) float64 { return round1(d.Minutes()) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func newNDLView(r deco.NDLResult) ndlView {
	return ndlView{Minutes: r.Minutes, Exceeded: r.Exceeded, Capped: r.Capped}
}

func newPlanView(p profile.Plan, r profile.Result) planView {
	v := planView{
		ID:         r.PlanID.String(),
		Title:      p.Title,
		RuntimeMin: minutesOf(r.Runtime),
		CNS:        round1(r.Exposure.CNS),
		OTU:        round1(r.Exposure.OTU),
		DailyOTU:   round1(r.Exposure.DailyOTU),
		GasUsed:    rounded(r.GasUsed),
	}
	for _, d := range r.Dives {
		dv := diveView{
			MaxDepth:   d.MaxDepth,
			BottomMin:  minutesOf(d.BottomTime),
			NDL:        newNDLView(d.NDL),
			FirstStop:  d.Deco.FirstStop,
			Stops:      []stopView{},
			Status:     d.Deco.Status.String(),
			AscentMin:  minutesOf(d.Deco.Ascent),
			RuntimeMin: minutesOf(d.Runtime),
			CNS:        round1(d.Exposure.CNS),
			OTU:        round1(d.Exposure.OTU),
			GasUsed:    rounded(d.GasUsed),
		}
		for _, s := range d.Deco.Stops {
			dv.Stops = append(dv.Stops, stopView{Depth: s.Depth, Minutes: s.Minutes, Gas: s.Gas.Name})
		}
		for _, a := range d.Alarms {
			dv.Alarms = append(dv.Alarms, alarmView{
				Kind: a.Kind.String(), Segment: a.Segment + 1, Gas: a.Gas,
				Depth: a.Depth, Value: round1(a.Value), Threshold: a.Threshold,
			})
		}
		v.Dives = append(v.Dives, dv)
	}

	return v
}

func rounded(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = round1(v)
	}

	return out
}

func ndlText(r deco.NDLResult, limit int) string {
	switch {
	case r.Exceeded:
		return "deco"
	case r.Capped:
		return fmt.Sprintf(">%d min", limit)
	default:
		return fmt.Sprintf("%d min", r.Minutes)
	}
}

// renderPlan writes the human-readable plan report.
func renderPlan(w io.Writer, p profile.Plan, r profile.Result, maxNDL int) error {
	st := newStyles(w)
	title := p.Title
	if title == "" {
		title = "plan"
	}
	fmt.Fprintln(w, st.title.Render(title), st.dim.Render(r.PlanID.String()))

	for i, d := range r.Dives {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.title.Render(fmt.Sprintf("Dive %d", i+1)))
		fmt.Fprintf(w, "  max %.0f ft  bottom %.1f min  NDL %s\n", d.MaxDepth, d.BottomTime.Minutes(), ndlText(d.NDL, maxNDL))

		if len(d.Deco.Stops) == 0 {
			fmt.Fprintln(w, "  no decompression stops")
		} else {
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "  DEPTH\tMIN\tGAS")
			for _, s := range d.Deco.Stops {
				fmt.Fprintf(tw, "  %.0f ft\t%d\t%s\n", s.Depth, s.Minutes, s.Gas.Name)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "  ascent %.1f min  deco %d min  runtime %.1f min\n",
			d.Deco.Ascent.Minutes(), d.Deco.DecoMinutes(), d.Runtime.Minutes())
		fmt.Fprintf(w, "  CNS %.1f%%  OTU %.1f\n", d.Exposure.CNS, d.Exposure.OTU)
		if d.Incomplete {
			fmt.Fprintln(w, st.warn.Render("  ! ascent incomplete: "+d.Deco.Status.String()))
		}
		for _, a := range d.Alarms {
			fmt.Fprintln(w, st.warn.Render(fmt.Sprintf("  ! %s %.0f > %.0f at segment %d (%s, %.0f ft)",
				a.Kind, a.Value, a.Threshold, a.Segment+1, a.Gas, a.Depth)))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.title.Render("Total"))
	fmt.Fprintf(w, "  runtime %.1f min  CNS %.1f%%  OTU %.1f  daily OTU %.1f\n",
		r.Runtime.Minutes(), r.Exposure.CNS, r.Exposure.OTU, r.Exposure.DailyOTU)
	for _, g := range p.Gases {
		used, ok := r.GasUsed[g.Name]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %s %.1f cuft", g.Name, used)
		if g.TankCapacity > 0 {
			usable := consumption.NewTank(g, consumption.DefaultServicePressure).Usable()
			if used > usable {
				fmt.Fprintln(w, st.warn.Render(fmt.Sprintf("%s  ! exceeds %.1f cuft usable", line, usable)))
				continue
			}
			line += fmt.Sprintf(" of %.1f usable", usable)
		}
		fmt.Fprintln(w, line)
	}
	for _, name := range slices.Sorted(maps.Keys(r.GasUsed)) {
		if !slices.ContainsFunc(p.Gases, func(g gas.Gas) bool { return g.Name == name }) {
			fmt.Fprintf(w, "  %s %.1f cuft\n", name, r.GasUsed[name])
		}
	}

	return nil
}
