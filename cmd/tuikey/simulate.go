package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuikey/internal/alternates"
	"github.com/verte-zerg/tuikey/internal/callout"
	"github.com/verte-zerg/tuikey/internal/model"
)

const simulateScreenWidth = 400

var (
	simKey      string
	simLang     string
	simDx       []float64
	simDy       float64
	simWidth    float64
	simMaxWidth float64
	simAlign    string
	simClamp    bool
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one press, drag and release through the callout engine",
		Args:  cobra.NoArgs,
		RunE:  runSimulateCmd,
	}
	cmd.Flags().StringVar(&simKey, "key", "e", "pressed key")
	cmd.Flags().StringVar(&simLang, "lang", defaultLang, "alternates language")
	cmd.Flags().Float64SliceVar(&simDx, "dx", nil, "horizontal drag positions, in order (repeatable)")
	cmd.Flags().Float64Var(&simDy, "dy", 0, "vertical drag applied with every position")
	cmd.Flags().Float64Var(&simWidth, "width", 40, "key width")
	cmd.Flags().Float64Var(&simMaxWidth, "max-width", 50, "maximum key width")
	cmd.Flags().StringVar(&simAlign, "align", "", "leading or trailing (default: from key position)")
	cmd.Flags().BoolVar(&simClamp, "clamp-overshoot", false, "pin overshoot to the far edge")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, _ []string) error {
	if simWidth <= 0 || simMaxWidth <= 0 {
		return fmt.Errorf("--width and --max-width must be > 0")
	}
	var explicit *callout.Alignment
	if simAlign != "" {
		align, ok := callout.ParseAlignment(simAlign)
		if !ok {
			return fmt.Errorf("--align must be leading or trailing")
		}
		explicit = &align
	}
	return simulate(cmd.OutOrStdout(), alternates.ForLang(simLang), simulation{
		key:      simKey,
		dx:       simDx,
		dy:       simDy,
		width:    simWidth,
		maxWidth: simMaxWidth,
		align:    explicit,
		clamp:    simClamp,
	})
}

type simulation struct {
	key      string
	dx       []float64
	dy       float64
	width    float64
	maxWidth float64
	align    *callout.Alignment
	clamp    bool
}

// simulate prints the events of one gesture. The key sits near the left
// edge of a wide screen unless an alignment is given.
func simulate(w io.Writer, provider callout.ActionProvider, sim simulation) error {
	var lines []string
	emit := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	cfg := callout.DefaultConfig()
	cfg.MaxButtonSize = model.Size{Width: sim.maxWidth, Height: sim.maxWidth}
	cfg.ClampOvershoot = sim.clamp
	ctrl := callout.New(
		provider,
		callout.HapticFunc(func() { emit("haptic") }),
		callout.CommitterFunc(func(a model.Action) { emit("commit %s", a) }),
		callout.WithConfig(cfg),
	)

	anchor := model.Rect{X: 10, Y: 100, Width: sim.width, Height: sim.width}
	screen := model.Rect{Width: simulateScreenWidth, Height: simulateScreenWidth}
	ctrl.Open(model.Character(sim.key), anchor, screen, sim.align)
	if !ctrl.IsActive() {
		logErrln("no alternates for", strconv.Quote(sim.key))
		emit("tap %s", sim.key)
		return writeLines(w, lines)
	}
	emit("open %s [%s] selected=%s", ctrl.Alignment(), joinActions(ctrl.Actions()), selected(ctrl))

	for _, dx := range sim.dx {
		ctrl.Update(model.Translation{X: dx, Y: sim.dy})
		if !ctrl.IsActive() {
			emit("drag %s,%s reset", formatFloat(dx), formatFloat(sim.dy))
			break
		}
		emit("drag %s,%s selected=%s", formatFloat(dx), formatFloat(sim.dy), selected(ctrl))
	}
	ctrl.End()
	return writeLines(w, lines)
}

func selected(ctrl *callout.Controller) string {
	action, ok := ctrl.SelectedAction()
	if !ok {
		return "-"
	}
	return action.String()
}

func joinActions(actions []model.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
