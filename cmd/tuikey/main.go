// Package main provides the CLI entrypoint for tuikey.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuikey/internal/alternates"
	"github.com/verte-zerg/tuikey/internal/config"
	"github.com/verte-zerg/tuikey/internal/model"
	"github.com/verte-zerg/tuikey/internal/stats"
	"github.com/verte-zerg/tuikey/internal/statsui"
	"github.com/verte-zerg/tuikey/internal/store"
	"github.com/verte-zerg/tuikey/internal/tui"
)

const (
	defaultLang         = alternates.DefaultLang
	defaultKeyWidth     = 5
	defaultKeyHeight    = 3
	defaultLongPressMs  = 400
	defaultMaxKeyWidth  = 8.0
	defaultMaxKeyHeight = 4.0
	defaultIndexSpan    = 0.9
	defaultResetRatio   = 1.0
	defaultHaptic       = tui.HapticFlash
	defaultStatsTop     = 10
)

var (
	kbLang           string
	kbKeyWidth       int
	kbKeyHeight      int
	kbLongPressMs    int
	kbMaxKeyWidth    float64
	kbMaxKeyHeight   float64
	kbIndexSpan      float64
	kbResetRatio     float64
	kbClampOvershoot bool
	kbHaptic         string
	kbNoMouse        bool
	kbAlternates     string

	statsLang  string
	statsSince string
	statsTop   int
	statsPlain bool

	altLang string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuikey",
		Short:         "Terminal soft keyboard with press-and-hold alternates",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runKeyboardCmd,
	}

	rootCmd.Flags().StringVar(&kbLang, "lang", defaultLang, "keyboard language (en, fr, de, es, pt)")
	rootCmd.Flags().IntVar(&kbKeyWidth, "key-width", defaultKeyWidth, "key width in cells")
	rootCmd.Flags().IntVar(&kbKeyHeight, "key-height", defaultKeyHeight, "key height in cells")
	rootCmd.Flags().IntVar(&kbLongPressMs, "long-press-ms", defaultLongPressMs, "hold time before the callout opens (0 opens on press)")
	rootCmd.Flags().Float64Var(&kbMaxKeyWidth, "max-key-width", defaultMaxKeyWidth, "widest key size used for drag spans")
	rootCmd.Flags().Float64Var(&kbMaxKeyHeight, "max-key-height", defaultMaxKeyHeight, "tallest key size used for drag spans")
	rootCmd.Flags().Float64Var(&kbIndexSpan, "index-span", defaultIndexSpan, "fraction of the key width per candidate")
	rootCmd.Flags().Float64Var(&kbResetRatio, "reset-ratio", defaultResetRatio, "downward drag, in key heights, that dismisses the callout")
	rootCmd.Flags().BoolVar(&kbClampOvershoot, "clamp-overshoot", false, "pin drags past the last candidate to the far edge")
	rootCmd.Flags().StringVar(&kbHaptic, "haptic", defaultHaptic, "selection feedback: bell, flash or off")
	rootCmd.Flags().BoolVar(&kbNoMouse, "no-mouse", false, "disable mouse input (alt+key, ←/→, enter)")
	rootCmd.Flags().StringVar(&kbAlternates, "alternates", "", "alternates overlay file (default: XDG config dir)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAlternatesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newSimulateCmd())

	return rootCmd
}

func runKeyboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyKeyboardConfig(cmd, fileCfg)

	cfg := keyboardConfig()
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tuikey needs an interactive terminal")
	}

	table, err := alternates.Resolve(cfg.Lang, cfg.AlternatesPath)
	if err != nil {
		return fmt.Errorf("failed to load alternates: %w", err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	kb := tui.NewModel(cfg, st, table, os.Stderr)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(kb, opts...)
	_, err = program.Run()
	kb.Close()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if text := kb.Text(); text != "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyKeyboardConfig(cmd *cobra.Command, fileCfg config.FileConfig) {
	kb := fileCfg.Keyboard
	applyStringConfig(cmd, "lang", &kbLang, kb.Lang)
	applyIntConfig(cmd, "key-width", &kbKeyWidth, kb.KeyWidth)
	applyIntConfig(cmd, "key-height", &kbKeyHeight, kb.KeyHeight)
	applyIntConfig(cmd, "long-press-ms", &kbLongPressMs, kb.LongPress)
	applyStringConfig(cmd, "haptic", &kbHaptic, kb.Haptic)
	applyStringConfig(cmd, "alternates", &kbAlternates, kb.Alternates)
	if kb.Mouse != nil {
		noMouse := !*kb.Mouse
		applyBoolConfig(cmd, "no-mouse", &kbNoMouse, &noMouse)
	}

	co := fileCfg.Callout
	applyFloatConfig(cmd, "max-key-width", &kbMaxKeyWidth, co.MaxKeyWidth)
	applyFloatConfig(cmd, "max-key-height", &kbMaxKeyHeight, co.MaxKeyHeight)
	applyFloatConfig(cmd, "index-span", &kbIndexSpan, co.IndexSpan)
	applyFloatConfig(cmd, "reset-ratio", &kbResetRatio, co.ResetRatio)
	applyBoolConfig(cmd, "clamp-overshoot", &kbClampOvershoot, co.ClampOvershoot)
}

func keyboardConfig() model.KeyboardConfig {
	path := kbAlternates
	if path == "" {
		path = config.DefaultAlternatesPath()
	}
	return model.KeyboardConfig{
		Lang:           strings.ToLower(strings.TrimSpace(kbLang)),
		KeyWidth:       kbKeyWidth,
		KeyHeight:      kbKeyHeight,
		LongPress:      time.Duration(kbLongPressMs) * time.Millisecond,
		MaxKeyWidth:    kbMaxKeyWidth,
		MaxKeyHeight:   kbMaxKeyHeight,
		IndexSpanRatio: kbIndexSpan,
		ResetRatio:     kbResetRatio,
		ClampOvershoot: kbClampOvershoot,
		Haptic:         kbHaptic,
		Mouse:          !kbNoMouse,
		AlternatesPath: path,
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newAlternatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alternates [key]",
		Short: "Show callout alternates",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAlternatesCmd,
	}
	cmd.Flags().StringVar(&altLang, "lang", "", "language code (default: config or en)")
	return cmd
}

func runAlternatesCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	lang := defaultLang
	if fileCfg.Keyboard.Lang != nil {
		lang = *fileCfg.Keyboard.Lang
	}
	if altLang != "" {
		lang = altLang
	}
	path := config.DefaultAlternatesPath()
	if fileCfg.Keyboard.Alternates != nil {
		path = *fileCfg.Keyboard.Alternates
	}
	table, err := alternates.Resolve(lang, path)
	if err != nil {
		return fmt.Errorf("failed to load alternates: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, k := range table.Keys() {
			if _, err := fmt.Fprintf(out, "%s  %s\n", k, strings.Join(table[k], " ")); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}

	base := model.Character(args[0])
	candidates := table.Alternates(base)
	if len(candidates) == 0 {
		return fmt.Errorf("no alternates for %q in %s", args[0], lang)
	}
	counts := map[string]int{}
	if st, err := store.Open(config.DefaultDBPath()); err != nil {
		logErrf("failed to open db: %v\n", err)
	} else {
		if counts, err = st.CountsForBase(context.Background(), base); err != nil {
			logErrf("failed to load usage: %v\n", err)
		}
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	for i, c := range candidates {
		line := fmt.Sprintf("%d  %s", i, c)
		if n := counts[c.Text]; n > 0 {
			line += "  (" + strconv.Itoa(n) + " commits)"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show most used alternates",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsTop, "top", defaultStatsTop, "number of alternates to list (0 for all)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}

	cfg := model.StatsConfig{
		Lang:  statsLang,
		Since: sinceTime,
		Top:   statsTop,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	fd := int(os.Stdout.Fd())
	if statsPlain || !term.IsTerminal(fd) {
		width := 0
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		if err := stats.WriteReport(cmd.OutOrStdout(), report, time.Now(), width); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuikey configuration
# Uncomment a value to enable it. CLI flags override config values.

[keyboard]
# lang = %q               # Keyboard language (%s)
# key-width = %d            # Key width in cells
# key-height = %d           # Key height in cells
# long-press-ms = %d      # Hold time before the callout opens
# haptic = %q          # bell, flash or off
# mouse = true              # Mouse input; false uses alt+key, arrows and enter
# alternates = ""           # Alternates overlay file

[callout]
# max-key-width = %.1f       # Widest key size used for drag spans
# max-key-height = %.1f      # Tallest key size used for drag spans
# index-span = %.2f         # Fraction of the key width per candidate
# reset-ratio = %.1f         # Downward drag, in key heights, that dismisses the callout
# clamp-overshoot = false   # Pin drags past the last candidate to the far edge
`,
		defaultLang,
		strings.Join(alternates.Languages(), ", "),
		defaultKeyWidth,
		defaultKeyHeight,
		defaultLongPressMs,
		defaultHaptic,
		defaultMaxKeyWidth,
		defaultMaxKeyHeight,
		defaultIndexSpan,
		defaultResetRatio,
	)
}

func validateConfig(cfg model.KeyboardConfig) error {
	if cfg.KeyWidth < 3 {
		return fmt.Errorf("--key-width must be >= 3")
	}
	if cfg.KeyHeight < 3 {
		return fmt.Errorf("--key-height must be >= 3")
	}
	if cfg.LongPress < 0 {
		return fmt.Errorf("--long-press-ms must be >= 0")
	}
	if cfg.MaxKeyWidth <= 0 || cfg.MaxKeyHeight <= 0 {
		return fmt.Errorf("--max-key-width and --max-key-height must be > 0")
	}
	if cfg.IndexSpanRatio <= 0 || cfg.IndexSpanRatio > 1 {
		return fmt.Errorf("--index-span must be in (0, 1]")
	}
	if cfg.ResetRatio <= 0 {
		return fmt.Errorf("--reset-ratio must be > 0")
	}
	switch cfg.Haptic {
	case tui.HapticBell, tui.HapticFlash, tui.HapticOff:
	default:
		return fmt.Errorf("--haptic must be one of bell, flash, off")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
