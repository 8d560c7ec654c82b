// Package main provides the CLI entrypoint for cubetui.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cubetui/internal/config"
	"cubetui/internal/model"
	"cubetui/internal/session"
	"cubetui/internal/stats"
	"cubetui/internal/store"
	"cubetui/internal/timesfile"
	"cubetui/internal/tui"
)

const (
	defaultScrambleLen   = 20
	defaultIdleTickMs    = 1000
	defaultRunningTickMs = 100
	defaultPlotHeight    = 10
)

var (
	runScrambleLen   int
	runIdleTickMs    int
	runRunningTickMs int

	statsLast       int
	statsPlotHeight int
	statsColor      bool

	exportOut string
	importIn  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cubetui",
		Short:         "TUI speedcube timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTimerCmd,
	}

	rootCmd.Flags().IntVar(&runScrambleLen, "scramble-length", defaultScrambleLen, "moves per scramble")
	rootCmd.Flags().IntVar(&runIdleTickMs, "idle-tick-ms", defaultIdleTickMs, "poll interval while the timer is idle")
	rootCmd.Flags().IntVar(&runRunningTickMs, "running-tick-ms", defaultRunningTickMs, "poll interval while the timer is running")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}

func loadRuntimeConfig(cmd *cobra.Command) (model.Config, error) {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to resolve config path: %w", err)
	}
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "scramble-length", &runScrambleLen, fileCfg.Scramble.Length)
	applyIntConfig(cmd, "idle-tick-ms", &runIdleTickMs, fileCfg.Timer.IdleTickMs)
	applyIntConfig(cmd, "running-tick-ms", &runRunningTickMs, fileCfg.Timer.RunningTickMs)

	cfg := model.Config{
		ScrambleLen:   runScrambleLen,
		IdleTickMs:    runIdleTickMs,
		RunningTickMs: runRunningTickMs,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.ScrambleLen <= 0 {
		return fmt.Errorf("--scramble-length must be > 0")
	}
	if cfg.IdleTickMs <= 0 {
		return fmt.Errorf("--idle-tick-ms must be > 0")
	}
	if cfg.RunningTickMs <= 0 {
		return fmt.Errorf("--running-tick-ms must be > 0")
	}
	return nil
}

func runTimerCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig(cmd)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	sess := session.New(cfg, st)
	sess.LoadFromStore()

	model := tui.NewModel(sess)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	// The quit action flushes; this covers abnormal program exits. A write
	// failure is reported, never silently swallowed, and does not block exit.
	if err := sess.Flush(); err != nil {
		logErrf("failed to save times: %v\n", err)
	}
	return nil
}

func openStore() (*store.Store, error) {
	path, err := config.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve db path: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
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
	path, err := config.DefaultConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
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

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show solve statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N solves")
	cmd.Flags().IntVar(&statsPlotHeight, "plot-height", defaultPlotHeight, "plot height in rows")
	cmd.Flags().BoolVar(&statsColor, "color", false, "force colored plot output")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	solves, err := st.LoadSolves(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load times: %w", err)
	}
	if statsLast > 0 && len(solves) > statsLast {
		solves = solves[len(solves)-statsLast:]
	}
	history := stats.NewHistory()
	if err := history.Load(solves); err != nil {
		return fmt.Errorf("invalid times in store: %w", err)
	}
	return stats.RenderReport(os.Stdout, history, 0, statsPlotHeight, statsColor)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export times in the plain-text format",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	return cmd
}

func runExportCmd(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	solves, err := st.LoadSolves(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load times: %w", err)
	}

	out := os.Stdout
	if exportOut != "" {
		file, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				logErrf("failed to close output file: %v\n", cerr)
			}
		}()
		out = file
	}
	return timesfile.Write(out, solves)
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import times from the plain-text format, replacing the store",
		Args:  cobra.NoArgs,
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importIn, "in", "", "input file (default stdin)")
	return cmd
}

func runImportCmd(_ *cobra.Command, _ []string) error {
	in := os.Stdin
	if importIn != "" {
		file, err := os.Open(importIn)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				logErrf("failed to close input file: %v\n", cerr)
			}
		}()
		in = file
	}
	solves, err := timesfile.Read(in)
	if err != nil {
		return fmt.Errorf("failed to read times: %w", err)
	}

	// Validation is all-or-nothing; nothing is written on a bad import.
	history := stats.NewHistory()
	if err := history.Load(solves); err != nil {
		return fmt.Errorf("invalid times: %w", err)
	}
	now := time.Now()
	stamped := history.Solves()
	for i := range stamped {
		if stamped[i].RecordedAt.IsZero() {
			stamped[i].RecordedAt = now
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if err := st.ReplaceSolves(context.Background(), stamped); err != nil {
		return fmt.Errorf("failed to write times: %w", err)
	}
	logErrf("Imported %d solves\n", len(stamped))
	return nil
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# cubetui configuration
# Uncomment a value to enable it. CLI flags override config values.

[timer]
# idle-tick-ms = %d       # Poll interval while idle
# running-tick-ms = %d     # Poll interval while timing

[scramble]
# length = %d              # Moves per scramble
`,
		defaultIdleTickMs,
		defaultRunningTickMs,
		defaultScrambleLen,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
