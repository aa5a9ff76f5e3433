package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"starflow/internal/anim"
	"starflow/internal/config"
	"starflow/internal/render"
	"starflow/internal/scene"
	"starflow/internal/tui"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "starflow [scene file]",
		Short: "Interactive energy-flow canvas for the terminal",
		Long: "starflow renders flows between nodes as lines, arcs, and animated\n" +
			"waves, edits them interactively, and exports the canvas to PNG.",
		Args: cobra.MaximumNArgs(1),
		RunE: runCanvas,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	exportCmd := &cobra.Command{
		Use:   "export <scene file> <png file>",
		Short: "Render a scene to PNG without opening the canvas",
		Args:  cobra.ExactArgs(2),
		RunE:  runExport,
	}
	exportCmd.Flags().Float64("phase", 0, "animation phase to freeze wave flows at, in radians")
	root.AddCommand(exportCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger writes to a file because the TUI owns the terminal.
func newLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{filepath.Join(os.TempDir(), "starflow.log")}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func runCanvas(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load(config.DefaultPath())

	sc := scene.New()
	filename := ""
	if len(args) == 1 {
		filename = args[0]
		loaded, err := scene.Load(filename)
		switch {
		case err == nil:
			sc = loaded
		case os.IsNotExist(err):
			// A new scene; the file appears on first save.
			logger.Info("starting new scene", zap.String("file", filename))
		default:
			return fmt.Errorf("failed to load scene: %v", err)
		}
	}

	m := tui.New(sc, cfg, logger, filename)

	// The driver is created before the program copies the model, but its
	// callback only fires after Start, by which time p is assigned.
	var p *tea.Program
	driver := anim.NewDriver(cfg.FrameInterval(), cfg.PhaseStep, func(offset float64) {
		if p != nil {
			p.Send(tui.FrameMsg{Offset: offset})
		}
	})
	m.Driver = driver
	defer driver.Stop()

	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if cfg.Animate {
		driver.Start()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program failed: %v", err)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	phase, _ := cmd.Flags().GetFloat64("phase")

	sc, err := scene.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scene: %v", err)
	}

	if err := render.WritePNG(sc, phase, args[1]); err != nil {
		return fmt.Errorf("failed to export: %v", err)
	}

	logger.Info("scene exported",
		zap.String("scene", args[0]),
		zap.String("png", args[1]),
		zap.Float64("phase", phase))
	fmt.Printf("exported %s\n", args[1])
	return nil
}
