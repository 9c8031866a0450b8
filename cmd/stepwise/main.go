package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configFile string
	preset     string
	stepSizes  []float64
	methods    []string
	tEnd       float64
	strict     bool
	verbose    bool

	plain     bool
	chartOut  string
	jsonOut   string
	csvOut    string
	chartKind string
	csvStep   float64
	width     int
	height    int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stepwise",
		Short:         "compare Euler and RK4 on a forced damped oscillator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReport,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64SliceVar(&stepSizes, "h", nil, "step size, repeatable, coarse to fine")
	pf.StringSliceVar(&methods, "methods", nil, "methods to compare")
	pf.Float64Var(&tEnd, "t-end", 0, "end of the integration interval")
	pf.BoolVar(&strict, "strict", false, "stop a run at the first NaN or Inf")
	pf.BoolVar(&verbose, "verbose", false, "debug logging on stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "print the RMSE report",
		RunE:  runReport,
	}
	runCmd.Flags().BoolVar(&plain, "plain", false, "no colors or borders")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "terminal charts of solutions and errors",
		RunE:  plotTerminal,
	}
	plotCmd.Flags().IntVar(&width, "width", 60, "chart width")
	plotCmd.Flags().IntVar(&height, "height", 15, "chart height")

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "write a png, svg or pdf chart",
		RunE:  writeChart,
	}
	chartCmd.Flags().StringVar(&chartOut, "out", "solution.png", "output file")
	chartCmd.Flags().StringVar(&chartKind, "kind", "solution", "solution or error")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export every case to JSON",
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&jsonOut, "out", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export one step size to CSV",
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().Float64Var(&csvStep, "step", 0.1, "step size to export")
	exportCSVCmd.Flags().StringVar(&csvOut, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list available integration methods",
		RunE:  listMethods,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive terminal explorer",
		RunE:  explore,
	}

	rootCmd.AddCommand(runCmd, plotCmd, chartCmd, exportJSONCmd, exportCSVCmd, presetsCmd, methodsCmd, initCmd, exploreCmd)
	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
