package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/stepwise/internal/analysis"
	"github.com/san-kum/stepwise/internal/config"
	"github.com/san-kum/stepwise/internal/experiment"
	"github.com/san-kum/stepwise/internal/export"
	"github.com/san-kum/stepwise/internal/physics"
	"github.com/san-kum/stepwise/internal/report"
	"github.com/san-kum/stepwise/internal/tui"
	"github.com/san-kum/stepwise/internal/viz"
)

// resolveConfig applies preset, then config file, then changed flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("h") {
		cfg.StepSizes = append([]float64(nil), stepSizes...)
	}
	if flags.Changed("methods") {
		cfg.Methods = append([]string(nil), methods...)
	}
	if flags.Changed("t-end") {
		cfg.Instance.T = tEnd
	}
	if flags.Changed("strict") {
		cfg.Strict = strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type session struct {
	cfg      *config.Config
	problem  physics.Problem
	registry *experiment.Registry
	sweep    *analysis.Sweep
	logger   *zap.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(verbose)
	if err != nil {
		return nil, err
	}

	reg := experiment.NewRegistry()
	return &session{
		cfg:      cfg,
		problem:  cfg.Problem(),
		registry: reg,
		sweep:    analysis.NewSweep(reg, logger, analysis.WithStrict(cfg.Strict)),
		logger:   logger,
	}, nil
}

func (s *session) run(cmd *cobra.Command) error {
	defer s.logger.Sync()

	s.logger.Debug("sweep starting",
		zap.String("problem", s.problem.String()),
		zap.Strings("methods", s.cfg.Methods),
		zap.Float64s("steps", s.cfg.StepSizes),
		zap.Bool("strict", s.cfg.Strict),
	)
	_, err := s.sweep.Run(cmd.Context(), s.problem, s.cfg.Methods, s.cfg.StepSizes)
	return err
}

func (s *session) report() *report.Report {
	return report.New(s.problem, s.sweep, s.registry)
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := s.run(cmd); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s.report().Render(!plain))
	return nil
}

func plotTerminal(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := s.run(cmd); err != nil {
		return err
	}

	ref, err := analysis.Reference(s.problem, s.cfg.ReferencePoints)
	if err != nil {
		return err
	}
	opts := viz.ChartOptions{Width: width, Height: height, Labels: s.registry}
	out := cmd.OutOrStdout()

	for _, h := range s.cfg.StepSizes {
		chart, err := viz.SolutionChart(ref, s.sweep.ForStep(h), opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("Solutions, h = %g", h)))
		fmt.Fprintln(out, chart)
		fmt.Fprintln(out)
	}

	chart, err := viz.ErrorChart(ref, s.sweep.Cases(), opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, viz.Title.Render("Absolute error"))
	fmt.Fprintln(out, chart)
	return nil
}

func writeChart(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := s.run(cmd); err != nil {
		return err
	}

	opts := export.PlotOptions{Labels: s.registry}
	switch strings.ToLower(chartKind) {
	case "solution":
		ref, err := analysis.Reference(s.problem, s.cfg.ReferencePoints)
		if err != nil {
			return err
		}
		plt, err := export.SolutionPlot(ref, s.sweep.Cases(), opts)
		if err != nil {
			return err
		}
		return saveChart(cmd, plt)
	case "error":
		plt, err := export.ErrorPlot(s.sweep.Cases(), opts)
		if err != nil {
			return err
		}
		return saveChart(cmd, plt)
	default:
		return fmt.Errorf("unknown chart kind %q (want solution or error)", chartKind)
	}
}

func exportJSON(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := s.run(cmd); err != nil {
		return err
	}
	return withOutput(cmd, jsonOut, func(w io.Writer) error {
		return s.report().WriteJSON(w)
	})
}

func exportCSV(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if h, ok := matchStep(s.cfg.StepSizes, csvStep); ok {
		csvStep = h
	} else {
		s.cfg.StepSizes = []float64{csvStep}
	}
	if err := s.run(cmd); err != nil {
		return err
	}
	return withOutput(cmd, csvOut, func(w io.Writer) error {
		return s.report().WriteCSV(w, csvStep)
	})
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "presets:")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(out, "  %-14s h=%v  %s\n", name, p.StepSizes, p.Problem())
	}
	return nil
}

func listMethods(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	out := cmd.OutOrStdout()
	for _, name := range reg.ListIntegrators() {
		fmt.Fprintf(out, "  %-8s %s\n", name, reg.Label(name))
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func explore(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	e, err := tui.NewExplorer(cfg.Problem(), experiment.NewRegistry(), cfg.Methods, cfg.StepSizes)
	if err != nil {
		return err
	}
	return tui.Run(e)
}
