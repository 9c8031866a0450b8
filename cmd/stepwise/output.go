package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"

	"github.com/san-kum/stepwise/internal/export"
)

// withOutput hands fn the file at path, or stdout when path is empty.
func withOutput(cmd *cobra.Command, path string, fn func(w io.Writer) error) error {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	return nil
}

func saveChart(cmd *cobra.Command, p *plot.Plot) error {
	if err := export.SaveFile(chartOut, p, 0, 0); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", chartOut)
	return nil
}

// matchStep finds h among steps up to rounding and returns the stored value.
func matchStep(steps []float64, h float64) (float64, bool) {
	for _, s := range steps {
		if math.Abs(s-h) <= 1e-12*math.Max(math.Abs(s), math.Abs(h)) {
			return s, true
		}
	}
	return 0, false
}
