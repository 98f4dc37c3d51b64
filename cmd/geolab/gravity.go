package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"Geospace/internal/calc/calcerr"
	gravity "Geospace/internal/calc/gravity"
	"Geospace/internal/calc/premium/importer"
)

func NewGravityCommand() *cobra.Command {
	var (
		form gravity.FormInput
		file string
	)
	cmd := &cobra.Command{
		Use:   "gravity",
		Short: "Calculate the specific gravity of soil solids",
		Long: `Calculate the specific gravity of soil solids by the pycnometer method.

The oven-dry soil mass follows from --soil: 40 g for "Clayey Silt",
50 g for "Silty Sand" and 35 g otherwise. With --file every row of the
Gravity sheet is calculated.`,
		Example: `  geolab gravity --m1 160 --m4 690.5 --temp 24.3 --capacity 500 --soil "Silty Sand"
  geolab gravity --file borehole-3.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			forms := []gravity.FormInput{form}
			if file != "" {
				f, err := excelize.OpenFile(file)
				if err != nil {
					return pkgerrors.Wrapf(err, "failed to open %s", file)
				}
				defer f.Close()
				if forms, err = importer.ReadGravity(f); err != nil {
					return err
				}
				if len(forms) == 0 {
					return &calcerr.InsufficientDataError{What: "specific gravity", Need: 1}
				}
			}
			results, err := gravity.CalculateAll(forms)
			if err != nil {
				return err
			}
			for i, res := range results {
				printGravity(cmd.OutOrStdout(), forms[i], res)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.M1, "m1", "", "weight of pycnometer (gm)")
	f.StringVar(&form.M4, "m4", "", "weight of pycnometer + soil + water (gm)")
	f.StringVar(&form.ObservedTemp, "temp", "", "observed temperature (°C, 15.0 to 30.9)")
	f.StringVar(&form.Capacity, "capacity", "", "pycnometer capacity (ml)")
	f.StringVar(&form.SoilDescription, "soil", string(gravity.Other), "soil description")
	f.StringVar(&form.BoringNo, "boring", "", "boring number")
	f.StringVar(&form.SampleNo, "sample", "", "sample number")
	f.StringVar(&form.SampleDepth, "depth", "", "sample depth (m)")
	f.StringVarP(&file, "file", "f", "", "read samples from an xlsx workbook")
	for _, name := range []string{"m1", "m4", "temp", "capacity", "soil", "boring", "sample", "depth"} {
		cmd.MarkFlagsMutuallyExclusive("file", name)
	}
	return cmd
}

func printGravity(out io.Writer, form gravity.FormInput, res gravity.Result) {
	if form.BoringNo != "" || form.SampleNo != "" {
		fmt.Fprintf(out, "%s %s / %s\n", bold("Sample"), form.BoringNo, form.SampleNo)
	}
	fmt.Fprintf(out, "Soil Description:\t%s\n", res.SoilDescription)
	fmt.Fprintf(out, "Observed Temperature:\t%.1f °C (density %.5f)\n", res.ObservedTempC, res.DensityObserved)
	fmt.Fprintf(out, "M1:\t%.2f gm\n", res.M1)
	fmt.Fprintf(out, "M2:\t%.2f gm\n", res.M2)
	fmt.Fprintf(out, "M3:\t%.2f gm\n", res.M3)
	fmt.Fprintf(out, "M4:\t%.2f gm\n", res.M4)
	fmt.Fprintf(out, "GTX:\t%.3f\n", res.GTX)
	fmt.Fprintf(out, "G20:\t%s\n\n", color.New(color.Bold, color.FgGreen).Sprintf("%.3f", res.G20))
}

func NewDensityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "density TEMP",
		Short: "Print the density of water at a temperature in °C",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			temp, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return &calcerr.InvalidMeasurementError{Field: "temperature", Value: args[0], Err: err}
			}
			d, err := gravity.Density(temp)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.5f g/ml\n", d)
			return nil
		},
	}
}
