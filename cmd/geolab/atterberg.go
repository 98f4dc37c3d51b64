package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	atterberg "Geospace/internal/calc/atterberg"
	"Geospace/internal/calc/premium/importer"
	"Geospace/internal/project"
)

func NewAtterbergCommand() *cobra.Command {
	var (
		llRows, plRows []string
		file           string
		details        project.Details
	)
	cmd := &cobra.Command{
		Use:   "atterberg",
		Short: "Calculate liquid limit, plastic limit and soil type",
		Long: `Calculate liquid limit, plastic limit and soil type.

Each --ll row is "can,mass_can,moist,dry,blows" and each --pl row is
"can,mass_can,moist,dry", masses in grams. Alternatively --file reads the
LiquidLimit and PlasticLimit sheets of a workbook.`,
		Example: `  geolab atterberg --ll A1,20,52.5,42,15 --ll A2,20,51,42,22 --pl P1,10,22,20
  geolab atterberg --file borehole-3.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in atterberg.Input
			if file != "" {
				f, err := excelize.OpenFile(file)
				if err != nil {
					return pkgerrors.Wrapf(err, "failed to open %s", file)
				}
				defer f.Close()
				if in, err = importer.ReadAtterberg(f); err != nil {
					return err
				}
			} else {
				for _, s := range llRows {
					row, err := parseRow(s, true)
					if err != nil {
						return err
					}
					in.LiquidLimit = append(in.LiquidLimit, row)
				}
				for _, s := range plRows {
					row, err := parseRow(s, false)
					if err != nil {
						return err
					}
					in.PlasticLimit = append(in.PlasticLimit, row)
				}
			}

			res, err := atterberg.CalculateInput(in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, atterberg.Report(details, res))
			fmt.Fprintf(out, "\n%s %s\n", bold("Classification:"), soilColor(res.SoilType).Sprint(res.SoilType))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&llRows, "ll", nil, "liquid limit row can,mass_can,moist,dry,blows (repeatable)")
	f.StringArrayVar(&plRows, "pl", nil, "plastic limit row can,mass_can,moist,dry (repeatable)")
	f.StringVarP(&file, "file", "f", "", "read rows from an xlsx workbook")
	f.StringVar(&details.Project, "project", "", "project name printed on the report")
	f.StringVar(&details.BoringNo, "boring", "", "boring number printed on the report")
	f.StringVar(&details.TestedBy, "tested-by", "", "technician printed on the report")
	cmd.MarkFlagsMutuallyExclusive("file", "ll")
	cmd.MarkFlagsMutuallyExclusive("file", "pl")
	return cmd
}

// parseRow splits a comma separated form row. Numbers are left as typed so
// that validation reports the offending field.
func parseRow(s string, withBlows bool) (atterberg.Row, error) {
	want := 4
	if withBlows {
		want = 5
	}
	parts := strings.Split(s, ",")
	if len(parts) != want {
		return atterberg.Row{}, pkgerrors.Errorf("row %q: expected %d comma separated values, got %d", s, want, len(parts))
	}
	row := atterberg.Row{
		CanID:        strings.TrimSpace(parts[0]),
		MassCan:      strings.TrimSpace(parts[1]),
		MassCanMoist: strings.TrimSpace(parts[2]),
		MassCanDry:   strings.TrimSpace(parts[3]),
	}
	if withBlows {
		row.Blows = strings.TrimSpace(parts[4])
	}
	return row, nil
}

func soilColor(s atterberg.SoilType) *color.Color {
	switch s {
	case atterberg.SoilCHOH, atterberg.SoilMHOH:
		return color.New(color.Bold, color.FgRed)
	case atterberg.SoilCLOL, atterberg.SoilCLML:
		return color.New(color.Bold, color.FgYellow)
	default:
		return color.New(color.Bold, color.FgGreen)
	}
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
