package importer

import (
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	atterberg "Geospace/internal/calc/atterberg"
	gravity "Geospace/internal/calc/gravity"
)

// Sheet names of a laboratory workbook. The first row of each sheet is a
// header and is skipped.
const (
	SheetLiquidLimit  = "LiquidLimit"
	SheetPlasticLimit = "PlasticLimit"
	SheetGravity      = "Gravity"
)

// ReadAtterberg reads the liquid and plastic limit sheets.
// Columns: can no., clean can, can + moist soil, can + dry soil, blows.
func ReadAtterberg(f *excelize.File) (atterberg.Input, error) {
	var in atterberg.Input
	rows, err := dataRows(f, SheetLiquidLimit)
	if err != nil {
		return in, err
	}
	for _, row := range rows {
		in.LiquidLimit = append(in.LiquidLimit, atterberg.Row{
			CanID:        cell(row, 0),
			MassCan:      cell(row, 1),
			MassCanMoist: cell(row, 2),
			MassCanDry:   cell(row, 3),
			Blows:        cell(row, 4),
		})
	}
	rows, err = dataRows(f, SheetPlasticLimit)
	if err != nil {
		return in, err
	}
	for _, row := range rows {
		in.PlasticLimit = append(in.PlasticLimit, atterberg.Row{
			CanID:        cell(row, 0),
			MassCan:      cell(row, 1),
			MassCanMoist: cell(row, 2),
			MassCanDry:   cell(row, 3),
		})
	}
	return in, nil
}

// ReadGravity reads the specific gravity sheet. Columns: boring no., sample
// no., depth, soil description, temperature, M1, M4, capacity. Blank rows
// are skipped.
func ReadGravity(f *excelize.File) ([]gravity.FormInput, error) {
	rows, err := dataRows(f, SheetGravity)
	if err != nil {
		return nil, err
	}
	var forms []gravity.FormInput
	for _, row := range rows {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		forms = append(forms, gravity.FormInput{
			BoringNo:        cell(row, 0),
			SampleNo:        cell(row, 1),
			SampleDepth:     cell(row, 2),
			SoilDescription: cell(row, 3),
			ObservedTemp:    cell(row, 4),
			M1:              cell(row, 5),
			M4:              cell(row, 6),
			Capacity:        cell(row, 7),
		})
	}
	return forms, nil
}

func dataRows(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
