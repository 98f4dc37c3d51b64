package report

import (
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	atterberg "Geospace/internal/calc/atterberg"
	gravity "Geospace/internal/calc/gravity"
	"Geospace/internal/project"
)

func newSheet(title string, details project.Details, now time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	for _, f := range details.Fields() {
		pdf.Cell(0, 5, fmt.Sprintf("%s: %s", f.Label, f.Value))
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, fmt.Sprintf("Printed: %s", now.Format("2006-01-02")))
	pdf.Ln(8)
	return pdf
}

func table(pdf *gofpdf.Fpdf, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 8)
	for i, h := range header {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		for i, v := range row {
			pdf.CellFormat(widths[i], 5, v, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// Atterberg renders the Atterberg limits sheet with both charts.
func Atterberg(details project.Details, res atterberg.Result, now time.Time) *gofpdf.Fpdf {
	pdf := newSheet("Atterberg Limits", details, now)

	widths := []float64{20, 28, 28, 26, 26, 26, 20}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Liquid Limit Analysis")
	pdf.Ln(7)
	var rows [][]string
	for _, r := range res.LiquidRows {
		rows = append(rows, []string{r.CanID, f2(r.MassCanMoist), f2(r.MassCanDry), f2(r.DrySoil), f2(r.PoreWater), f2(r.MoistureContent), fmt.Sprint(r.Blows)})
	}
	table(pdf, widths, []string{"Can No.", "Can+Moist (gm)", "Can+Dry (gm)", "Dry soil (gm)", "Pore water (gm)", "Moisture (%)", "Blows"}, rows)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Plastic Limit Analysis")
	pdf.Ln(7)
	rows = rows[:0]
	for _, r := range res.PlasticRows {
		rows = append(rows, []string{r.CanID, f2(r.MassCanMoist), f2(r.MassCanDry), f2(r.DrySoil), f2(r.PoreWater), f2(r.MoistureContent)})
	}
	table(pdf, widths[:6], []string{"Can No.", "Can+Moist (gm)", "Can+Dry (gm)", "Dry soil (gm)", "Pore water (gm)", "Moisture (%)"}, rows)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Liquid Limit (LL): %d%%", res.LiquidLimit),
		fmt.Sprintf("Plastic Limit (PL): %d%%", res.PlasticLimit),
		fmt.Sprintf("Plasticity Index (PI): %d%%", res.PlasticityIndex),
		fmt.Sprintf("Soil Type: %s", res.SoilType.Description()),
	} {
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}

	top := pdf.GetY() + 6
	drawLiquidLimitChart(pdf, 18, top, 80, 60, atterberg.NewLiquidLimitChart(res.Curve, res.LiquidLimit))
	drawPlasticityChart(pdf, 112, top, 80, 60,
		atterberg.NewPlasticityChart(float64(res.LiquidLimit), float64(res.PlasticityIndex), res.SoilType))
	return pdf
}

// Gravity renders one parameter table per sample.
func Gravity(details project.Details, forms []gravity.FormInput, results []gravity.Result, now time.Time) *gofpdf.Fpdf {
	pdf := newSheet("Specific Gravity of Soil", details, now)
	widths := []float64{100, 20, 50}
	for i, res := range results {
		var form gravity.FormInput
		if i < len(forms) {
			form = forms[i]
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Sample %d", i+1))
		pdf.Ln(7)
		table(pdf, widths, []string{"Parameter", "Unit", "Value"}, [][]string{
			{"Boring No.", "", form.BoringNo},
			{"Sample No.", "", form.SampleNo},
			{"Sample Depth (m)", "", form.SampleDepth},
			{"Soil Description", "", string(res.SoilDescription)},
			{"Observed Temperature (T1 deg C)", "", fmt.Sprintf("%.1f", res.ObservedTempC)},
			{"Pycnometer Capacity (ml)", "", f2(res.CapacityML)},
			{"Weight of pycnometer (gm)", "M1", f2(res.M1)},
			{"Weight of pycnometer + Soil (gm)", "M2", f2(res.M2)},
			{"Weight of pycnometer + Water (gm)", "M3", f2(res.M3)},
			{"Weight of pycnometer + Soil + Water (gm)", "M4", f2(res.M4)},
			{"Specific Gravity of Soil", "GTX", fmt.Sprintf("%.3f", res.GTX)},
			{"Specific Gravity (20 deg C)", "G20", fmt.Sprintf("%.3f", res.G20)},
		})
	}
	return pdf
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }
