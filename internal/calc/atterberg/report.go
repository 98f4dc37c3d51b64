package atterberg

import (
	"fmt"
	"strings"

	"Geospace/internal/project"
)

// Report renders the result as the tab-separated text sheet.
func Report(details project.Details, res Result) string {
	var b strings.Builder

	if fields := details.Fields(); len(fields) > 0 {
		b.WriteString("Project Details\n")
		for _, f := range fields {
			fmt.Fprintf(&b, "%s:\t%s\n", f.Label, f.Value)
		}
		b.WriteString("\n")
	}

	b.WriteString("Liquid Limit Analysis Results:\n")
	b.WriteString("Can No.\tWt. of Can+Moist\tWt. of Can+Dry\tWt. Dry soil\tWt. pore Water\tMoisture (%)\tBlow Count\n")
	for _, r := range res.LiquidRows {
		fmt.Fprintf(&b, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d\n",
			r.CanID, r.MassCanMoist, r.MassCanDry, r.DrySoil, r.PoreWater, r.MoistureContent, r.Blows)
	}

	b.WriteString("\nPlastic Limit Analysis Results:\n")
	b.WriteString("Can No.\tWt. of Can+Moist\tWt. of Can+Dry\tWt. Dry soil\tWt. pore Water\tMoisture (%)\n")
	for _, r := range res.PlasticRows {
		fmt.Fprintf(&b, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			r.CanID, r.MassCanMoist, r.MassCanDry, r.DrySoil, r.PoreWater, r.MoistureContent)
	}

	fmt.Fprintf(&b, "\nLiquid Limit (LL): %d%%\n", res.LiquidLimit)
	fmt.Fprintf(&b, "Plastic Limit (PL): %d%%\n", res.PlasticLimit)
	fmt.Fprintf(&b, "Plasticity Index (PI): %d%%\n", res.PlasticityIndex)
	fmt.Fprintf(&b, "\nSoil Type: %s\n", res.SoilType.Description())
	return b.String()
}
