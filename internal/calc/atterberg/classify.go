package atterberg

// SoilType is a zone of the Casagrande plasticity chart.
type SoilType string

const (
	SoilCLML SoilType = "CL-ML"
	SoilCLOL SoilType = "CL or OL"
	SoilMLOL SoilType = "ML or OL"
	SoilCHOH SoilType = "CH or OH"
	SoilMHOH SoilType = "MH or OH"
)

var soilDescriptions = map[SoilType]string{
	SoilCLML: "CL-ML (Intermediate Clay-Silt Soil)",
	SoilCLOL: "CL or OL (Clay or Organic Clay)",
	SoilMLOL: "ML or OL (Silt or Organic Silt)",
	SoilCHOH: "CH or OH (High Plastic Clay or Organic Clay)",
	SoilMHOH: "MH or OH (High Plastic Silt or Organic Silt)",
}

func (s SoilType) Description() string {
	if d, ok := soilDescriptions[s]; ok {
		return d
	}
	return string(s)
}

func (s SoilType) String() string { return s.Description() }

// ALine is the plasticity index on the Casagrande "A" line.
func ALine(ll float64) float64 { return 0.73 * (ll - 20) }

// ULine is the plasticity index on the upper limit "U" line.
func ULine(ll float64) float64 { return 0.9 * (ll - 8) }

// Classify places (LL, PI) on the plasticity chart. The CL-ML band is
// checked first and overrides the A-line split.
func Classify(ll, pi float64) SoilType {
	if pi >= 4 && pi <= 7 && ll >= 12 && ll <= 29.59 {
		return SoilCLML
	}
	a := ALine(ll)
	if ll < 50 {
		if pi > a {
			return SoilCLOL
		}
		return SoilMLOL
	}
	if pi > a {
		return SoilCHOH
	}
	return SoilMHOH
}
