package atterberg

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Line struct {
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

type Annotation struct {
	Text string `json:"text"`
	At   Point  `json:"at"`
}

type Axes struct {
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	XMin   float64 `json:"x_min"`
	XMax   float64 `json:"x_max"`
	YMin   float64 `json:"y_min"`
	YMax   float64 `json:"y_max"`
}

// LiquidLimitChart is the flow curve with the 25-blow reading.
type LiquidLimitChart struct {
	Title       string  `json:"title"`
	Axes        Axes    `json:"axes"`
	Series      Line    `json:"series"`
	ReferenceX  float64 `json:"reference_x"`
	LiquidLimit Point   `json:"liquid_limit"`
}

// PlasticityChart is the Casagrande chart with the tested sample plotted.
type PlasticityChart struct {
	Title      string       `json:"title"`
	Axes       Axes         `json:"axes"`
	ALine      Line         `json:"a_line"`
	ULine      Line         `json:"u_line"`
	Boundaries []Segment    `json:"boundaries"`
	LLBoundary float64      `json:"ll_boundary"`
	Labels     []Annotation `json:"labels"`
	Sample     Annotation   `json:"sample"`
}

const chartSamples = 20

func NewLiquidLimitChart(curve []Point, liquidLimit int) LiquidLimitChart {
	series := make([]Point, len(curve))
	copy(series, curve)

	axes := Axes{XLabel: "Blow Count", YLabel: "Moisture Content (%)"}
	for i, p := range series {
		if i == 0 || p.X < axes.XMin {
			axes.XMin = p.X
		}
		if i == 0 || p.X > axes.XMax {
			axes.XMax = p.X
		}
		if i == 0 || p.Y < axes.YMin {
			axes.YMin = p.Y
		}
		if i == 0 || p.Y > axes.YMax {
			axes.YMax = p.Y
		}
	}
	ll := Point{X: LiquidLimitBlows, Y: float64(liquidLimit)}
	axes.XMin = min(axes.XMin, ll.X)
	axes.XMax = max(axes.XMax, ll.X)
	axes.YMin = min(axes.YMin, ll.Y)
	axes.YMax = max(axes.YMax, ll.Y)

	return LiquidLimitChart{
		Title:       "Liquid Limit Analysis",
		Axes:        axes,
		Series:      Line{Label: "Moisture Content", Points: series},
		ReferenceX:  LiquidLimitBlows,
		LiquidLimit: ll,
	}
}

func NewPlasticityChart(ll, pi float64, soil SoilType) PlasticityChart {
	return PlasticityChart{
		Title: "Casagrande's Plasticity Chart",
		Axes: Axes{
			XLabel: "Liquid Limit, LL (%)",
			YLabel: "Plasticity Index, PI (%)",
			XMin:   0, XMax: 100,
			YMin: 0, YMax: 50,
		},
		ALine: Line{Label: `"A" Line`, Points: sampleLine(ALine, 10, 100)},
		ULine: Line{Label: `"U" Line`, Points: sampleLine(ULine, 8, 100)},
		Boundaries: []Segment{
			{From: Point{16, 7}, To: Point{29.59, 7}},
			{From: Point{12, 4}, To: Point{25.47, 4}},
		},
		LLBoundary: 50,
		Labels: []Annotation{
			{Text: string(SoilCLML), At: Point{16, 5}},
			{Text: string(SoilMLOL), At: Point{35, 5}},
			{Text: string(SoilCLOL), At: Point{38, 23}},
			{Text: string(SoilCHOH), At: Point{60, 40}},
			{Text: string(SoilMHOH), At: Point{65, 10}},
		},
		Sample: Annotation{Text: "Soil Sample (" + soil.Description() + ")", At: Point{ll, pi}},
	}
}

// sampleLine evaluates f at chartSamples evenly spaced points over [from, to].
func sampleLine(f func(float64) float64, from, to float64) []Point {
	pts := make([]Point, chartSamples)
	step := (to - from) / float64(chartSamples-1)
	for i := range pts {
		x := from + float64(i)*step
		if i == chartSamples-1 {
			x = to
		}
		pts[i] = Point{X: x, Y: f(x)}
	}
	return pts
}
