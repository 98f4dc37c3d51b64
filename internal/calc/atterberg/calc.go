package atterberg

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"Geospace/internal/calc/calcerr"
)

// LiquidLimitBlows is the blow count at which the liquid limit is read off
// the flow curve.
const LiquidLimitBlows = 25.0

type LiquidLimitSample struct {
	CanID        string  `json:"can_id"`
	MassCan      float64 `json:"mass_can"`
	MassCanMoist float64 `json:"mass_can_moist"`
	MassCanDry   float64 `json:"mass_can_dry"`
	Blows        int     `json:"blows"`
}

type PlasticLimitSample struct {
	CanID        string  `json:"can_id"`
	MassCan      float64 `json:"mass_can"`
	MassCanMoist float64 `json:"mass_can_moist"`
	MassCanDry   float64 `json:"mass_can_dry"`
}

// Row is one line of the data-entry form as typed by the user. Blows is
// ignored for plastic limit rows.
type Row struct {
	CanID        string `json:"can_id"`
	MassCan      string `json:"mass_can"`
	MassCanMoist string `json:"mass_can_moist"`
	MassCanDry   string `json:"mass_can_dry"`
	Blows        string `json:"blows,omitempty"`
}

type Input struct {
	LiquidLimit  []Row `json:"liquid_limit"`
	PlasticLimit []Row `json:"plastic_limit"`
}

// SampleRow is a sample together with its derived masses, as reported.
type SampleRow struct {
	CanID           string  `json:"can_id"`
	MassCanMoist    float64 `json:"mass_can_moist"`
	MassCanDry      float64 `json:"mass_can_dry"`
	DrySoil         float64 `json:"dry_soil"`
	PoreWater       float64 `json:"pore_water"`
	MoistureContent float64 `json:"moisture_content"`
	Blows           int     `json:"blows,omitempty"`
}

type Result struct {
	LiquidLimit     int         `json:"liquid_limit"`
	PlasticLimit    int         `json:"plastic_limit"`
	PlasticityIndex int         `json:"plasticity_index"`
	SoilType        SoilType    `json:"soil_type"`
	Curve           []Point     `json:"ll_curve"`
	LiquidRows      []SampleRow `json:"liquid_rows"`
	PlasticRows     []SampleRow `json:"plastic_rows"`
}

// moisture returns dry soil mass, pore water mass and moisture content in
// percent. Moisture content is 0 when there is no dry soil.
func moisture(massCan, massMoist, massDry float64) (drySoil, poreWater, mc float64) {
	drySoil = massDry - massCan
	poreWater = massMoist - massDry
	if drySoil != 0 {
		mc = poreWater / drySoil * 100
	}
	return drySoil, poreWater, mc
}

func (s LiquidLimitSample) MoistureContent() float64 {
	_, _, mc := moisture(s.MassCan, s.MassCanMoist, s.MassCanDry)
	return mc
}

func (s PlasticLimitSample) MoistureContent() float64 {
	_, _, mc := moisture(s.MassCan, s.MassCanMoist, s.MassCanDry)
	return mc
}

func (s LiquidLimitSample) row() SampleRow {
	dry, water, mc := moisture(s.MassCan, s.MassCanMoist, s.MassCanDry)
	return SampleRow{
		CanID:           s.CanID,
		MassCanMoist:    s.MassCanMoist,
		MassCanDry:      s.MassCanDry,
		DrySoil:         dry,
		PoreWater:       water,
		MoistureContent: mc,
		Blows:           s.Blows,
	}
}

func (s PlasticLimitSample) row() SampleRow {
	dry, water, mc := moisture(s.MassCan, s.MassCanMoist, s.MassCanDry)
	return SampleRow{
		CanID:           s.CanID,
		MassCanMoist:    s.MassCanMoist,
		MassCanDry:      s.MassCanDry,
		DrySoil:         dry,
		PoreWater:       water,
		MoistureContent: mc,
	}
}

func entered(canID string) bool {
	return strings.TrimSpace(canID) != ""
}

// RoundHalfUp truncates v and adds one when the dropped fraction is at
// least one half.
func RoundHalfUp(v float64) int {
	t := math.Trunc(v)
	if v-t >= 0.5 {
		return int(t) + 1
	}
	return int(t)
}

// EstimateLiquidLimit interpolates the flow curve at 25 blows. Samples with
// a blank can number are skipped. The returned curve is sorted by blow count.
func EstimateLiquidLimit(samples []LiquidLimitSample) (int, []Point, error) {
	var curve []Point
	for _, s := range samples {
		if !entered(s.CanID) {
			continue
		}
		curve = append(curve, Point{X: float64(s.Blows), Y: s.MoistureContent()})
	}
	if len(curve) < 2 {
		return 0, nil, &calcerr.InsufficientDataError{What: "liquid limit", Have: len(curve), Need: 2}
	}
	sort.SliceStable(curve, func(i, j int) bool { return curve[i].X < curve[j].X })

	v, err := interpolate(curve, LiquidLimitBlows)
	if err != nil {
		return 0, nil, err
	}
	return RoundHalfUp(v), curve, nil
}

// interpolate evaluates the piecewise linear curve through pts (sorted by X)
// at x, extending the end segments outside the observed range. Points that
// share an X are averaged into one.
func interpolate(pts []Point, x float64) (float64, error) {
	var xs, ys []float64
	for i := 0; i < len(pts); {
		j, sum := i, 0.0
		for ; j < len(pts) && pts[j].X == pts[i].X; j++ {
			sum += pts[j].Y
		}
		xs = append(xs, pts[i].X)
		ys = append(ys, sum/float64(j-i))
		i = j
	}
	if len(xs) < 2 {
		return 0, &calcerr.InsufficientDataError{What: "liquid limit interpolation (distinct blow counts)", Have: len(xs), Need: 2}
	}

	i := sort.SearchFloat64s(xs, x)
	if i < 1 {
		i = 1
	}
	if i > len(xs)-1 {
		i = len(xs) - 1
	}
	x0, x1 := xs[i-1], xs[i]
	y0, y1 := ys[i-1], ys[i]
	return y0 + (x-x0)*(y1-y0)/(x1-x0), nil
}

// EstimatePlasticLimit is the smallest moisture content among the entered
// samples.
func EstimatePlasticLimit(samples []PlasticLimitSample) (int, error) {
	lowest, n := 0.0, 0
	for _, s := range samples {
		if !entered(s.CanID) {
			continue
		}
		mc := s.MoistureContent()
		if n == 0 || mc < lowest {
			lowest = mc
		}
		n++
	}
	if n == 0 {
		return 0, &calcerr.InsufficientDataError{What: "plastic limit", Need: 1}
	}
	return RoundHalfUp(lowest), nil
}

// Calculate runs the whole test: liquid limit, plastic limit, plasticity
// index and classification.
func Calculate(ll []LiquidLimitSample, pl []PlasticLimitSample) (Result, error) {
	liquid, curve, err := EstimateLiquidLimit(ll)
	if err != nil {
		return Result{}, err
	}
	plastic, err := EstimatePlasticLimit(pl)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		LiquidLimit:     liquid,
		PlasticLimit:    plastic,
		PlasticityIndex: liquid - plastic,
		Curve:           curve,
	}
	res.SoilType = Classify(float64(res.LiquidLimit), float64(res.PlasticityIndex))
	for _, s := range ll {
		if entered(s.CanID) {
			res.LiquidRows = append(res.LiquidRows, s.row())
		}
	}
	for _, s := range pl {
		if entered(s.CanID) {
			res.PlasticRows = append(res.PlasticRows, s.row())
		}
	}
	return res, nil
}

// Parse converts the form rows into samples. Rows with a blank can number
// are dropped before their numbers are read.
func (in Input) Parse() ([]LiquidLimitSample, []PlasticLimitSample, error) {
	var ll []LiquidLimitSample
	for _, r := range in.LiquidLimit {
		if !entered(r.CanID) {
			continue
		}
		s, err := r.LiquidLimitSample()
		if err != nil {
			return nil, nil, err
		}
		ll = append(ll, s)
	}
	var pl []PlasticLimitSample
	for _, r := range in.PlasticLimit {
		if !entered(r.CanID) {
			continue
		}
		s, err := r.PlasticLimitSample()
		if err != nil {
			return nil, nil, err
		}
		pl = append(pl, s)
	}
	return ll, pl, nil
}

// CalculateInput parses the form and runs Calculate.
func CalculateInput(in Input) (Result, error) {
	ll, pl, err := in.Parse()
	if err != nil {
		return Result{}, err
	}
	return Calculate(ll, pl)
}

func (r Row) masses() (can, moist, dry float64, err error) {
	if can, err = parseFloat("weight of clean can", r.MassCan); err != nil {
		return
	}
	if moist, err = parseFloat("weight of can + moist soil", r.MassCanMoist); err != nil {
		return
	}
	dry, err = parseFloat("weight of can + dry soil", r.MassCanDry)
	return
}

func (r Row) LiquidLimitSample() (LiquidLimitSample, error) {
	can, moist, dry, err := r.masses()
	if err != nil {
		return LiquidLimitSample{}, err
	}
	blows, err := strconv.Atoi(strings.TrimSpace(r.Blows))
	if err != nil {
		return LiquidLimitSample{}, &calcerr.InvalidMeasurementError{Field: "blow count", Value: r.Blows, Err: err}
	}
	return LiquidLimitSample{
		CanID:        strings.TrimSpace(r.CanID),
		MassCan:      can,
		MassCanMoist: moist,
		MassCanDry:   dry,
		Blows:        blows,
	}, nil
}

func (r Row) PlasticLimitSample() (PlasticLimitSample, error) {
	can, moist, dry, err := r.masses()
	if err != nil {
		return PlasticLimitSample{}, err
	}
	return PlasticLimitSample{
		CanID:        strings.TrimSpace(r.CanID),
		MassCan:      can,
		MassCanMoist: moist,
		MassCanDry:   dry,
	}, nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &calcerr.InvalidMeasurementError{Field: field, Value: s, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &calcerr.InvalidMeasurementError{Field: field, Value: s, Err: calcerr.ErrNotFinite}
	}
	return v, nil
}
