package atterberg

import (
	"errors"
	"math"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"Geospace/internal/calc/calcerr"
)

// llSample builds a sample on a zero-mass can with 100 g of dry soil, so the
// moisture content equals mc.
func llSample(can string, mc float64, blows int) LiquidLimitSample {
	return LiquidLimitSample{CanID: can, MassCan: 0, MassCanMoist: 100 + mc, MassCanDry: 100, Blows: blows}
}

func plSample(can string, mc float64) PlasticLimitSample {
	return PlasticLimitSample{CanID: can, MassCan: 0, MassCanMoist: 100 + mc, MassCanDry: 100}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{39.5, 40},
		{39.49, 39},
		{40, 40},
		{0, 0},
		{0.5, 1},
		{19.8, 20},
		{12.0000001, 12},
	}
	for _, tc := range cases {
		if got := RoundHalfUp(tc.in); got != tc.want {
			t.Errorf("RoundHalfUp(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoistureContent(t *testing.T) {
	s := LiquidLimitSample{CanID: "A", MassCan: 20, MassCanMoist: 50, MassCanDry: 40}
	if got := s.MoistureContent(); math.Abs(got-50) > 1e-9 {
		t.Errorf("MoistureContent() = %v, want 50", got)
	}
	dry := PlasticLimitSample{CanID: "B", MassCan: 20, MassCanMoist: 25, MassCanDry: 20}
	if got := dry.MoistureContent(); got != 0 {
		t.Errorf("zero dry soil should give 0, got %v", got)
	}
}

func TestInterpolate(t *testing.T) {
	cases := []struct {
		name string
		pts  []Point
		want float64
	}{
		{"inside", []Point{{15, 45}, {20, 42}, {30, 38}}, 40},
		{"extrapolate above", []Point{{10, 50}, {20, 40}}, 35},
		{"extrapolate below", []Point{{30, 38}, {40, 30}}, 42},
		{"exact point", []Point{{20, 41}, {25, 39}, {35, 30}}, 39},
		{"duplicate blows averaged", []Point{{20, 40}, {20, 44}, {30, 38}}, 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := interpolate(tc.pts, LiquidLimitBlows)
			if err != nil {
				t.Fatalf("interpolate: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("interpolate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEstimateLiquidLimit(t *testing.T) {
	samples := []LiquidLimitSample{
		llSample("C3", 38, 30),
		llSample("C1", 45, 15),
		llSample("C2", 42, 20),
	}
	ll, curve, err := EstimateLiquidLimit(samples)
	if err != nil {
		t.Fatalf("EstimateLiquidLimit: %v", err)
	}
	if ll != 40 {
		t.Errorf("liquid limit = %d, want 40", ll)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].X < curve[i-1].X {
			t.Fatalf("curve not sorted by blow count: %v", curve)
		}
	}
	if curve[0].X != 15 || curve[2].X != 30 {
		t.Errorf("unexpected curve %v", curve)
	}
}

func TestEstimateLiquidLimitSkipsBlankCan(t *testing.T) {
	samples := []LiquidLimitSample{
		llSample("C1", 45, 15),
		llSample("  ", 10, 25),
		llSample("C3", 38, 30),
	}
	ll, curve, err := EstimateLiquidLimit(samples)
	if err != nil {
		t.Fatalf("EstimateLiquidLimit: %v", err)
	}
	if len(curve) != 2 {
		t.Fatalf("blank can should be skipped, curve = %v", curve)
	}
	// 45 + (38-45) * (10/15)
	if ll != 40 {
		t.Errorf("liquid limit = %d, want 40", ll)
	}
}

func TestEstimateLiquidLimitInsufficient(t *testing.T) {
	cases := []struct {
		name    string
		samples []LiquidLimitSample
	}{
		{"none", nil},
		{"one", []LiquidLimitSample{llSample("C1", 45, 15)}},
		{"one entered", []LiquidLimitSample{llSample("C1", 45, 15), llSample("", 40, 30)}},
		{"same blows", []LiquidLimitSample{llSample("C1", 45, 20), llSample("C2", 41, 20)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := EstimateLiquidLimit(tc.samples)
			var target *calcerr.InsufficientDataError
			if !errors.As(err, &target) {
				t.Fatalf("expected InsufficientDataError, got %v", err)
			}
		})
	}
}

func TestEstimatePlasticLimit(t *testing.T) {
	pl, err := EstimatePlasticLimit([]PlasticLimitSample{plSample("P1", 22.3), plSample("P2", 19.8)})
	if err != nil {
		t.Fatalf("EstimatePlasticLimit: %v", err)
	}
	if pl != 20 {
		t.Errorf("plastic limit = %d, want 20", pl)
	}

	_, err = EstimatePlasticLimit([]PlasticLimitSample{plSample("", 22.3)})
	var target *calcerr.InsufficientDataError
	if !errors.As(err, &target) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}

func testSamples() ([]LiquidLimitSample, []PlasticLimitSample) {
	return []LiquidLimitSample{
			llSample("C1", 45, 15),
			llSample("C2", 42, 20),
			llSample("C3", 38, 30),
		}, []PlasticLimitSample{
			plSample("P1", 22.3),
			plSample("P2", 19.8),
		}
}

func TestCalculate(t *testing.T) {
	ll, pl := testSamples()
	res, err := Calculate(ll, pl)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.LiquidLimit != 40 || res.PlasticLimit != 20 || res.PlasticityIndex != 20 {
		t.Errorf("unexpected limits %+v", res)
	}
	if res.PlasticityIndex != res.LiquidLimit-res.PlasticLimit {
		t.Errorf("PI must equal LL - PL")
	}
	if res.SoilType != SoilCLOL {
		t.Errorf("soil type = %q, want %q", res.SoilType, SoilCLOL)
	}
	if len(res.LiquidRows) != 3 || len(res.PlasticRows) != 2 {
		t.Errorf("unexpected rows %d/%d", len(res.LiquidRows), len(res.PlasticRows))
	}
}

func TestCalculateIdempotent(t *testing.T) {
	ll, pl := testSamples()
	first, err := Calculate(ll, pl)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	second, err := Calculate(ll, pl)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between identical calls:\n%+v\n%+v", first, second)
	}
}

func TestCalculateMissingPlasticLimit(t *testing.T) {
	ll, _ := testSamples()
	_, err := Calculate(ll, nil)
	var target *calcerr.InsufficientDataError
	if !errors.As(err, &target) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if !strings.Contains(err.Error(), "plastic limit") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestInputParse(t *testing.T) {
	in := Input{
		LiquidLimit: []Row{
			{CanID: "C1", MassCan: "20", MassCanMoist: "52.5", MassCanDry: "42", Blows: "15"},
			{CanID: "", MassCan: "x", MassCanMoist: "y", MassCanDry: "z", Blows: "?"},
			{CanID: " C3 ", MassCan: " 20 ", MassCanMoist: "50", MassCanDry: "42", Blows: "32"},
		},
		PlasticLimit: []Row{
			{CanID: "P1", MassCan: "10", MassCanMoist: "22", MassCanDry: "20"},
		},
	}
	ll, pl, err := in.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ll) != 2 || len(pl) != 1 {
		t.Fatalf("unexpected sample counts %d/%d", len(ll), len(pl))
	}
	if ll[1].CanID != "C3" || ll[1].MassCan != 20 || ll[1].Blows != 32 {
		t.Errorf("unexpected sample %+v", ll[1])
	}
}

func TestInputParseInvalid(t *testing.T) {
	cases := []struct {
		name  string
		in    Input
		field string
	}{
		{"mass", Input{LiquidLimit: []Row{{CanID: "C1", MassCan: "abc", MassCanMoist: "1", MassCanDry: "1", Blows: "10"}}}, "weight of clean can"},
		{"blows", Input{LiquidLimit: []Row{{CanID: "C1", MassCan: "1", MassCanMoist: "1", MassCanDry: "1", Blows: "12.5"}}}, "blow count"},
		{"plastic", Input{PlasticLimit: []Row{{CanID: "P1", MassCan: "1", MassCanMoist: "1", MassCanDry: ""}}}, "weight of can + dry soil"},
		{"nan", Input{LiquidLimit: []Row{{CanID: "C1", MassCan: "NaN", MassCanMoist: "1", MassCanDry: "1", Blows: "10"}}}, "weight of clean can"},
		{"inf", Input{PlasticLimit: []Row{{CanID: "P1", MassCan: "1", MassCanMoist: "+Inf", MassCanDry: "1"}}}, "weight of can + moist soil"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.in.Parse()
			var target *calcerr.InvalidMeasurementError
			if !errors.As(err, &target) {
				t.Fatalf("expected InvalidMeasurementError, got %v", err)
			}
			if target.Field != tc.field {
				t.Errorf("field = %q, want %q", target.Field, tc.field)
			}
		})
	}
}

func TestCalculateInputRejectsNonFinite(t *testing.T) {
	in := Input{
		LiquidLimit: []Row{
			{CanID: "C1", MassCan: "NaN", MassCanMoist: "145", MassCanDry: "100", Blows: "15"},
			{CanID: "C2", MassCan: "0", MassCanMoist: "142", MassCanDry: "100", Blows: "30"},
		},
		PlasticLimit: []Row{{CanID: "P1", MassCan: "0", MassCanMoist: "122.3", MassCanDry: "-Inf"}},
	}
	_, err := CalculateInput(in)
	if !errors.Is(err, calcerr.ErrNotFinite) {
		t.Fatalf("expected ErrNotFinite, got %v", err)
	}
	if calcerr.StatusCode(err) != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", calcerr.StatusCode(err))
	}
}
