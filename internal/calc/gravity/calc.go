// Package gravity computes the specific gravity of soil solids by the
// pycnometer method.
package gravity

import (
	"math"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"Geospace/internal/calc/calcerr"
)

type SoilDescription string

const (
	ClayeySilt SoilDescription = "Clayey Silt"
	SiltySand  SoilDescription = "Silty Sand"
	Other      SoilDescription = "Other"
)

// SoilMass is the mass of oven-dry soil (gm) put into the pycnometer for
// the described soil. Unrecognised descriptions use the Other mass.
func (d SoilDescription) SoilMass() float64 {
	switch SoilDescription(strings.TrimSpace(string(d))) {
	case ClayeySilt:
		return 40
	case SiltySand:
		return 50
	case Other:
		return 35
	default:
		logrus.WithField("soil_description", string(d)).Debug("unknown soil description, using default soil mass")
		return 35
	}
}

type Sample struct {
	M1              float64         `json:"m1"`
	M4              float64         `json:"m4"`
	ObservedTempC   float64         `json:"observed_temp_c"`
	CapacityML      float64         `json:"capacity_ml"`
	SoilDescription SoilDescription `json:"soil_description"`
}

// FormInput is one sample as typed into the form. Boring, sample and depth
// are carried for display only.
type FormInput struct {
	BoringNo        string `json:"boring_no"`
	SampleNo        string `json:"sample_no"`
	SampleDepth     string `json:"sample_depth"`
	SoilDescription string `json:"soil_description"`
	ObservedTemp    string `json:"observed_temp"`
	M1              string `json:"m1"`
	M4              string `json:"m4"`
	Capacity        string `json:"capacity"`
}

type Result struct {
	SoilDescription  SoilDescription `json:"soil_description"`
	ObservedTempC    float64         `json:"observed_temp_c"`
	CapacityML       float64         `json:"capacity_ml"`
	M1               float64         `json:"m1"`
	M2               float64         `json:"m2"`
	M3               float64         `json:"m3"`
	M4               float64         `json:"m4"`
	DensityObserved  float64         `json:"density_observed"`
	DensityReference float64         `json:"density_reference"`
	GTX              float64         `json:"gtx"`
	G20              float64         `json:"g20"`
}

func Calculate(s Sample) (Result, error) {
	density, err := Density(s.ObservedTempC)
	if err != nil {
		return Result{}, err
	}
	reference, err := Density(ReferenceTemperatureC)
	if err != nil {
		return Result{}, err
	}

	m2 := s.M1 + s.SoilDescription.SoilMass()
	m3 := s.M1 + s.CapacityML*density

	denominator := (m2 - s.M1) + (m3 - s.M4)
	if denominator == 0 {
		return Result{}, &calcerr.DivisionByZeroError{Quantity: "specific gravity (M2-M1)+(M3-M4)"}
	}
	gtx := (m2 - s.M1) / denominator

	return Result{
		SoilDescription:  s.SoilDescription,
		ObservedTempC:    s.ObservedTempC,
		CapacityML:       s.CapacityML,
		M1:               s.M1,
		M2:               m2,
		M3:               m3,
		M4:               s.M4,
		DensityObserved:  density,
		DensityReference: reference,
		GTX:              gtx,
		G20:              gtx * reference,
	}, nil
}

func (f FormInput) Parse() (Sample, error) {
	var (
		s   Sample
		err error
	)
	if s.M1, err = parseField("weight of pycnometer (M1)", f.M1); err != nil {
		return Sample{}, err
	}
	if s.M4, err = parseField("weight of pycnometer + soil + water (M4)", f.M4); err != nil {
		return Sample{}, err
	}
	if s.ObservedTempC, err = parseField("observed temperature", f.ObservedTemp); err != nil {
		return Sample{}, err
	}
	if s.CapacityML, err = parseField("pycnometer capacity", f.Capacity); err != nil {
		return Sample{}, err
	}
	s.SoilDescription = SoilDescription(strings.TrimSpace(f.SoilDescription))
	return s, nil
}

func parseField(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &calcerr.InvalidMeasurementError{Field: name, Value: value, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &calcerr.InvalidMeasurementError{Field: name, Value: value, Err: calcerr.ErrNotFinite}
	}
	return v, nil
}

// CalculateForm parses and calculates one form.
func CalculateForm(f FormInput) (Result, error) {
	s, err := f.Parse()
	if err != nil {
		return Result{}, err
	}
	return Calculate(s)
}

// CalculateAll calculates every form in order and stops at the first
// failure, naming the sample that caused it.
func CalculateAll(forms []FormInput) ([]Result, error) {
	out := make([]Result, 0, len(forms))
	for i, f := range forms {
		res, err := CalculateForm(f)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "sample %d", i+1)
		}
		out = append(out, res)
	}
	return out, nil
}
