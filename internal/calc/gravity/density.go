package gravity

import (
	"math"

	"Geospace/internal/calc/calcerr"
)

const (
	MinTemperatureC       = 15.0
	MaxTemperatureC       = 30.9
	ReferenceTemperatureC = 20.0
)

// waterDensity holds the density of water in g/ml from 15.0 to 30.9 °C in
// 0.1 °C steps.
var waterDensity = [160]float64{
	0.9991, 0.99909, 0.99907, 0.99906, 0.99904, 0.99902, 0.99901, 0.99899, 0.99898, 0.99896,
	0.99895, 0.99893, 0.99891, 0.9989, 0.99888, 0.99886, 0.99885, 0.99883, 0.99881, 0.99879,
	0.99878, 0.99876, 0.99874, 0.99872, 0.99871, 0.99869, 0.99867, 0.99865, 0.99863, 0.99862,
	0.9986, 0.99858, 0.99856, 0.99854, 0.99852, 0.9985, 0.99848, 0.99847, 0.99845, 0.99843,
	0.99841, 0.99839, 0.99837, 0.99835, 0.99833, 0.99831, 0.99829, 0.99827, 0.99825, 0.99823,
	0.99821, 0.99819, 0.99816, 0.99814, 0.99812, 0.9981, 0.99808, 0.99806, 0.99804, 0.99802,
	0.99799, 0.99797, 0.99795, 0.99793, 0.99791, 0.99789, 0.99786, 0.99784, 0.99782, 0.9978,
	0.99777, 0.99775, 0.99773, 0.9977, 0.99768, 0.99766, 0.99764, 0.99761, 0.99759, 0.99756,
	0.99754, 0.99752, 0.99749, 0.99747, 0.99745, 0.99742, 0.9974, 0.99737, 0.99735, 0.99732,
	0.9973, 0.99727, 0.99725, 0.99723, 0.9972, 0.99717, 0.99715, 0.99712, 0.9971, 0.99707,
	0.99705, 0.99702, 0.997, 0.99697, 0.99694, 0.99692, 0.99689, 0.99687, 0.99684, 0.99681,
	0.99679, 0.99676, 0.99673, 0.99671, 0.99668, 0.99665, 0.99663, 0.9966, 0.99657, 0.99654,
	0.99652, 0.99649, 0.99646, 0.99643, 0.99641, 0.99638, 0.99635, 0.99632, 0.99629, 0.99627,
	0.99624, 0.99621, 0.99618, 0.99615, 0.99612, 0.99609, 0.99607, 0.99604, 0.99601, 0.99598,
	0.99595, 0.99592, 0.99589, 0.99586, 0.99583, 0.9958, 0.99577, 0.99574, 0.99571, 0.99568,
	0.99565, 0.99562, 0.99559, 0.99556, 0.99553, 0.9955, 0.99547, 0.99544, 0.99541, 0.99538,
}

// indexEpsilon keeps temperatures typed to one decimal on their own row
// when (t-15)*10 lands just below an integer.
const indexEpsilon = 1e-9

// Density returns the tabulated density of water at tempC. The temperature
// is truncated to the 0.1 °C row below it.
func Density(tempC float64) (float64, error) {
	if math.IsNaN(tempC) || tempC < MinTemperatureC || tempC > MaxTemperatureC {
		return 0, &calcerr.OutOfRangeError{
			Quantity: "temperature (°C)",
			Value:    tempC,
			Min:      MinTemperatureC,
			Max:      MaxTemperatureC,
		}
	}
	i := int(math.Floor((tempC-MinTemperatureC)*10 + indexEpsilon))
	if i >= len(waterDensity) {
		i = len(waterDensity) - 1
	}
	return waterDensity[i], nil
}

// ReferenceDensity is the density of water at 20 °C.
func ReferenceDensity() float64 {
	d, _ := Density(ReferenceTemperatureC)
	return d
}
