package atterberg

import (
	"encoding/json"
	"net/http"

	"Geospace/internal/calc/calcerr"
	"Geospace/internal/project"
)

type Handler struct {
	// Project resolves the details printed in the report header. Optional.
	Project func(r *http.Request) project.Details
}

type Response struct {
	Result           Result           `json:"result"`
	Description      string           `json:"soil_description"`
	LiquidLimitChart LiquidLimitChart `json:"liquid_limit_chart"`
	PlasticityChart  PlasticityChart  `json:"plasticity_chart"`
	Report           string           `json:"report"`
}

// NewResponse bundles a result with its charts and text sheet.
func NewResponse(details project.Details, res Result) Response {
	return Response{
		Result:           res,
		Description:      res.SoilType.Description(),
		LiquidLimitChart: NewLiquidLimitChart(res.Curve, res.LiquidLimit),
		PlasticityChart:  NewPlasticityChart(float64(res.LiquidLimit), float64(res.PlasticityIndex), res.SoilType),
		Report:           Report(details, res),
	}
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateInput(input)
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	var details project.Details
	if h.Project != nil {
		details = h.Project(r)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NewResponse(details, res))
}

type ClassifyInput struct {
	LiquidLimit     *float64 `json:"liquid_limit"`
	PlasticityIndex *float64 `json:"plasticity_index"`
}

type ClassifyResult struct {
	SoilType        SoilType        `json:"soil_type"`
	Description     string          `json:"soil_description"`
	ALinePI         float64         `json:"a_line_pi"`
	PlasticityChart PlasticityChart `json:"plasticity_chart"`
}

// ClassifyLimits classifies limits computed elsewhere. Both values must be
// present.
func ClassifyLimits(in ClassifyInput) (ClassifyResult, error) {
	if in.LiquidLimit == nil || in.PlasticityIndex == nil {
		return ClassifyResult{}, &calcerr.PreconditionError{Msg: "Please calculate Liquid & Plastic Limits first."}
	}
	ll, pi := *in.LiquidLimit, *in.PlasticityIndex
	soil := Classify(ll, pi)
	return ClassifyResult{
		SoilType:        soil,
		Description:     soil.Description(),
		ALinePI:         ALine(ll),
		PlasticityChart: NewPlasticityChart(ll, pi, soil),
	}, nil
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var input ClassifyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := ClassifyLimits(input)
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
