package atterberg

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Geospace/internal/project"
)

const calcBody = `{
	"liquid_limit": [
		{"can_id": "C1", "mass_can": "0", "mass_can_moist": "145", "mass_can_dry": "100", "blows": "15"},
		{"can_id": "C2", "mass_can": "0", "mass_can_moist": "142", "mass_can_dry": "100", "blows": "20"},
		{"can_id": "C3", "mass_can": "0", "mass_can_moist": "138", "mass_can_dry": "100", "blows": "30"}
	],
	"plastic_limit": [
		{"can_id": "P1", "mass_can": "0", "mass_can_moist": "122.3", "mass_can_dry": "100"},
		{"can_id": "P2", "mass_can": "0", "mass_can_moist": "119.8", "mass_can_dry": "100"}
	]
}`

func TestHandlerCalc(t *testing.T) {
	h := &Handler{Project: func(*http.Request) project.Details {
		return project.Details{Project: "Bridge pier", BoringNo: "BH-2"}
	}}
	req := httptest.NewRequest(http.MethodPost, "/tools/atterberg/calc", strings.NewReader(calcBody))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result.LiquidLimit != 40 || resp.Result.PlasticLimit != 20 {
		t.Errorf("unexpected result %+v", resp.Result)
	}
	if !strings.Contains(resp.Report, "Project:\tBridge pier") {
		t.Errorf("report is missing project details:\n%s", resp.Report)
	}
	if !strings.Contains(resp.Report, "C1\t145.00\t100.00\t100.00\t45.00\t45.00\t15") {
		t.Errorf("report is missing sample row:\n%s", resp.Report)
	}
	if !strings.Contains(resp.Report, "Soil Type: CL or OL (Clay or Organic Clay)") {
		t.Errorf("report is missing soil type:\n%s", resp.Report)
	}
	if resp.PlasticityChart.Sample.At != (Point{40, 20}) {
		t.Errorf("unexpected sample point %+v", resp.PlasticityChart.Sample)
	}
}

func TestHandlerCalcErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"bad number", `{"liquid_limit":[{"can_id":"C1","mass_can":"a","mass_can_moist":"1","mass_can_dry":"1","blows":"1"}]}`, http.StatusBadRequest},
		{"no samples", `{}`, http.StatusUnprocessableEntity},
	}
	h := &Handler{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body)))
			if rec.Code != tc.code {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tc.code, rec.Body.String())
			}
		})
	}
}

func TestHandlerClassify(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.Classify(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"liquid_limit": 25, "plasticity_index": 6}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res ClassifyResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.SoilType != SoilCLML {
		t.Errorf("soil type = %q, want %q", res.SoilType, SoilCLML)
	}

	rec = httptest.NewRecorder()
	h.Classify(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"liquid_limit": 25}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rec.Body.String(), "calculate Liquid & Plastic Limits first") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}
