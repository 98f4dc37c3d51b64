package gravity

import (
	"encoding/json"
	"net/http"

	"Geospace/internal/auth"
	"Geospace/internal/calc/calcerr"
)

type Handler struct {
	Sessions *Sessions
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input FormInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateForm(input)
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

type DensityResult struct {
	TemperatureC float64 `json:"temperature_c"`
	Density      float64 `json:"density"`
}

func (h *Handler) Density(w http.ResponseWriter, r *http.Request) {
	temp, err := parseField("temperature", r.URL.Query().Get("temp"))
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	d, err := Density(temp)
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DensityResult{TemperatureC: temp, Density: d})
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
	return userID, ok
}

type SamplesResponse struct {
	Count   int         `json:"count"`
	Samples []FormInput `json:"samples"`
}

// AddSample stores the form as typed; numbers are only checked on Calc.
func (h *Handler) AddSample(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	var input FormInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	sess := h.Sessions.For(userID)
	sess.Add(input)
	samples := sess.Samples()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SamplesResponse{Count: len(samples), Samples: samples})
}

func (h *Handler) ListSamples(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	samples := h.Sessions.Samples(userID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SamplesResponse{Count: len(samples), Samples: samples})
}

func (h *Handler) ClearSamples(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	h.Sessions.Clear(userID)
	w.WriteHeader(http.StatusNoContent)
}

type SamplesResult struct {
	Samples []FormInput `json:"samples"`
	Results []Result    `json:"results"`
}

func (h *Handler) CalcSamples(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	samples := h.Sessions.Samples(userID)
	if len(samples) == 0 {
		calcerr.Write(w, &calcerr.InsufficientDataError{What: "specific gravity", Need: 1})
		return
	}
	results, err := CalculateAll(samples)
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SamplesResult{Samples: samples, Results: results})
}
