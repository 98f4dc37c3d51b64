package batch

import (
	"encoding/json"
	"net/http"

	"Geospace/internal/calc/calcerr"
)

type Handler struct{}

func (h *Handler) Gravity(w http.ResponseWriter, r *http.Request) {
	var input GravityBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateGravity(input)
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
