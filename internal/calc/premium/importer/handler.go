package importer

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	atterberg "Geospace/internal/calc/atterberg"
	"Geospace/internal/calc/calcerr"
	gravity "Geospace/internal/calc/gravity"
	"Geospace/internal/project"
)

const maxUploadSize = 10 << 20

type Handler struct {
	Project func(r *http.Request) project.Details
}

func openUpload(w http.ResponseWriter, r *http.Request) (*excelize.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return nil, false
	}
	return f, true
}

func (h *Handler) Atterberg(w http.ResponseWriter, r *http.Request) {
	f, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer f.Close()

	input, err := ReadAtterberg(f)
	if err != nil {
		logrus.WithError(err).Warn("atterberg import failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := atterberg.CalculateInput(input)
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	var details project.Details
	if h.Project != nil {
		details = h.Project(r)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(atterberg.NewResponse(details, res))
}

type GravityImportResult struct {
	Count   int                 `json:"count"`
	Samples []gravity.FormInput `json:"samples"`
	Results []gravity.Result    `json:"results"`
}

func (h *Handler) Gravity(w http.ResponseWriter, r *http.Request) {
	f, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer f.Close()

	forms, err := ReadGravity(f)
	if err != nil {
		logrus.WithError(err).Warn("gravity import failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(forms) == 0 {
		calcerr.Write(w, &calcerr.InsufficientDataError{What: "specific gravity import", Need: 1})
		return
	}
	results, err := gravity.CalculateAll(forms)
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GravityImportResult{Count: len(results), Samples: forms, Results: results})
}
