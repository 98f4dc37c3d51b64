package report

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/sirupsen/logrus"

	atterberg "Geospace/internal/calc/atterberg"
	"Geospace/internal/calc/calcerr"
	batch "Geospace/internal/calc/premium/batch"
	"Geospace/internal/project"
)

type Handler struct {
	Project func(r *http.Request) project.Details
}

func (h *Handler) details(r *http.Request) project.Details {
	if h.Project == nil {
		return project.Details{}
	}
	return h.Project(r)
}

func (h *Handler) Atterberg(w http.ResponseWriter, r *http.Request) {
	var input atterberg.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := atterberg.CalculateInput(input)
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	writePDF(w, Atterberg(h.details(r), res, time.Now()), "atterberg.pdf")
}

func (h *Handler) Gravity(w http.ResponseWriter, r *http.Request) {
	var input batch.GravityBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := batch.CalculateGravity(input)
	if err != nil {
		calcerr.Write(w, err)
		return
	}
	writePDF(w, Gravity(h.details(r), input.Items, res.Results, time.Now()), "specific-gravity.pdf")
}

func writePDF(w http.ResponseWriter, pdf *gofpdf.Fpdf, name string) {
	if err := pdf.Error(); err != nil {
		logrus.WithError(err).Error("report generation failed")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	if err := pdf.Output(w); err != nil {
		logrus.WithError(err).Error("failed to write report")
	}
}
