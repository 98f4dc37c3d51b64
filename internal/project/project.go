// Package project keeps the project details shown on every lab sheet.
package project

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"Geospace/internal/auth"
)

type Details struct {
	Project  string `json:"project"`
	Client   string `json:"client"`
	Location string `json:"location"`
	BoringNo string `json:"boring_no"`
	SampleNo string `json:"sample_no"`
	DepthM   string `json:"depth_m"`
	TestedBy string `json:"tested_by"`
	Date     string `json:"date"`
}

type Field struct {
	Label string
	Value string
}

// Fields lists the filled-in details in display order.
func (d Details) Fields() []Field {
	all := []Field{
		{"Project", d.Project},
		{"Client", d.Client},
		{"Location", d.Location},
		{"Boring No.", d.BoringNo},
		{"Sample No.", d.SampleNo},
		{"Depth (m)", d.DepthM},
		{"Tested by", d.TestedBy},
		{"Date", d.Date},
	}
	out := all[:0]
	for _, f := range all {
		if strings.TrimSpace(f.Value) != "" {
			out = append(out, f)
		}
	}
	return out
}

type Store interface {
	GetProject(ctx context.Context, userID int) (Details, error)
	SaveProject(ctx context.Context, userID int, d Details) error
}

type Handler struct {
	Store Store
}

// Current returns the requesting user's project details, or empty details
// when there are none.
func (h *Handler) Current(r *http.Request) Details {
	if h == nil || h.Store == nil {
		return Details{}
	}
	userID, ok := auth.UserID(r.Context())
	if !ok {
		return Details{}
	}
	d, err := h.Store.GetProject(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user", userID).Warn("failed to load project details")
		return Details{}
	}
	return d
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	d, err := h.Store.GetProject(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("GetProject failed")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var d Details
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.Store.SaveProject(r.Context(), userID, d); err != nil {
		logrus.WithError(err).Error("SaveProject failed")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
