// Package staff exposes directory and timetable maintenance over HTTP.
// This is plain form-over-store plumbing around the stores the planner
// reads.
package staff

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/schoolops/subplan/core/directory"
	"github.com/schoolops/subplan/core/model"
	"github.com/schoolops/subplan/core/timetable"
)

// Handler serves staff directory and timetable routes.
type Handler struct {
	directory  directory.Store
	timetables timetable.Store
}

func NewHandler(dir directory.Store, tts timetable.Store) *Handler {
	return &Handler{directory: dir, timetables: tts}
}

// Register attaches the staff routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/staff", h.handleStaff)
	mux.HandleFunc("/api/staff/", h.handleStaffItem)
}

func (h *Handler) handleStaff(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		all, err := h.directory.ListAll()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, all)
	case http.MethodPost:
		var m model.StaffMember
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := h.directory.Add(m); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleStaffItem routes /api/staff/{id} and /api/staff/{id}/timetable.
func (h *Handler) handleStaffItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/staff/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		http.Error(w, "staff id is required", http.StatusBadRequest)
		return
	}
	if len(parts) == 2 && parts[1] == "timetable" {
		h.handleTimetable(w, r, id)
		return
	}
	switch r.Method {
	case http.MethodGet:
		m, err := h.directory.Get(id)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, directory.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, m)
	case http.MethodPut:
		var m model.StaffMember
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		m.ID = id
		if err := h.directory.Update(m); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, directory.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		if err := h.directory.Remove(id); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, directory.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleTimetable(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		tt, err := h.timetables.Get(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, tt)
	case http.MethodPut:
		var tt model.Timetable
		if err := json.NewDecoder(r.Body).Decode(&tt); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := h.timetables.Set(id, tt); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
