// Package plan exposes the planning engine over HTTP. The handler keeps
// the latest run in memory the way the original operator screen kept its
// session: reselect and text rendering act on that run until the next one
// replaces it.
package plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/schoolops/subplan/core/directory"
	"github.com/schoolops/subplan/core/events"
	"github.com/schoolops/subplan/core/history"
	"github.com/schoolops/subplan/core/logger"
	"github.com/schoolops/subplan/core/model"
	coreplan "github.com/schoolops/subplan/core/plan"
	"github.com/schoolops/subplan/internal/eventbus"
)

// Handler serves planning requests and overrides.
type Handler struct {
	planner   *coreplan.Planner
	directory directory.Store
	history   history.Store
	log       logger.Logger
	bus       eventbus.EventBus

	mu      sync.Mutex
	current *coreplan.Result
}

// NewHandler creates the plan API handler. History and bus are optional.
func NewHandler(planner *coreplan.Planner, dir directory.Store, hist history.Store, log logger.Logger, bus eventbus.EventBus) *Handler {
	return &Handler{planner: planner, directory: dir, history: hist, log: log, bus: bus}
}

// Register attaches the plan routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/plan", h.handlePlan)
	mux.HandleFunc("/api/plan/reselect", h.handleReselect)
	mux.HandleFunc("/api/plan/text", h.handleText)
	mux.HandleFunc("/api/plan/report", h.handleReport)
}

type planRequest struct {
	Date   string   `json:"date"`
	Absent []string `json:"absent"`
}

func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	absent := make([]model.StaffMember, 0, len(req.Absent))
	for _, code := range req.Absent {
		m, err := h.directory.FindByCode(code)
		if err != nil {
			if errors.Is(err, directory.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		absent = append(absent, m)
	}

	res, err := h.planner.Plan(r.Context(), model.AbsenceRequest{Date: req.Date, Absent: absent})
	if err != nil {
		var invalid *coreplan.InvalidDateError
		switch {
		case errors.As(err, &invalid), errors.Is(err, coreplan.ErrEmptyAbsenceList):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.log.Errorf("plan run failed: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if h.history != nil {
		if err := h.history.RecordRun(r.Context(), runRecord(res)); err != nil {
			// The plan itself succeeded; history is best effort here.
			h.log.Warnf("record run %s: %v", res.RunID, err)
		}
	}

	h.mu.Lock()
	h.current = res
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type reselectRequest struct {
	SlotKey      string `json:"slot_key"`
	SubstituteID string `json:"substitute_id"`
}

func (h *Handler) handleReselect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req reselectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		http.Error(w, "no plan has been generated", http.StatusConflict)
		return
	}
	var from string
	if slot, ok := h.current.Slots[req.SlotKey]; ok {
		if sel := slot.SelectedCandidate(); sel != nil {
			from = sel.SubstituteID
		}
	}
	if err := h.current.Reselect(req.SlotKey, req.SubstituteID); err != nil {
		switch {
		case errors.Is(err, coreplan.ErrUnknownSlot), errors.Is(err, coreplan.ErrUnknownCandidate):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	if h.bus != nil {
		h.bus.Publish(events.SlotReassignedEvent{
			RunID:   h.current.RunID,
			SlotKey: req.SlotKey,
			From:    from,
			To:      req.SubstituteID,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.current); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) handleText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		http.Error(w, "no plan has been generated", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(coreplan.Render(h.current))); err != nil {
		h.log.Errorf("write plan text: %v", err)
	}
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		http.Error(w, "no plan has been generated", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(coreplan.Report(h.current)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func runRecord(res *coreplan.Result) history.RunRecord {
	rec := history.RunRecord{RunID: res.RunID, Date: res.Date}
	for _, key := range res.SlotOrder {
		slot := res.Slots[key]
		sel := slot.SelectedCandidate()
		if sel == nil {
			continue
		}
		rec.Assignments = append(rec.Assignments, history.Assignment{
			SubstituteID: sel.SubstituteID,
			AbsentCode:   slot.AbsentCode,
			PeriodTime:   slot.PeriodTime,
			Class:        slot.Class,
		})
	}
	return rec
}
