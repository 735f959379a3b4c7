package plan

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolops/subplan/core/directory"
	"github.com/schoolops/subplan/core/history"
	"github.com/schoolops/subplan/core/model"
	coreplan "github.com/schoolops/subplan/core/plan"
	"github.com/schoolops/subplan/core/timetable"
	"github.com/schoolops/subplan/infra/logger"
)

// 2025-03-03 is a Monday.
const monday = "2025-03-03"

func newServer(t *testing.T) (*httptest.Server, *history.MemoryStore) {
	t.Helper()
	dir := directory.NewMemoryStore()
	tts := timetable.NewMemoryStore()
	hist := history.NewMemoryStore()
	require.NoError(t, dir.Add(model.StaffMember{ID: "a", Code: "A", Name: "A. Abbot"}))
	require.NoError(t, dir.Add(model.StaffMember{ID: "b", Code: "B", Name: "B. Brown"}))
	require.NoError(t, dir.Add(model.StaffMember{ID: "c", Code: "C", Name: "C. Clark"}))
	require.NoError(t, tts.SetPeriod("b", model.Monday, "8:05", "Gr9 Math"))

	planner, err := coreplan.NewPlanner(dir, tts, hist, logger.NopLogger{}, nil)
	require.NoError(t, err)
	h := NewHandler(planner, dir, hist, logger.NopLogger{}, nil)
	mux := http.NewServeMux()
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, hist
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestPlanEndpoint(t *testing.T) {
	srv, hist := newServer(t)
	resp := postJSON(t, srv.URL+"/api/plan", `{"date":"`+monday+`","absent":["b"]}`)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res coreplan.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Len(t, res.SlotOrder, 1)
	slot := res.Slots[coreplan.SlotKey("B", "8:05")]
	require.NotNil(t, slot)
	assert.Equal(t, "A", slot.SelectedCandidate().Code)

	// The completed run was recorded in history.
	n, err := hist.CountFor(context.Background(), "a", monday)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPlanEndpointWeekend(t *testing.T) {
	srv, _ := newServer(t)
	resp := postJSON(t, srv.URL+"/api/plan", `{"date":"2025-03-08","absent":["b"]}`)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlanEndpointUnknownCode(t *testing.T) {
	srv, _ := newServer(t)
	resp := postJSON(t, srv.URL+"/api/plan", `{"date":"`+monday+`","absent":["zz"]}`)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlanEndpointEmptyAbsent(t *testing.T) {
	srv, _ := newServer(t)
	resp := postJSON(t, srv.URL+"/api/plan", `{"date":"`+monday+`","absent":[]}`)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReselectAndTextEndpoints(t *testing.T) {
	srv, _ := newServer(t)
	resp := postJSON(t, srv.URL+"/api/plan", `{"date":"`+monday+`","absent":["b"]}`)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	key := coreplan.SlotKey("B", "8:05")
	resp = postJSON(t, srv.URL+"/api/plan/reselect", `{"slot_key":"`+key+`","substitute_id":"c"}`)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	textResp, err := http.Get(srv.URL + "/api/plan/text")
	require.NoError(t, err)
	defer func() { _ = textResp.Body.Close() }()
	require.Equal(t, http.StatusOK, textResp.StatusCode)
	body, err := io.ReadAll(textResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Good morning")
	assert.Contains(t, string(body), "P1 Gr9 Math - C")

	reportResp, err := http.Get(srv.URL + "/api/plan/report")
	require.NoError(t, err)
	defer func() { _ = reportResp.Body.Close() }()
	var rep coreplan.LoadReport
	require.NoError(t, json.NewDecoder(reportResp.Body).Decode(&rep))
	assert.Equal(t, 1, rep.Substitutes)
	assert.Equal(t, 1, rep.PerStaff["C"])
}

func TestReselectBeforeAnyPlan(t *testing.T) {
	srv, _ := newServer(t)
	resp := postJSON(t, srv.URL+"/api/plan/reselect", `{"slot_key":"B-8:05","substitute_id":"c"}`)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestReselectUnknownCandidate(t *testing.T) {
	srv, _ := newServer(t)
	resp := postJSON(t, srv.URL+"/api/plan", `{"date":"`+monday+`","absent":["b"]}`)
	_ = resp.Body.Close()
	resp = postJSON(t, srv.URL+"/api/plan/reselect", `{"slot_key":"B-8:05","substitute_id":"nobody"}`)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
