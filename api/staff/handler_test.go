package staff

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolops/subplan/core/directory"
	"github.com/schoolops/subplan/core/model"
	"github.com/schoolops/subplan/core/timetable"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := NewHandler(directory.NewMemoryStore(), timetable.NewMemoryStore())
	mux := http.NewServeMux()
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestStaffCRUDRoutes(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/staff", `{"id":"t1","code":"abc","name":"A. Abbot"}`)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/staff", "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []model.StaffMember
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, "ABC", all[0].Code)

	resp = do(t, http.MethodPut, srv.URL+"/api/staff/t1", `{"code":"ABC","name":"A. Abbot Jr"}`)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/staff/t1", "")
	var m model.StaffMember
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	_ = resp.Body.Close()
	assert.Equal(t, "A. Abbot Jr", m.Name)

	resp = do(t, http.MethodDelete, srv.URL+"/api/staff/t1", "")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/staff/t1", "")
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTimetableRoutes(t *testing.T) {
	srv := newServer(t)
	resp := do(t, http.MethodPut, srv.URL+"/api/staff/t1/timetable",
		`{"Mon":{"8:05":"Gr9 Math"}}`)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/staff/t1/timetable", "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tt model.Timetable
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tt))
	assert.Equal(t, "Gr9 Math", tt.Assignment(model.Monday, "8:05"))

	// Missing timetables come back fully free, not as an error.
	resp = do(t, http.MethodGet, srv.URL+"/api/staff/ghost/timetable", "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var free model.Timetable
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&free))
	assert.Equal(t, model.Free, free.Assignment(model.Monday, "8:05"))
}
