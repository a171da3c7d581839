package worklogs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maintlog/internal/models"
	"maintlog/internal/store"
	"maintlog/internal/testutil"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	s := store.New(testutil.SetupTestDB(t), nil)
	return &Handler{Store: s, Logger: zap.NewNop()}
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}

func TestCreateWorkLog(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h.Create, models.WorkLog{
		WorkDate:    "2025-03-10",
		Category:    "network",
		Description: "replaced uplink",
		Status:      "pending",
	})
	require.Equal(t, 200, w.Code)

	var got models.WorkLog
	decodeData(t, w, &got)
	assert.Greater(t, got.ID, int64(0))
	assert.Equal(t, "2025-03-10", got.WorkDate)
	assert.Equal(t, "pending", got.Status)
}

func TestCreateWorkLogValidation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body models.WorkLog
	}{
		{"missing work_date", models.WorkLog{Description: "x"}},
		{"missing description", models.WorkLog{WorkDate: "2025-03-10"}},
		{"bad date", models.WorkLog{WorkDate: "10/03/2025", Description: "x"}},
		{"bad status", models.WorkLog{WorkDate: "2025-03-10", Description: "x", Status: "closed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Create, tt.body)
			assert.Equal(t, 400, w.Code)
		})
	}
}

func TestCreateWorkLogInvalidBody(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestGetWorkLogNotFound(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.Get(w, req, 999)
	assert.Equal(t, 404, w.Code)
}

func TestUpdateWorkLog(t *testing.T) {
	h := newTestHandler(t)

	id, err := h.Store.CreateWorkLog(models.WorkLog{WorkDate: "2025-03-10", Description: "before"})
	require.NoError(t, err)

	raw, _ := json.Marshal(models.WorkLog{WorkDate: "2025-03-11", Description: "after", Status: "done"})
	req := httptest.NewRequest("PUT", "/", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	h.Update(w, req, id)
	require.Equal(t, 200, w.Code)

	var got models.WorkLog
	decodeData(t, w, &got)
	assert.Equal(t, "after", got.Description)
	assert.Equal(t, "2025-03-11", got.WorkDate)
}

func TestDeleteWorkLog(t *testing.T) {
	h := newTestHandler(t)

	id, err := h.Store.CreateWorkLog(models.WorkLog{WorkDate: "2025-03-10", Description: "temp"})
	require.NoError(t, err)

	req := httptest.NewRequest("DELETE", "/", nil)
	w := httptest.NewRecorder()
	h.Delete(w, req, id)
	assert.Equal(t, 200, w.Code)

	w = httptest.NewRecorder()
	h.Delete(w, req, id)
	assert.Equal(t, 404, w.Code)
}

func TestListWorkLogsWithQueryFilters(t *testing.T) {
	h := newTestHandler(t)

	for _, l := range []models.WorkLog{
		{WorkDate: "2025-03-10", Category: "network", Description: "switch reboot", Status: "done"},
		{WorkDate: "2025-03-10", Category: "hvac", Description: "filter swap", Status: "pending"},
		{WorkDate: "2025-03-11", Category: "network", Description: "camera VLAN", Status: "done"},
	} {
		_, err := h.Store.CreateWorkLog(l)
		require.NoError(t, err)
	}

	req := httptest.NewRequest("GET", "/?date=2025-03-10&status=done", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	require.Equal(t, 200, w.Code)

	var logs []models.WorkLog
	decodeData(t, w, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, "switch reboot", logs[0].Description)

	req = httptest.NewRequest("GET", "/?q=CAMERA", nil)
	w = httptest.NewRecorder()
	h.List(w, req)
	decodeData(t, w, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, "camera VLAN", logs[0].Description)
}

func TestListWorkLogsPagination(t *testing.T) {
	h := newTestHandler(t)

	for i := 0; i < 5; i++ {
		_, err := h.Store.CreateWorkLog(models.WorkLog{WorkDate: "2025-03-10", Description: "task"})
		require.NoError(t, err)
	}

	req := httptest.NewRequest("GET", "/?limit=2&page=2", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	require.Equal(t, 200, w.Code)

	var envelope struct {
		Data []models.WorkLog `json:"data"`
		Meta *models.Meta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
	require.NotNil(t, envelope.Meta)
	assert.Equal(t, 5, envelope.Meta.Total)
	assert.Equal(t, 2, envelope.Meta.Page)
	assert.Equal(t, 2, envelope.Meta.Limit)

	// A page past the end returns an empty slice, not an error.
	req = httptest.NewRequest("GET", "/?limit=2&page=9", nil)
	w = httptest.NewRecorder()
	h.List(w, req)
	require.Equal(t, 200, w.Code)
	envelope.Data, envelope.Meta = nil, nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)

	// Without limit there is no meta block.
	req = httptest.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	h.List(w, req)
	envelope.Data, envelope.Meta = nil, nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 5)
	assert.Nil(t, envelope.Meta)
}

func TestDashboardCombinesLogsAndCounts(t *testing.T) {
	h := newTestHandler(t)

	for _, l := range []models.WorkLog{
		{WorkDate: "2025-03-10", Description: "a", Status: "done"},
		{WorkDate: "2025-03-11", Description: "b", Status: "pending"},
	} {
		_, err := h.Store.CreateWorkLog(l)
		require.NoError(t, err)
	}

	// A filtered dashboard still reports whole-table counts.
	req := httptest.NewRequest("GET", "/?date=2025-03-10", nil)
	w := httptest.NewRecorder()
	h.Dashboard(w, req)
	require.Equal(t, 200, w.Code)

	var payload struct {
		Logs   []models.WorkLog           `json:"logs"`
		Counts models.WorkLogStatusCounts `json:"counts"`
	}
	decodeData(t, w, &payload)
	assert.Len(t, payload.Logs, 1)
	assert.Equal(t, 1, payload.Counts.Done)
	assert.Equal(t, 1, payload.Counts.Pending)
}

func TestSummary(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Store.CreateWorkLog(models.WorkLog{WorkDate: "2025-03-10", Description: "a", Status: "in progress"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.Summary(w, req)
	require.Equal(t, 200, w.Code)

	var counts models.WorkLogStatusCounts
	decodeData(t, w, &counts)
	assert.Equal(t, 1, counts.InProgress)
}
