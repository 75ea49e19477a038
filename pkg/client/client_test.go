package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSettlementsSendsExactPageParams(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(dto.SettlementPage{Content: []dto.SettlementDTO{}})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.FetchSettlements(context.Background(), 2, 20, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"20"}, gotQuery["size"])
	_, hasStatus := gotQuery["status"]
	assert.False(t, hasStatus, "no status filter means no status param")

	_, err = c.FetchSettlements(context.Background(), 0, 10, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, []string{"PENDING"}, gotQuery["status"])
}

func TestRejectProjectBlankReasonNeverCalls(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.RejectProject(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, workflow.ErrBlankRejectReason)
	assert.False(t, called, "a blank reason must never reach the server")
}

func TestUpdateShipmentStatusIssueGuard(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.UpdateShipmentStatus(context.Background(), 1, 1, "ISSUE", "")
	assert.ErrorIs(t, err, workflow.ErrIssueNeedsReason)
	assert.False(t, called)

	_, err = c.BulkUpdateShipmentStatus(context.Background(), 1, dto.BulkShipmentStatusUpdate{
		ShipmentIDs: []int64{1, 2}, Status: "ISSUE",
	})
	assert.ErrorIs(t, err, workflow.ErrIssueNeedsReason)
	assert.False(t, called)
}

func TestRejectProjectSendsReason(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/admin/project/7/reject", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(dto.ReviewStatusResponse{
			ProjectID: 7, ReviewStatus: "REJECTED", RejectReason: gotBody["reason"],
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.RejectProject(context.Background(), 7, "정책 위반")
	require.NoError(t, err)
	assert.Equal(t, "정책 위반", gotBody["reason"])
	assert.Equal(t, "REJECTED", resp.ReviewStatus)
}

func TestAPIErrorSurface(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "state conflict: settlement 3"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.FirstPayout(context.Background(), 3)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "state conflict")
}

func TestStatsReaderPaths(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.FetchRevenueStats(context.Background(), "2026-01-01", "2026-06-30")
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/stats/revenue", gotPath)
	assert.Equal(t, []string{"2026-01-01"}, gotQuery["from"])
	assert.Equal(t, []string{"2026-06-30"}, gotQuery["to"])

	_, err = c.FetchProjectPerformance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/stats/project-performance", gotPath)
}

func TestFetchShipmentPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/maker/projects/3/shipments/7", r.URL.Path)
		json.NewEncoder(w).Encode(dto.ShipmentDTO{ShipmentID: 7, ProjectID: 3, OrderCode: "ORD-2026-0007"})
	}))
	defer server.Close()

	s, err := New(server.URL).FetchShipment(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-0007", s.OrderCode)
}

func TestExportSettlementsCSV(t *testing.T) {
	body := "settlement_id,project_id\n1,3\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/settlements/export", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Write([]byte(body))
	}))
	defer server.Close()

	raw, err := New(server.URL).ExportSettlementsCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, body, string(raw), "the export is passed through as raw bytes")
}

func TestFetchRejectReasonPresetsFallsBack(t *testing.T) {
	c := New("http://127.0.0.1:1") // nothing listens here

	presets, err := c.FetchRejectReasonPresets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultRejectReasonPresets, presets)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.RejectReasonPresets{Presets: []string{}})
	}))
	defer server.Close()

	presets, err = New(server.URL).FetchRejectReasonPresets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultRejectReasonPresets, presets, "an empty preset list falls back too")
}
