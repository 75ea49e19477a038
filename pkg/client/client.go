package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/model"
	"github.com/modan/fas/internal/workflow"
)

// Client is the live HTTP DataSource. It never retries and never caches;
// truth is whatever the server last answered, re-fetched after every mutation.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// NewWithHTTPClient allows a caller-supplied http.Client (timeouts, transport).
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	c.http = hc
	return c
}

// APIError is a non-2xx answer from the server. The console shows the
// message generically; there are no structured error codes to parse.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (c *Client) FetchReviewProjects(ctx context.Context) ([]dto.ReviewProjectSummary, error) {
	var out []dto.ReviewProjectSummary
	err := c.do(ctx, http.MethodGet, "/admin/project/review", nil, nil, &out)
	return out, err
}

func (c *Client) FetchProjectDetail(ctx context.Context, projectID int64) (*dto.ProjectReviewDetail, error) {
	var out dto.ProjectReviewDetail
	path := fmt.Sprintf("/admin/project/review/%d", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApproveProject(ctx context.Context, projectID int64) (*dto.ReviewStatusResponse, error) {
	var out dto.ReviewStatusResponse
	path := fmt.Sprintf("/admin/project/%d/approve", projectID)
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectProject validates the reason before anything goes on the wire; a
// blank reason never reaches the server.
func (c *Client) RejectProject(ctx context.Context, projectID int64, reason string) (*dto.ReviewStatusResponse, error) {
	if err := workflow.ValidateRejectReason(reason); err != nil {
		return nil, err
	}

	var out dto.ReviewStatusResponse
	path := fmt.Sprintf("/admin/project/%d/reject", projectID)
	body := map[string]string{"reason": reason}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchRejectReasonPresets falls back to the built-in default list when the
// endpoint is unreachable or answers badly.
func (c *Client) FetchRejectReasonPresets(ctx context.Context) ([]string, error) {
	var out dto.RejectReasonPresets
	if err := c.do(ctx, http.MethodGet, "/admin/project/reject-reason-presets", nil, nil, &out); err != nil {
		return DefaultRejectReasonPresets, nil
	}
	if len(out.Presets) == 0 {
		return DefaultRejectReasonPresets, nil
	}
	return out.Presets, nil
}

func (c *Client) FetchMakerProfile(ctx context.Context, makerID int64) (*dto.MakerProfile, error) {
	var out dto.MakerProfile
	path := fmt.Sprintf("/admin/maker/%d", makerID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchSettlementSummary(ctx context.Context) (*dto.SettlementSummary, error) {
	var out dto.SettlementSummary
	if err := c.do(ctx, http.MethodGet, "/api/admin/settlements/summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchSettlements passes page and size through verbatim; the server contract
// is a 0-based offset page.
func (c *Client) FetchSettlements(ctx context.Context, page, size int, status string) (*dto.SettlementPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	if status != "" {
		params.Set("status", status)
	}

	var out dto.SettlementPage
	if err := c.do(ctx, http.MethodGet, "/api/admin/settlements", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchSettlementDetail(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error) {
	var out dto.SettlementDTO
	path := fmt.Sprintf("/api/admin/settlements/%d", settlementID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSettlement(ctx context.Context, projectID int64) (*dto.SettlementDTO, error) {
	var out dto.SettlementDTO
	path := fmt.Sprintf("/api/admin/settlements/%d", projectID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FirstPayout(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error) {
	return c.settlementAction(ctx, settlementID, "first-payout")
}

func (c *Client) FinalReady(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error) {
	return c.settlementAction(ctx, settlementID, "final-ready")
}

func (c *Client) FinalPayout(ctx context.Context, settlementID int64) (*dto.SettlementDTO, error) {
	return c.settlementAction(ctx, settlementID, "final-payout")
}

func (c *Client) settlementAction(ctx context.Context, settlementID int64, action string) (*dto.SettlementDTO, error) {
	var out dto.SettlementDTO
	path := fmt.Sprintf("/api/admin/settlements/%d/%s", settlementID, action)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportSettlementsCSV downloads the settlement CSV export as raw bytes.
func (c *Client) ExportSettlementsCSV(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/admin/settlements/export", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

func (c *Client) FetchShipments(ctx context.Context, projectID int64, status string, page, size int) (*dto.ShipmentPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	if status != "" {
		params.Set("status", status)
	}

	var out dto.ShipmentPage
	path := fmt.Sprintf("/api/maker/projects/%d/shipments", projectID)
	if err := c.do(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchShipment(ctx context.Context, projectID, shipmentID int64) (*dto.ShipmentDTO, error) {
	var out dto.ShipmentDTO
	path := fmt.Sprintf("/api/maker/projects/%d/shipments/%d", projectID, shipmentID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateShipmentStatus guards the ISSUE-needs-reason rule before calling.
func (c *Client) UpdateShipmentStatus(ctx context.Context, projectID, shipmentID int64, status, issueReason string) (*dto.ShipmentDTO, error) {
	if err := workflow.ValidateShipmentUpdate(model.ShipmentStatus(status), issueReason); err != nil {
		return nil, err
	}

	var out dto.ShipmentDTO
	path := fmt.Sprintf("/api/maker/projects/%d/shipments/%d/status", projectID, shipmentID)
	body := dto.ShipmentStatusUpdate{Status: status, IssueReason: issueReason}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BulkUpdateShipmentStatus(ctx context.Context, projectID int64, req dto.BulkShipmentStatusUpdate) (*dto.BulkStatusResult, error) {
	if err := workflow.ValidateShipmentUpdate(model.ShipmentStatus(req.Status), req.IssueReason); err != nil {
		return nil, err
	}

	var out dto.BulkStatusResult
	path := fmt.Sprintf("/api/maker/projects/%d/shipments/bulk-status", projectID)
	if err := c.do(ctx, http.MethodPatch, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BulkUploadTracking(ctx context.Context, projectID int64, rows []dto.TrackingRow) (*dto.BulkTrackingResult, error) {
	var out dto.BulkTrackingResult
	path := fmt.Sprintf("/api/maker/projects/%d/shipments/bulk-tracking", projectID)
	body := dto.BulkTrackingRequest{Shipments: rows}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchDashboard(ctx context.Context) (*dto.DashboardStats, error) {
	var out dto.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchDailyStats(ctx context.Context, from, to string) ([]dto.DailyStatRow, error) {
	params := url.Values{}
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}

	var out []dto.DailyStatRow
	err := c.do(ctx, http.MethodGet, "/api/admin/stats/daily", params, nil, &out)
	return out, err
}

func (c *Client) FetchMonthlyStats(ctx context.Context, year string) ([]dto.MonthlyStatRow, error) {
	params := url.Values{}
	if year != "" {
		params.Set("year", year)
	}

	var out []dto.MonthlyStatRow
	err := c.do(ctx, http.MethodGet, "/api/admin/stats/monthly", params, nil, &out)
	return out, err
}

func (c *Client) FetchRevenueStats(ctx context.Context, from, to string) ([]dto.RevenueRow, error) {
	params := url.Values{}
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}

	var out []dto.RevenueRow
	err := c.do(ctx, http.MethodGet, "/api/admin/stats/revenue", params, nil, &out)
	return out, err
}

func (c *Client) FetchProjectPerformance(ctx context.Context) ([]dto.ProjectPerformanceRow, error) {
	var out []dto.ProjectPerformanceRow
	err := c.do(ctx, http.MethodGet, "/api/admin/stats/project-performance", nil, nil, &out)
	return out, err
}

// do performs one request and decodes the JSON answer into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(raw, &apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
