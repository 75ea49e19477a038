// Package payment wraps the outbound payout gateway. Every first/final
// payout a settlement transition triggers goes through here; the breaker
// keeps a flapping gateway from eating every admin action in turn.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/logger"
	"github.com/sony/gobreaker/v2"
)

// PayoutKind 지급 구분
type PayoutKind string

const (
	PayoutKindFirst PayoutKind = "FIRST"
	PayoutKindFinal PayoutKind = "FINAL"
)

// PayoutRequest one bank transfer to a maker.
type PayoutRequest struct {
	SettlementID  int64      `json:"settlementId"`
	Kind          PayoutKind `json:"kind"`
	Amount        int64      `json:"amount"`
	BankName      string     `json:"bankName"`
	BankAccount   string     `json:"bankAccount"`
	AccountHolder string     `json:"accountHolder"`
	Reference     string     `json:"reference"`
}

// PayoutResult gateway acknowledgement.
type PayoutResult struct {
	Reference string    `json:"reference"`
	PaidAt    time.Time `json:"paidAt"`
}

// Client payout gateway client. With no gateway URL configured it runs in
// dry-run mode: payouts succeed locally with a generated reference, which is
// what development and test environments use.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*PayoutResult]
}

func New(cfg config.PaymentConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*PayoutResult](gobreaker.Settings{
		Name:    "payout-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		baseURL: cfg.GatewayURL,
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
	}
}

// ExecutePayout sends one payout through the breaker. The reference is
// generated client-side so a retried request stays identifiable gateway-side.
func (c *Client) ExecutePayout(ctx context.Context, req PayoutRequest) (*PayoutResult, error) {
	if req.Reference == "" {
		req.Reference = uuid.NewString()
	}

	if c.baseURL == "" {
		logger.Info("payout dry-run: settlement=%d kind=%s amount=%d ref=%s",
			req.SettlementID, req.Kind, req.Amount, req.Reference)
		return &PayoutResult{Reference: req.Reference, PaidAt: time.Now()}, nil
	}

	return c.breaker.Execute(func() (*PayoutResult, error) {
		return c.send(ctx, req)
	})
}

func (c *Client) send(ctx context.Context, req PayoutRequest) (*PayoutResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payouts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("payout gateway returned status %d", resp.StatusCode)
	}

	var result PayoutResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode payout response: %w", err)
	}
	if result.Reference == "" {
		result.Reference = req.Reference
	}
	return &result, nil
}
