// Package billing is the HTTP client for the remote billing API.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"dgiconsole/internal/config"
	"dgiconsole/internal/domain"
	"dgiconsole/internal/logger"
)

// Client implements port.BillingAPI over HTTP.
type Client struct {
	endpoint string
	client   *http.Client
	log      *zap.Logger
}

// NewClient creates a client for the configured remote API.
func NewClient(cfg *config.RemoteConfig) *Client {
	return NewClientWithEndpoint(cfg, cfg.BaseURL)
}

// NewClientWithEndpoint creates a client pointing at a custom base URL (for testing).
func NewClientWithEndpoint(cfg *config.RemoteConfig, endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: cfg.Timeout()},
		log:      zap.NewNop(),
	}
}

// WithLogger sets the fallback logger used when a request context carries none.
func (c *Client) WithLogger(log *zap.Logger) *Client {
	if log != nil {
		c.log = log
	}
	return c
}

func invoicePath(id int64) string { return "/invoices/" + strconv.FormatInt(id, 10) }
func quotePath(id int64) string   { return "/quotes/" + strconv.FormatInt(id, 10) }

func (c *Client) ListInvoices(ctx context.Context, token string) ([]domain.Invoice, error) {
	var dtos []invoiceDTO
	if err := c.do(ctx, http.MethodGet, "/invoices", token, nil, &dtos); err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	out := make([]domain.Invoice, 0, len(dtos))
	for i := range dtos {
		inv, err := dtos[i].toDomain()
		if err != nil {
			c.skipRow(ctx, "invoice", dtos[i].ID, err)
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (c *Client) GetInvoice(ctx context.Context, token string, id int64) (*domain.Invoice, error) {
	var dto invoiceDTO
	if err := c.do(ctx, http.MethodGet, invoicePath(id), token, nil, &dto); err != nil {
		return nil, fmt.Errorf("getting invoice %d: %w", id, err)
	}
	inv, err := dto.toDomain()
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (c *Client) UpdateInvoiceStatus(ctx context.Context, token string, id int64, status domain.InvoiceStatus) error {
	body := map[string]int{"status": status.Code()}
	if err := c.do(ctx, http.MethodPut, invoicePath(id), token, body, nil); err != nil {
		return fmt.Errorf("updating invoice %d status: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteInvoice(ctx context.Context, token string, id int64) error {
	if err := c.do(ctx, http.MethodDelete, invoicePath(id), token, nil, nil); err != nil {
		return fmt.Errorf("deleting invoice %d: %w", id, err)
	}
	return nil
}

func (c *Client) SubmitInvoice(ctx context.Context, token string, id int64) error {
	if err := c.do(ctx, http.MethodPost, invoicePath(id)+"/submit", token, nil, nil); err != nil {
		return fmt.Errorf("submitting invoice %d: %w", id, err)
	}
	return nil
}

func (c *Client) GetClearanceStatus(ctx context.Context, token string, invoiceID int64) (*domain.ClearanceReport, error) {
	var dto clearanceDTO
	if err := c.do(ctx, http.MethodGet, invoicePath(invoiceID)+"/dgi-status", token, nil, &dto); err != nil {
		return nil, fmt.Errorf("getting clearance status of invoice %d: %w", invoiceID, err)
	}
	return dto.toDomain(), nil
}

func (c *Client) ListQuotes(ctx context.Context, token string) ([]domain.Quote, error) {
	var dtos []quoteDTO
	if err := c.do(ctx, http.MethodGet, "/quotes", token, nil, &dtos); err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	out := make([]domain.Quote, 0, len(dtos))
	for i := range dtos {
		q, err := dtos[i].toDomain()
		if err != nil {
			c.skipRow(ctx, "quote", dtos[i].ID, err)
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (c *Client) GetQuote(ctx context.Context, token string, id int64) (*domain.Quote, error) {
	var dto quoteDTO
	if err := c.do(ctx, http.MethodGet, quotePath(id), token, nil, &dto); err != nil {
		return nil, fmt.Errorf("getting quote %d: %w", id, err)
	}
	q, err := dto.toDomain()
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) UpdateQuoteStatus(ctx context.Context, token string, id int64, status domain.QuoteStatus) error {
	body := map[string]string{"status": status.String()}
	if err := c.do(ctx, http.MethodPut, quotePath(id), token, body, nil); err != nil {
		return fmt.Errorf("updating quote %d status: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteQuote(ctx context.Context, token string, id int64) error {
	if err := c.do(ctx, http.MethodDelete, quotePath(id), token, nil, nil); err != nil {
		return fmt.Errorf("deleting quote %d: %w", id, err)
	}
	return nil
}

func (c *Client) ConvertQuote(ctx context.Context, token string, id int64) (int64, error) {
	var resp struct {
		InvoiceID int64 `json:"invoiceId"`
	}
	if err := c.do(ctx, http.MethodPost, quotePath(id)+"/convert", token, nil, &resp); err != nil {
		return 0, fmt.Errorf("converting quote %d: %w", id, err)
	}
	return resp.InvoiceID, nil
}

// skipRow drops a listed document whose status the gateway cannot gate. The
// document itself still answers UNKNOWN_STATUS when fetched by id.
func (c *Client) skipRow(ctx context.Context, kind string, id int64, err error) {
	logger.FromContext(ctx, c.log).Warn("billing.Client: skipping document with unknown status",
		zap.String("document_type", kind), zap.Int64("id", id), zap.Error(err))
}

// do sends one authenticated request and decodes the response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", domain.ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrSessionExpired
	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 500),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: unmarshaling response: %w", domain.ErrRemoteUnavailable, err)
	}
	return nil
}
