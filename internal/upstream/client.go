package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"travel-admin/internal/logger"
	"travel-admin/internal/metrics"

	"github.com/99designs/gqlgen/graphql"
	"go.uber.org/zap"
)

// TokenSource yields the bearer token for the request in ctx, or "" when anonymous.
type TokenSource func(ctx context.Context) string

// Doer is what services depend on; *Client implements it.
type Doer interface {
	Do(ctx context.Context, op *Operation, vars map[string]any, out any) error
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	token      TokenSource
	retry      RetryPolicy
	stats      *metrics.Upstream
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

func NewClient(endpoint string, timeout time.Duration, token TokenSource) *Client {
	if token == nil {
		token = func(context.Context) string { return "" }
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		token: token,
		retry: DefaultRetryPolicy,
		stats: &metrics.Upstream{},
	}
}

// Stats exposes the call counters of this client.
func (c *Client) Stats() *metrics.Upstream {
	return c.stats
}

// Do sends op with vars and decodes the data member into out (when out is non-nil).
// Queries are retried on transport and 5xx failures; mutations are sent once.
func (c *Client) Do(ctx context.Context, op *Operation, vars map[string]any, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "upstream"),
		zap.String("operation", op.Name),
		zap.String("kind", string(op.Kind)),
	)

	if err := op.CheckVariables(vars); err != nil {
		log.Warn("refusing to send operation", zap.Error(err))
		return err
	}

	body, err := json.Marshal(request{Query: op.Query, OperationName: op.Name, Variables: vars})
	if err != nil {
		log.Error("failed to marshal operation", zap.Error(err))
		return err
	}

	policy := c.retry
	if op.IsMutation() {
		policy = NoRetry
	}

	var resp *graphql.Response
	err = policy.Run(ctx, func(attempt int) error {
		c.stats.Attempts.Inc()
		if attempt > 1 {
			c.stats.Retries.Inc()
		}
		timer := metrics.StartTimer()
		r, sendErr := c.send(ctx, op, body)
		c.stats.Observe(timer.Duration())
		log.Debug("upstream call finished",
			zap.Int("attempt", attempt),
			zap.Duration("duration_ms", timer.Duration()),
			zap.Error(sendErr),
		)
		resp = r
		return sendErr
	})
	if err != nil {
		c.stats.Failures.Inc()
		if errors.Is(err, ErrUnauthenticated) {
			c.stats.Unauthenticated.Inc()
			log.Warn("upstream rejected session", zap.Error(err))
			return err
		}
		log.Error("upstream request failed", zap.Error(err))
		return err
	}

	if len(resp.Errors) > 0 {
		gqlErr := &Error{Operation: op.Name, Errors: resp.Errors}
		if errors.Is(gqlErr, ErrUnauthenticated) {
			c.stats.Unauthenticated.Inc()
			log.Warn("upstream rejected session", zap.String("message", resp.Errors.Error()))
		} else {
			log.Error("upstream returned errors", zap.String("message", resp.Errors.Error()))
		}
		return gqlErr
	}

	if out == nil || len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		log.Error("failed to decode upstream data", zap.Error(err))
		return fmt.Errorf("decode %s data: %w", op.Name, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, op *Operation, body []byte) (*graphql.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "JWT "+token)
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	if res.StatusCode >= http.StatusInternalServerError {
		return nil, &StatusError{Operation: op.Name, Code: res.StatusCode, Body: string(raw)}
	}

	var out graphql.Response
	if err := json.Unmarshal(raw, &out); err != nil {
		if res.StatusCode != http.StatusOK {
			return nil, permanent(&StatusError{Operation: op.Name, Code: res.StatusCode, Body: string(raw)})
		}
		return nil, permanent(fmt.Errorf("decode upstream response: %w", err))
	}
	if rejected(res.StatusCode) && len(out.Errors) == 0 {
		return nil, permanent(&StatusError{Operation: op.Name, Code: res.StatusCode, Body: string(raw)})
	}
	return &out, nil
}
