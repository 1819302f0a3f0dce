package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"travel-admin/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) (*http.Response, error)

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func respond(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(rt MockRoundTripper, token string) *Client {
	c := NewClient("http://backend/graphql/", time.Second, func(context.Context) string { return token })
	c.httpClient.Transport = rt
	c.retry = RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond}
	return c
}

var listProvinces = MustParse(`query ListProvinces { provinces { edges { node { id name } } } }`)

func TestClient_Do(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := newTestClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "JWT tok-123", req.Header.Get("Authorization"))
			assert.Equal(t, "req-9", req.Header.Get("X-Request-ID"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "ListProvinces", body["operationName"])
			assert.Contains(t, body["query"], "provinces")

			return respond(http.StatusOK, `{"data":{"provinces":{"edges":[{"node":{"id":"1","name":"Istanbul"}}]}}}`), nil
		}, "tok-123")

		var out struct {
			Provinces struct {
				Edges []struct {
					Node struct {
						ID   string `json:"id"`
						Name string `json:"name"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"provinces"`
		}
		ctx := logger.WithRequestID(context.Background(), "req-9")
		err := c.Do(ctx, listProvinces, nil, &out)

		require.NoError(t, err)
		require.Len(t, out.Provinces.Edges, 1)
		assert.Equal(t, "Istanbul", out.Provinces.Edges[0].Node.Name)
	})

	t.Run("Anonymous request has no Authorization", func(t *testing.T) {
		c := newTestClient(func(req *http.Request) (*http.Response, error) {
			assert.Empty(t, req.Header.Get("Authorization"))
			return respond(http.StatusOK, `{"data":null}`), nil
		}, "")

		assert.NoError(t, c.Do(context.Background(), listProvinces, nil, nil))
	})

	t.Run("GraphQL errors", func(t *testing.T) {
		c := newTestClient(func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"data":null,"errors":[{"message":"Trip not found","locations":[{"line":1,"column":3}]}]}`), nil
		}, "tok")

		err := c.Do(context.Background(), listProvinces, nil, nil)

		var gqlErr *Error
		require.True(t, errors.As(err, &gqlErr))
		assert.Equal(t, "ListProvinces", gqlErr.Operation)
		assert.Contains(t, err.Error(), "Trip not found")
		assert.False(t, errors.Is(err, ErrUnauthenticated))
	})

	t.Run("Expired signature is unauthenticated", func(t *testing.T) {
		c := newTestClient(func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"errors":[{"message":"Signature has expired"}]}`), nil
		}, "tok")

		err := c.Do(context.Background(), listProvinces, nil, nil)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("UNAUTHENTICATED extension code", func(t *testing.T) {
		c := newTestClient(func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"errors":[{"message":"nope","extensions":{"code":"UNAUTHENTICATED"}}]}`), nil
		}, "tok")

		err := c.Do(context.Background(), listProvinces, nil, nil)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("HTTP 401 and 403 are unauthenticated", func(t *testing.T) {
		for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			calls := 0
			c := newTestClient(func(req *http.Request) (*http.Response, error) {
				calls++
				return respond(code, "Unauthorized"), nil
			}, "tok")

			err := c.Do(context.Background(), listProvinces, nil, nil)

			assert.ErrorIs(t, err, ErrUnauthenticated)
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, code, statusErr.Code)
			assert.Equal(t, 1, calls)
			assert.Equal(t, uint64(1), c.Stats().Unauthenticated.Load())
		}
	})

	t.Run("Missing variable is rejected before sending", func(t *testing.T) {
		calls := 0
		c := newTestClient(func(req *http.Request) (*http.Response, error) {
			calls++
			return respond(http.StatusOK, `{"data":{}}`), nil
		}, "tok")

		op := MustParse(`mutation DeleteTrip($id: ID!) { deleteTrip(id: $id) { tripId } }`)
		err := c.Do(context.Background(), op, map[string]any{}, nil)

		assert.ErrorIs(t, err, ErrMissingVariable)
		assert.Equal(t, 0, calls)
	})
}

func TestClient_Retry(t *testing.T) {
	t.Run("Query retried on 5xx", func(t *testing.T) {
		calls := 0
		c := newTestClient(func(req *http.Request) (*http.Response, error) {
			calls++
			if calls < 3 {
				return respond(http.StatusServiceUnavailable, "busy"), nil
			}
			return respond(http.StatusOK, `{"data":{"provinces":{"edges":[]}}}`), nil
		}, "tok")

		err := c.Do(context.Background(), listProvinces, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)

		stats := c.Stats().Snapshot()
		assert.Equal(t, uint64(3), stats.Attempts)
		assert.Equal(t, uint64(2), stats.Retries)
		assert.Zero(t, stats.Failures)
	})

	t.Run("Query retries are bounded", func(t *testing.T) {
		calls := 0
		c := newTestClient(func(req *http.Request) (*http.Response, error) {
			calls++
			return nil, errors.New("connection refused")
		}, "tok")

		err := c.Do(context.Background(), listProvinces, nil, nil)
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, uint64(1), c.Stats().Failures.Load())
	})

	t.Run("Mutation is never retried", func(t *testing.T) {
		calls := 0
		c := newTestClient(func(req *http.Request) (*http.Response, error) {
			calls++
			return respond(http.StatusBadGateway, "bad gateway"), nil
		}, "tok")

		op := MustParse(`mutation DeleteTrip($id: ID!) { deleteTrip(id: $id) { tripId } }`)
		err := c.Do(context.Background(), op, map[string]any{"id": "1"}, nil)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusBadGateway, statusErr.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("Undecodable 4xx is permanent", func(t *testing.T) {
		calls := 0
		c := newTestClient(func(req *http.Request) (*http.Response, error) {
			calls++
			return respond(http.StatusBadRequest, "<html>bad</html>"), nil
		}, "tok")

		err := c.Do(context.Background(), listProvinces, nil, nil)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusBadRequest, statusErr.Code)
		assert.Equal(t, 1, calls)
	})
}

func TestRetryPolicy_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := RetryPolicy{Attempts: 5, BaseDelay: time.Hour}

	calls := 0
	err := p.Run(ctx, func(int) error {
		calls++
		cancel()
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_Delay(t *testing.T) {
	p := RetryPolicy{Attempts: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}
	b := p.backOff()
	assert.Equal(t, 100*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 200*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 300*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 300*time.Millisecond, b.NextBackOff())
}

func TestRetryPolicy_Permanent(t *testing.T) {
	calls := 0
	cause := errors.New("bad request")
	err := RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond}.Run(context.Background(), func(int) error {
		calls++
		return permanent(cause)
	})

	assert.Same(t, cause, err)
	assert.Equal(t, 1, calls)
}
