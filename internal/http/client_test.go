package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdhttp "github.com/fivetwenty-io/pipedrive-client/internal/http"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.record("debug", msg, fields)
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.record("info", msg, fields)
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.record("warn", msg, fields)
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.record("error", msg, fields)
}

func (l *MockLogger) byMessage(msg string) []map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matched []map[string]interface{}

	for _, entry := range l.logs {
		if entry["msg"] == msg {
			matched = append(matched, entry)
		}
	}

	return matched
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful get unwraps data", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/deals/7", request.URL.Path)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "test-token", request.URL.Query().Get("api_token"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			_, _ = writer.Write([]byte(`{"success":true,"data":{"id":7,"title":"Big deal"},"additional_data":{"pagination":{"more_items_in_collection":false}}}`))
		}))
		defer server.Close()

		client := pdhttp.NewClient(server.URL+"/v1", "test-token")

		resp, err := client.Get(context.Background(), "/deals/7", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"id":7,"title":"Big deal"}`, string(resp.Data))
		assert.JSONEq(t, `{"pagination":{"more_items_in_collection":false}}`, string(resp.AdditionalData))
	})

	t.Run("query drops absent values and keeps zero values", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			query := request.URL.Query()
			assert.Equal(t, "x", query.Get("term"))
			assert.Equal(t, "0", query.Get("start"))
			assert.Equal(t, "false", query.Get("exact_match"))
			assert.Equal(t, []string{"a", "b"}, query["fields"])
			assert.False(t, query.Has("limit"))
			assert.False(t, query.Has("status"))
			assert.Equal(t, "tok", query.Get("api_token"))

			_, _ = writer.Write([]byte(`{"success":true,"data":[]}`))
		}))
		defer server.Close()

		client := pdhttp.NewClient(server.URL, "tok")

		var limit *int

		_, err := client.Get(context.Background(), "persons/search", map[string]interface{}{
			"term":        "x",
			"start":       0,
			"exact_match": false,
			"fields":      []string{"a", "b"},
			"limit":       limit,
			"status":      nil,
		})
		require.NoError(t, err)
	})

	t.Run("body drops absent values", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]interface{}

			err := json.NewDecoder(request.Body).Decode(&body)
			assert.NoError(t, err)
			assert.Equal(t, map[string]interface{}{"title": "T", "value": float64(0)}, body)

			writer.WriteHeader(http.StatusCreated)
			_, _ = writer.Write([]byte(`{"success":true,"data":{"id":1}}`))
		}))
		defer server.Close()

		client := pdhttp.NewClient(server.URL, "tok")

		var currency *string

		resp, err := client.Post(context.Background(), "deals", map[string]interface{}{
			"title":    "T",
			"value":    0,
			"currency": currency,
			"org_id":   nil,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.JSONEq(t, `{"id":1}`, string(resp.Data))
	})

	t.Run("put sends body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPut, request.Method)
			assert.Equal(t, "/activities/3", request.URL.Path)

			var body map[string]interface{}

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "call", body["type"])

			_, _ = writer.Write([]byte(`{"success":true,"data":{"id":3}}`))
		}))
		defer server.Close()

		client := pdhttp.NewClient(server.URL, "tok")

		_, err := client.Put(context.Background(), "activities/3", map[string]interface{}{"type": "call"})
		require.NoError(t, err)
	})

	t.Run("absent or null data leaves Data empty", func(t *testing.T) {
		t.Parallel()

		for _, payload := range []string{`{"success":true}`, `{"success":true,"data":null}`, ``} {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				_, _ = writer.Write([]byte(payload))
			}))

			client := pdhttp.NewClient(server.URL, "tok")

			resp, err := client.Get(context.Background(), "deals/1", nil)
			require.NoError(t, err)
			assert.Empty(t, resp.Data, payload)

			server.Close()
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			_, _ = writer.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := pdhttp.NewClient(server.URL, "tok")

		_, err := client.Get(context.Background(), "deals/1", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, pipedrive.ErrInvalidResponse)
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "agent/1.0", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := pdhttp.NewClient(server.URL, "tok", pdhttp.WithUserAgent("agent/1.0"))

		_, err := client.Do(context.Background(), &pdhttp.Request{
			Method:  http.MethodGet,
			Path:    "deals",
			Headers: map[string]string{"X-Custom-Header": "custom-value"},
		})
		require.NoError(t, err)
	})
}

func TestClient_StatusClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		kind   pipedrive.ErrorKind
		target error
	}{
		{http.StatusBadRequest, pipedrive.KindBadRequest, pipedrive.ErrBadRequest},
		{http.StatusUnauthorized, pipedrive.KindUnauthorized, pipedrive.ErrUnauthorized},
		{http.StatusForbidden, pipedrive.KindForbidden, pipedrive.ErrForbidden},
		{http.StatusNotFound, pipedrive.KindNotFound, pipedrive.ErrNotFound},
		{http.StatusTooManyRequests, pipedrive.KindRateLimited, pipedrive.ErrRateLimited},
		{http.StatusInternalServerError, pipedrive.KindServerError, pipedrive.ErrServerError},
		{http.StatusServiceUnavailable, pipedrive.KindServerError, pipedrive.ErrServerError},
		{http.StatusConflict, pipedrive.KindUnclassified, pipedrive.ErrUnclassified},
		{http.StatusMultipleChoices, pipedrive.KindUnclassified, pipedrive.ErrUnclassified},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(tt.status)
				_, _ = writer.Write([]byte(`{"success":false,"error":"Something failed","error_info":"Check the docs"}`))
			}))
			defer server.Close()

			client := pdhttp.NewClient(server.URL, "tok")

			resp, err := client.Get(context.Background(), "deals/1", nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.ErrorIs(t, err, tt.target)

			var apiErr *pipedrive.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "Something failed (Check the docs)", apiErr.Message)
			assert.Equal(t, "deals/1", apiErr.Path)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	client := pdhttp.NewClient("http://"+addr, "secret-token", pdhttp.WithTimeout(2*time.Second))

	_, err = client.Get(context.Background(), "deals/1", nil)
	require.Error(t, err)

	var apiErr *pipedrive.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.NotContains(t, err.Error(), "secret-token")

	var urlErr *url.Error
	assert.ErrorAs(t, err, &urlErr)
}

func TestClient_HTTPClientTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = writer.Write([]byte(`{"success":true,"data":{}}`))
	}))
	t.Cleanup(server.Close)

	t.Run("keeps the custom client timeout", func(t *testing.T) {
		t.Parallel()

		custom := &http.Client{Timeout: 50 * time.Millisecond}
		client := pdhttp.NewClient(server.URL, "tok", pdhttp.WithHTTPClient(custom))

		_, err := client.Get(context.Background(), "deals", nil)
		require.Error(t, err)

		var urlErr *url.Error
		require.ErrorAs(t, err, &urlErr)
		assert.True(t, urlErr.Timeout())
	})

	t.Run("explicit timeout wins", func(t *testing.T) {
		t.Parallel()

		custom := &http.Client{Timeout: 50 * time.Millisecond}
		client := pdhttp.NewClient(server.URL, "tok",
			pdhttp.WithTimeout(5*time.Second), pdhttp.WithHTTPClient(custom))

		_, err := client.Get(context.Background(), "deals", nil)
		require.NoError(t, err)
		assert.Equal(t, 50*time.Millisecond, custom.Timeout)
	})
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := pdhttp.NewClient(server.URL, "tok")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "deals", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"success":true,"data":{}}`))
	}))
	t.Cleanup(server.Close)

	t.Run("debug enabled", func(t *testing.T) {
		t.Parallel()

		logger := &MockLogger{}
		client := pdhttp.NewClient(server.URL, "secret-token", pdhttp.WithLogger(logger), pdhttp.WithDebug(true))

		_, err := client.Get(context.Background(), "deals", map[string]interface{}{"term": "x"})
		require.NoError(t, err)

		requests := logger.byMessage("HTTP Request")
		require.Len(t, requests, 1)

		fields, ok := requests[0]["fields"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, http.MethodGet, fields["method"])
		assert.NotContains(t, fields["url"], "secret-token")

		responses := logger.byMessage("HTTP Response")
		require.Len(t, responses, 1)

		fields, ok = responses[0]["fields"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, http.StatusOK, fields["status_code"])
		assert.Contains(t, fields, "duration")

		for _, entry := range logger.logs {
			entryFields, _ := entry["fields"].(map[string]interface{})
			if raw, present := entryFields["url"]; present {
				assert.NotContains(t, raw, "secret-token")
			}
		}
	})

	t.Run("debug disabled", func(t *testing.T) {
		t.Parallel()

		logger := &MockLogger{}
		client := pdhttp.NewClient(server.URL, "secret-token", pdhttp.WithLogger(logger))

		_, err := client.Get(context.Background(), "deals", nil)
		require.NoError(t, err)
		assert.Empty(t, logger.logs)
	})
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	client := pdhttp.NewClient("https://api.pipedrive.com/v1/", "tok")
	assert.Equal(t, "https://api.pipedrive.com/v1", client.BaseURL())
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	redacted := pdhttp.RedactURL("https://api.pipedrive.com/v1/deals?api_token=abc&term=x")
	assert.NotContains(t, redacted, "abc")
	assert.Contains(t, redacted, "api_token=REDACTED")
	assert.Contains(t, redacted, "term=x")

	plain := "https://api.pipedrive.com/v1/deals?term=x"
	assert.Equal(t, plain, pdhttp.RedactURL(plain))
	assert.True(t, strings.HasPrefix(pdhttp.RedactURL("::bad"), "::bad"))
}
