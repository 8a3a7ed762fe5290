package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

const testToken = "test-token"

// recordedRequest captures what the test server received.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]interface{}
	Raw    []byte
}

// testServer answers every request with a fixed status and body and records
// the requests it saw.
type testServer struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newTestServer(t *testing.T, status int, body string) *testServer {
	t.Helper()

	ts := &testServer{}
	ts.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		raw, _ := io.ReadAll(request.Body)

		recorded := recordedRequest{
			Method: request.Method,
			Path:   request.URL.Path,
			Query:  request.URL.Query(),
			Raw:    raw,
		}

		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &recorded.Body)
		}

		ts.mu.Lock()
		ts.requests = append(ts.requests, recorded)
		ts.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(ts.server.Close)

	return ts
}

// client returns a Client pointed at the test server.
func (ts *testServer) client(t *testing.T) *Client {
	t.Helper()

	client, err := New(&pipedrive.Config{BaseURL: ts.server.URL, APIToken: testToken})
	require.NoError(t, err)

	return client
}

// only returns the single request the server received.
func (ts *testServer) only(t *testing.T) recordedRequest {
	t.Helper()

	ts.mu.Lock()
	defer ts.mu.Unlock()

	require.Len(t, ts.requests, 1)

	return ts.requests[0]
}

func (ts *testServer) count() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	return len(ts.requests)
}
