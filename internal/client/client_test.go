package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, pipedrive.ErrConfigRequired)
	})

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		_, err := New(&pipedrive.Config{APIToken: "tok"})
		require.ErrorIs(t, err, pipedrive.ErrBaseURLRequired)
	})

	t.Run("requires token", func(t *testing.T) {
		t.Parallel()

		_, err := New(&pipedrive.Config{BaseURL: "https://api.pipedrive.com/v1"})
		require.ErrorIs(t, err, pipedrive.ErrTokenRequired)
	})

	t.Run("creates client", func(t *testing.T) {
		t.Parallel()

		client, err := New(&pipedrive.Config{
			BaseURL:     "https://api.pipedrive.com/v1",
			APIToken:    "tok",
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "test-agent/1.0",
			Debug:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://api.pipedrive.com/v1", client.BaseURL())
	})
}

func TestClient_ResourceAccessors(t *testing.T) {
	t.Parallel()

	client, err := New(&pipedrive.Config{BaseURL: "https://api.pipedrive.com/v1", APIToken: "tok"})
	require.NoError(t, err)

	var _ pipedrive.Client = client

	assert.NotNil(t, client.Activities())
	assert.NotNil(t, client.Deals())
	assert.NotNil(t, client.DealFields())
	assert.NotNil(t, client.Persons())
}

func TestClient_CreateWithoutRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		create func(ctx context.Context, c *Client) (pipedrive.Object, error)
	}{
		{"activity", func(ctx context.Context, c *Client) (pipedrive.Object, error) {
			return c.Activities().Create(ctx, nil)
		}},
		{"deal", func(ctx context.Context, c *Client) (pipedrive.Object, error) {
			return c.Deals().Create(ctx, nil)
		}},
		{"person", func(ctx context.Context, c *Client) (pipedrive.Object, error) {
			return c.Persons().Create(ctx, nil)
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := newTestServer(t, http.StatusCreated, `{"success":true,"data":{"id":1}}`)

			obj, err := tt.create(context.Background(), ts.client(t))
			require.ErrorIs(t, err, pipedrive.ErrValidation)
			assert.Nil(t, obj)

			var validationErr *pipedrive.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "request", validationErr.Field)
			assert.Equal(t, 0, ts.count())
		})
	}
}

func TestClient_UpdateWithoutRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		update func(ctx context.Context, c *Client) (pipedrive.Object, error)
	}{
		{"activity", "/activities/7", func(ctx context.Context, c *Client) (pipedrive.Object, error) {
			return c.Activities().Update(ctx, 7, nil)
		}},
		{"deal", "/deals/7", func(ctx context.Context, c *Client) (pipedrive.Object, error) {
			return c.Deals().Update(ctx, 7, nil)
		}},
		{"person", "/persons/7", func(ctx context.Context, c *Client) (pipedrive.Object, error) {
			return c.Persons().Update(ctx, 7, nil)
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := newTestServer(t, http.StatusOK, `{"success":true,"data":{"id":7}}`)

			obj, err := tt.update(context.Background(), ts.client(t))
			require.NoError(t, err)
			assert.Equal(t, pipedrive.Object{"id": float64(7)}, obj)

			req := ts.only(t)
			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, tt.path, req.Path)
			assert.JSONEq(t, `{}`, string(req.Raw))
		})
	}
}
