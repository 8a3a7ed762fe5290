package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/pipedrive-client/internal/http"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

func TestDecodeObject(t *testing.T) {
	t.Parallel()

	obj, err := decodeObject(&http.Response{Data: []byte(`{"id":1}`)})
	require.NoError(t, err)
	assert.Equal(t, pipedrive.Object{"id": float64(1)}, obj)

	obj, err = decodeObject(&http.Response{})
	require.NoError(t, err)
	assert.Nil(t, obj)

	_, err = decodeObject(&http.Response{Data: []byte(`[1,2]`)})
	require.ErrorIs(t, err, pipedrive.ErrInvalidResponse)
}

func TestWithCustomFields(t *testing.T) {
	t.Parallel()

	payload := withCustomFields(map[string]interface{}{"title": "T", "value": nil}, map[string]interface{}{
		"title": "override",
		"value": 10,
		"abc":   "x",
	})

	assert.Equal(t, map[string]interface{}{"title": "T", "value": nil, "abc": "x"}, payload)
}

func TestWrapValueAndFlag(t *testing.T) {
	t.Parallel()

	assert.Nil(t, wrapValue(nil))
	assert.Equal(t, []map[string]interface{}{{"value": "x"}}, wrapValue(pipedrive.String("x")))

	assert.Nil(t, flag(nil))
	assert.Equal(t, 1, flag(pipedrive.Bool(true)))
	assert.Equal(t, 0, flag(pipedrive.Bool(false)))
}
