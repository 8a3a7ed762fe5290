package client

import (
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/pipedrive-client/internal/http"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// decodeObject unwraps a single object. A missing data member yields nil.
func decodeObject(resp *http.Response) (pipedrive.Object, error) {
	if len(resp.Data) == 0 {
		return nil, nil //nolint:nilnil // absent data is not an error
	}

	var obj pipedrive.Object

	err := json.Unmarshal(resp.Data, &obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pipedrive.ErrInvalidResponse, err)
	}

	return obj, nil
}

// decodeObjects unwraps a list of objects. A missing data member yields nil.
func decodeObjects(resp *http.Response) ([]pipedrive.Object, error) {
	if len(resp.Data) == 0 {
		return nil, nil
	}

	var objs []pipedrive.Object

	err := json.Unmarshal(resp.Data, &objs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pipedrive.ErrInvalidResponse, err)
	}

	return objs, nil
}

// withCustomFields adds custom field values without overriding fixed keys.
func withCustomFields(payload map[string]interface{}, custom map[string]interface{}) map[string]interface{} {
	for key, value := range custom {
		if _, fixed := payload[key]; fixed {
			continue
		}

		payload[key] = value
	}

	return payload
}

// wrapValue shapes a scalar as [{"value": v}]. Nil stays nil so the key is
// dropped by the transport.
func wrapValue(value *string) interface{} {
	if value == nil {
		return nil
	}

	return []map[string]interface{}{{"value": *value}}
}

// flag converts an optional bool to the 0/1 integer the API expects.
func flag(value *bool) interface{} {
	if value == nil {
		return nil
	}

	if *value {
		return 1
	}

	return 0
}
