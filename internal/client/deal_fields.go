package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/internal/http"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// DealFieldsClient implements pipedrive.DealFieldsClient.
type DealFieldsClient struct {
	httpClient *http.Client
}

// NewDealFieldsClient creates a new deal fields client.
func NewDealFieldsClient(httpClient *http.Client) *DealFieldsClient {
	return &DealFieldsClient{
		httpClient: httpClient,
	}
}

// List implements pipedrive.DealFieldsClient.List.
func (c *DealFieldsClient) List(ctx context.Context) ([]pipedrive.DealField, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathDealFields, nil)
	if err != nil {
		return nil, fmt.Errorf("listing deal fields: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, nil
	}

	var fields []pipedrive.DealField

	err = json.Unmarshal(resp.Data, &fields)
	if err != nil {
		return nil, fmt.Errorf("parsing deal fields list: %w", err)
	}

	return fields, nil
}

// Get implements pipedrive.DealFieldsClient.Get.
func (c *DealFieldsClient) Get(ctx context.Context, id int) (*pipedrive.DealField, error) {
	err := validateID("deal_field_id", id)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathDealFields + "/" + strconv.Itoa(id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting deal field: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, nil //nolint:nilnil // absent data is not an error
	}

	var field pipedrive.DealField

	err = json.Unmarshal(resp.Data, &field)
	if err != nil {
		return nil, fmt.Errorf("parsing deal field: %w", err)
	}

	return &field, nil
}

// GetByKey implements pipedrive.DealFieldsClient.GetByKey. It returns the
// first field whose key matches, or nil.
func (c *DealFieldsClient) GetByKey(ctx context.Context, key string) (*pipedrive.DealField, error) {
	fields, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	return findFieldByKey(fields, key), nil
}

// GetOptionLabel implements pipedrive.DealFieldsClient.GetOptionLabel. The
// boolean is false when the field or the option does not exist.
func (c *DealFieldsClient) GetOptionLabel(ctx context.Context, key string, optionID int) (string, bool, error) {
	field, err := c.GetByKey(ctx, key)
	if err != nil {
		return "", false, err
	}

	if field == nil {
		return "", false, nil
	}

	label, ok := findOptionLabel(field, pipedrive.OptionIDFromInt(optionID))

	return label, ok, nil
}

func findFieldByKey(fields []pipedrive.DealField, key string) *pipedrive.DealField {
	for i := range fields {
		if fields[i].Key == key {
			return &fields[i]
		}
	}

	return nil
}

func findOptionLabel(field *pipedrive.DealField, id pipedrive.OptionID) (string, bool) {
	for _, option := range field.Options {
		if option.ID == id {
			return option.Label, true
		}
	}

	return "", false
}
