package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/internal/http"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// DealsClient implements pipedrive.DealsClient.
type DealsClient struct {
	httpClient *http.Client
}

// NewDealsClient creates a new deals client.
func NewDealsClient(httpClient *http.Client) *DealsClient {
	return &DealsClient{
		httpClient: httpClient,
	}
}

// Create implements pipedrive.DealsClient.Create.
func (c *DealsClient) Create(ctx context.Context, request *pipedrive.DealCreateRequest) (pipedrive.Object, error) {
	if request == nil {
		return nil, errRequestRequired()
	}

	err := firstError(
		validateRequired("title", request.Title),
		validateDealFields(request.Status, request.ExpectedCloseDate, request.Probability, request.VisibleTo),
	)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"title":               request.Title,
		"value":               request.Value,
		"currency":            request.Currency,
		"user_id":             request.UserID,
		"person_id":           request.PersonID,
		"org_id":              request.OrgID,
		"pipeline_id":         request.PipelineID,
		"stage_id":            request.StageID,
		"status":              request.Status,
		"expected_close_date": request.ExpectedCloseDate,
		"probability":         request.Probability,
		"lost_reason":         request.LostReason,
		"visible_to":          request.VisibleTo,
		"add_time":            request.AddTime,
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathDeals, withCustomFields(payload, request.CustomFields))
	if err != nil {
		return nil, fmt.Errorf("creating deal: %w", err)
	}

	return decodeObject(resp)
}

// Update implements pipedrive.DealsClient.Update.
func (c *DealsClient) Update(ctx context.Context, id int, request *pipedrive.DealUpdateRequest) (pipedrive.Object, error) {
	err := validateID("deal_id", id)
	if err != nil {
		return nil, err
	}

	if request == nil {
		request = &pipedrive.DealUpdateRequest{}
	}

	if request.Title != nil {
		err = validateRequired("title", *request.Title)
		if err != nil {
			return nil, err
		}
	}

	err = validateDealFields(request.Status, request.ExpectedCloseDate, request.Probability, request.VisibleTo)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"title":               request.Title,
		"value":               request.Value,
		"currency":            request.Currency,
		"user_id":             request.UserID,
		"person_id":           request.PersonID,
		"org_id":              request.OrgID,
		"pipeline_id":         request.PipelineID,
		"stage_id":            request.StageID,
		"status":              request.Status,
		"expected_close_date": request.ExpectedCloseDate,
		"probability":         request.Probability,
		"lost_reason":         request.LostReason,
		"visible_to":          request.VisibleTo,
		"add_time":            request.AddTime,
	}

	resp, err := c.httpClient.Put(ctx, dealPath(id), withCustomFields(payload, request.CustomFields))
	if err != nil {
		return nil, fmt.Errorf("updating deal: %w", err)
	}

	return decodeObject(resp)
}

// Get implements pipedrive.DealsClient.Get.
func (c *DealsClient) Get(ctx context.Context, id int) (pipedrive.Object, error) {
	err := validateID("deal_id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, dealPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting deal: %w", err)
	}

	return decodeObject(resp)
}

// Search implements pipedrive.DealsClient.Search.
func (c *DealsClient) Search(ctx context.Context, params *pipedrive.DealSearchParams) (pipedrive.Object, error) {
	if params == nil {
		params = &pipedrive.DealSearchParams{}
	}

	err := validateRequired("term", params.Term)
	if err != nil {
		return nil, err
	}

	err = validateOneOf("status", params.Status, constants.DealStatusValues())
	if err != nil {
		return nil, err
	}

	exactMatch := params.ExactMatch
	if exactMatch == nil {
		exactMatch = pipedrive.Bool(true)
	}

	query := map[string]interface{}{
		"term":            params.Term,
		"exact_match":     exactMatch,
		"person_id":       params.PersonID,
		"organization_id": params.OrganizationID,
		"status":          params.Status,
		"include_fields":  params.IncludeFields,
		"start":           params.Start,
		"limit":           params.Limit,
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathDealSearch, query)
	if err != nil {
		return nil, fmt.Errorf("searching deals: %w", err)
	}

	return decodeObject(resp)
}

// ListActivities implements pipedrive.DealsClient.ListActivities.
func (c *DealsClient) ListActivities(ctx context.Context, dealID int, params *pipedrive.DealActivitiesParams) ([]pipedrive.Object, error) {
	err := validateID("deal_id", dealID)
	if err != nil {
		return nil, err
	}

	if params == nil {
		params = &pipedrive.DealActivitiesParams{}
	}

	query := map[string]interface{}{
		"start": params.Start,
		"limit": params.Limit,
		"done":  flag(params.Done),
	}

	resp, err := c.httpClient.Get(ctx, dealPath(dealID)+constants.APIPathActivities, query)
	if err != nil {
		return nil, fmt.Errorf("listing deal activities: %w", err)
	}

	return decodeObjects(resp)
}

func validateDealFields(status, expectedCloseDate *string, probability *int, visibleTo *string) error {
	return firstError(
		validateOneOf("status", status, constants.DealStatusValues()),
		validateDate("expected_close_date", expectedCloseDate),
		validateProbability(probability),
		validateVisibleTo(visibleTo),
	)
}

func dealPath(id int) string {
	return constants.APIPathDeals + "/" + strconv.Itoa(id)
}
