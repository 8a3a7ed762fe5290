package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/internal/http"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// PersonsClient implements pipedrive.PersonsClient.
type PersonsClient struct {
	httpClient *http.Client
}

// NewPersonsClient creates a new persons client.
func NewPersonsClient(httpClient *http.Client) *PersonsClient {
	return &PersonsClient{
		httpClient: httpClient,
	}
}

// Create implements pipedrive.PersonsClient.Create.
func (c *PersonsClient) Create(ctx context.Context, request *pipedrive.PersonCreateRequest) (pipedrive.Object, error) {
	if request == nil {
		return nil, errRequestRequired()
	}

	err := firstError(
		validateRequired("name", request.Name),
		validateRequired("phone", request.Phone),
		validatePersonFields(request.Email, &request.Phone, request.VisibleTo, request.MarketingStatus),
	)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"name":             request.Name,
		"email":            wrapValue(request.Email),
		"phone":            wrapValue(&request.Phone),
		"owner_id":         request.OwnerID,
		"org_id":           request.OrgID,
		"visible_to":       request.VisibleTo,
		"marketing_status": request.MarketingStatus,
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathPersons, withCustomFields(payload, request.CustomFields))
	if err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}

	return decodeObject(resp)
}

// Update implements pipedrive.PersonsClient.Update.
func (c *PersonsClient) Update(ctx context.Context, id int, request *pipedrive.PersonUpdateRequest) (pipedrive.Object, error) {
	err := validateID("person_id", id)
	if err != nil {
		return nil, err
	}

	if request == nil {
		request = &pipedrive.PersonUpdateRequest{}
	}

	if request.Name != nil {
		err = validateRequired("name", *request.Name)
		if err != nil {
			return nil, err
		}
	}

	err = validatePersonFields(request.Email, request.Phone, request.VisibleTo, request.MarketingStatus)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"name":             request.Name,
		"email":            wrapValue(request.Email),
		"phone":            wrapValue(request.Phone),
		"owner_id":         request.OwnerID,
		"org_id":           request.OrgID,
		"visible_to":       request.VisibleTo,
		"marketing_status": request.MarketingStatus,
	}

	resp, err := c.httpClient.Put(ctx, personPath(id), withCustomFields(payload, request.CustomFields))
	if err != nil {
		return nil, fmt.Errorf("updating person: %w", err)
	}

	return decodeObject(resp)
}

// Get implements pipedrive.PersonsClient.Get.
func (c *PersonsClient) Get(ctx context.Context, id int) (pipedrive.Object, error) {
	err := validateID("person_id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, personPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting person: %w", err)
	}

	return decodeObject(resp)
}

// Search implements pipedrive.PersonsClient.Search.
func (c *PersonsClient) Search(ctx context.Context, params *pipedrive.PersonSearchParams) (pipedrive.Object, error) {
	if params == nil {
		params = &pipedrive.PersonSearchParams{}
	}

	err := validateRequired("term", params.Term)
	if err != nil {
		return nil, err
	}

	exactMatch := params.ExactMatch
	if exactMatch == nil {
		exactMatch = pipedrive.Bool(false)
	}

	start := params.Start
	if start == nil {
		start = pipedrive.Int(0)
	}

	query := map[string]interface{}{
		"term":            params.Term,
		"fields":          params.Fields,
		"exact_match":     exactMatch,
		"organization_id": params.OrganizationID,
		"include_fields":  params.IncludeFields,
		"start":           start,
		"limit":           params.Limit,
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathPersonSrch, query)
	if err != nil {
		return nil, fmt.Errorf("searching persons: %w", err)
	}

	return decodeObject(resp)
}

func validatePersonFields(email, phone, visibleTo, marketingStatus *string) error {
	return firstError(
		validateEmail(email),
		validatePhone(phone),
		validateVisibleTo(visibleTo),
		validateOneOf("marketing_status", marketingStatus, constants.MarketingStatusValues()),
	)
}

func personPath(id int) string {
	return constants.APIPathPersons + "/" + strconv.Itoa(id)
}
