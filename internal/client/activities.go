package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/internal/http"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// ActivitiesClient implements pipedrive.ActivitiesClient.
type ActivitiesClient struct {
	httpClient *http.Client
}

// NewActivitiesClient creates a new activities client.
func NewActivitiesClient(httpClient *http.Client) *ActivitiesClient {
	return &ActivitiesClient{
		httpClient: httpClient,
	}
}

// Create implements pipedrive.ActivitiesClient.Create.
func (c *ActivitiesClient) Create(ctx context.Context, request *pipedrive.ActivityCreateRequest) (pipedrive.Object, error) {
	if request == nil {
		return nil, errRequestRequired()
	}

	err := validateRequired("due_date", request.DueDate)
	if err != nil {
		return nil, err
	}

	due, err := dueDate(&request.DueDate)
	if err != nil {
		return nil, err
	}

	err = validateActivityFields(request.DueTime, request.Duration, request.Participants, request.Attendees)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"due_date":           due,
		"due_time":           request.DueTime,
		"duration":           request.Duration,
		"deal_id":            request.DealID,
		"lead_id":            request.LeadID,
		"person_id":          request.PersonID,
		"project_id":         request.ProjectID,
		"org_id":             request.OrgID,
		"location":           request.Location,
		"public_description": request.PublicDescription,
		"note":               request.Note,
		"subject":            request.Subject,
		"type":               request.Type,
		"user_id":            request.UserID,
		"participants":       request.Participants,
		"busy_flag":          request.BusyFlag,
		"attendees":          request.Attendees,
		"done":               flag(request.Done),
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathActivities, payload)
	if err != nil {
		return nil, fmt.Errorf("creating activity: %w", err)
	}

	return decodeObject(resp)
}

// Update implements pipedrive.ActivitiesClient.Update.
func (c *ActivitiesClient) Update(ctx context.Context, id int, request *pipedrive.ActivityUpdateRequest) (pipedrive.Object, error) {
	err := validateID("activity_id", id)
	if err != nil {
		return nil, err
	}

	if request == nil {
		request = &pipedrive.ActivityUpdateRequest{}
	}

	due, err := dueDate(request.DueDate)
	if err != nil {
		return nil, err
	}

	err = validateActivityFields(request.DueTime, request.Duration, request.Participants, request.Attendees)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"due_date":           due,
		"due_time":           request.DueTime,
		"duration":           request.Duration,
		"deal_id":            request.DealID,
		"lead_id":            request.LeadID,
		"person_id":          request.PersonID,
		"project_id":         request.ProjectID,
		"org_id":             request.OrgID,
		"location":           request.Location,
		"public_description": request.PublicDescription,
		"note":               request.Note,
		"subject":            request.Subject,
		"type":               request.Type,
		"user_id":            request.UserID,
		"participants":       request.Participants,
		"busy_flag":          request.BusyFlag,
		"attendees":          request.Attendees,
		"done":               flag(request.Done),
	}

	resp, err := c.httpClient.Put(ctx, activityPath(id), payload)
	if err != nil {
		return nil, fmt.Errorf("updating activity: %w", err)
	}

	return decodeObject(resp)
}

// Get implements pipedrive.ActivitiesClient.Get.
func (c *ActivitiesClient) Get(ctx context.Context, id int) (pipedrive.Object, error) {
	err := validateID("activity_id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, activityPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting activity: %w", err)
	}

	return decodeObject(resp)
}

// Search implements pipedrive.ActivitiesClient.Search.
func (c *ActivitiesClient) Search(ctx context.Context, params *pipedrive.ActivitySearchParams) ([]pipedrive.Object, error) {
	if params == nil {
		params = &pipedrive.ActivitySearchParams{}
	}

	err := firstError(
		validateDate("start_date", params.StartDate),
		validateDate("end_date", params.EndDate),
	)
	if err != nil {
		return nil, err
	}

	query := map[string]interface{}{
		"user_id":    params.UserID,
		"filter_id":  params.FilterID,
		"type":       params.Type,
		"start":      params.Start,
		"limit":      params.Limit,
		"start_date": params.StartDate,
		"end_date":   params.EndDate,
		"done":       flag(params.Done),
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathActivities, query)
	if err != nil {
		return nil, fmt.Errorf("searching activities: %w", err)
	}

	return decodeObjects(resp)
}

func validateActivityFields(dueTime, duration *string, people []pipedrive.Participant, invitees []pipedrive.Attendee) error {
	return firstError(
		validateClock("due_time", dueTime),
		validateClock("duration", duration),
		validateParticipants(people),
		validateAttendees(invitees),
	)
}

func activityPath(id int) string {
	return constants.APIPathActivities + "/" + strconv.Itoa(id)
}
