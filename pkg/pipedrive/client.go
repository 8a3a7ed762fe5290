package pipedrive

import (
	"context"
	"net/http"
	"time"
)

// DefaultBaseURL is the public Pipedrive v1 endpoint.
const DefaultBaseURL = "https://api.pipedrive.com/v1"

// ActivitiesClient provides access to /activities.
type ActivitiesClient interface {
	Create(ctx context.Context, request *ActivityCreateRequest) (Object, error)
	Update(ctx context.Context, id int, request *ActivityUpdateRequest) (Object, error)
	Get(ctx context.Context, id int) (Object, error)
	Search(ctx context.Context, params *ActivitySearchParams) ([]Object, error)
}

// DealsClient provides access to /deals.
type DealsClient interface {
	Create(ctx context.Context, request *DealCreateRequest) (Object, error)
	Update(ctx context.Context, id int, request *DealUpdateRequest) (Object, error)
	Get(ctx context.Context, id int) (Object, error)
	Search(ctx context.Context, params *DealSearchParams) (Object, error)
	ListActivities(ctx context.Context, dealID int, params *DealActivitiesParams) ([]Object, error)
}

// DealFieldsClient provides access to /dealFields.
type DealFieldsClient interface {
	List(ctx context.Context) ([]DealField, error)
	Get(ctx context.Context, id int) (*DealField, error)
	GetByKey(ctx context.Context, key string) (*DealField, error)
	GetOptionLabel(ctx context.Context, key string, optionID int) (string, bool, error)
}

// PersonsClient provides access to /persons.
type PersonsClient interface {
	Create(ctx context.Context, request *PersonCreateRequest) (Object, error)
	Update(ctx context.Context, id int, request *PersonUpdateRequest) (Object, error)
	Get(ctx context.Context, id int) (Object, error)
	Search(ctx context.Context, params *PersonSearchParams) (Object, error)
}

// Client groups the resource clients that share one transport.
type Client interface {
	Activities() ActivitiesClient
	Deals() DealsClient
	DealFields() DealFieldsClient
	Persons() PersonsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a pipedrive.Client.
//
// The token is sent as the api_token query parameter on every request. It is
// read once at construction and never changes afterwards.
//
// # Endpoint resolution
//
// pdclient.New resolves the endpoint as follows:
//  1. BaseURL, if set. A missing scheme gets "https://" and a trailing slash
//     is trimmed.
//  2. CompanyDomain, if set: "https://<domain>.pipedrive.com/api/v1".
//  3. DefaultBaseURL.
//
// # Timeouts
//
// HTTPTimeout bounds every request. The client never retries; callers that
// need retries or deadlines per call should use the context.
type Config struct {
	// BaseURL overrides the API endpoint (tests, proxies).
	BaseURL string
	// CompanyDomain selects the company specific endpoint when BaseURL is empty.
	CompanyDomain string
	// APIToken is the personal API token. Required.
	APIToken string

	// HTTPTimeout: per-request timeout. Zero selects the default of 30s, or
	// HTTPClient.Timeout when HTTPClient is set.
	HTTPTimeout time.Duration
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// HTTPClient: optional underlying client, e.g. with a custom transport. Its
	// Timeout is kept unless HTTPTimeout is set.
	HTTPClient *http.Client
}
