package client

import (
	"github.com/fivetwenty-io/pipedrive-client/internal/http"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// Client implements the pipedrive.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     pipedrive.Logger

	// Resource clients
	activities pipedrive.ActivitiesClient
	deals      pipedrive.DealsClient
	dealFields pipedrive.DealFieldsClient
	persons    pipedrive.PersonsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *pipedrive.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	return httpOpts
}

// New creates a Pipedrive client from an already normalized config. Most
// callers should use pdclient.New, which resolves the endpoint first.
func New(config *pipedrive.Config) (*Client, error) {
	if config == nil {
		return nil, pipedrive.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, pipedrive.ErrBaseURLRequired
	}

	if config.APIToken == "" {
		return nil, pipedrive.ErrTokenRequired
	}

	httpClient := http.NewClient(config.BaseURL, config.APIToken, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.BaseURL,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// Activities implements pipedrive.Client.Activities.
func (c *Client) Activities() pipedrive.ActivitiesClient {
	return c.activities
}

// Deals implements pipedrive.Client.Deals.
func (c *Client) Deals() pipedrive.DealsClient {
	return c.deals
}

// DealFields implements pipedrive.Client.DealFields.
func (c *Client) DealFields() pipedrive.DealFieldsClient {
	return c.dealFields
}

// Persons implements pipedrive.Client.Persons.
func (c *Client) Persons() pipedrive.PersonsClient {
	return c.persons
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.activities = NewActivitiesClient(c.httpClient)
	c.deals = NewDealsClient(c.httpClient)
	c.dealFields = NewDealFieldsClient(c.httpClient)
	c.persons = NewPersonsClient(c.httpClient)
}

// loggerAdapter adapts pipedrive.Logger to http.Logger.
type loggerAdapter struct {
	logger pipedrive.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
