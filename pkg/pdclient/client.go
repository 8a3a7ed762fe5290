package pdclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/pipedrive-client/internal/client"
	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// New creates a new Pipedrive API client.
func New(config *pipedrive.Config) (pipedrive.Client, error) {
	if config == nil {
		return nil, pipedrive.ErrConfigRequired
	}

	if strings.TrimSpace(config.APIToken) == "" {
		return nil, pipedrive.ErrTokenRequired
	}

	baseURL, err := ResolveBaseURL(config)
	if err != nil {
		return nil, err
	}

	normalized := *config
	normalized.BaseURL = baseURL

	if normalized.HTTPTimeout <= 0 && normalized.HTTPClient == nil {
		normalized.HTTPTimeout = constants.DefaultHTTPTimeout
	}

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// ResolveBaseURL returns the endpoint selected by config: BaseURL, then
// CompanyDomain, then the public endpoint.
func ResolveBaseURL(config *pipedrive.Config) (string, error) {
	endpoint := strings.TrimSpace(config.BaseURL)

	if endpoint == "" && config.CompanyDomain != "" {
		domain := strings.TrimSuffix(strings.TrimSpace(config.CompanyDomain), ".pipedrive.com")
		endpoint = fmt.Sprintf(constants.CompanyURLTemplate, domain)
	}

	if endpoint == "" {
		return constants.DefaultBaseURL, nil
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", pipedrive.ErrInvalidBaseURL, endpoint)
	}

	return endpoint, nil
}

// NewWithToken creates a client for the public endpoint.
func NewWithToken(token string) (pipedrive.Client, error) {
	return New(&pipedrive.Config{
		APIToken: token,
	})
}

// NewWithCompanyDomain creates a client for a company specific endpoint.
func NewWithCompanyDomain(companyDomain, token string) (pipedrive.Client, error) {
	return New(&pipedrive.Config{
		CompanyDomain: companyDomain,
		APIToken:      token,
	})
}
