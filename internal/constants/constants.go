package constants

import "time"

// Version is the library version reported in the User-Agent header.
const Version = "1.0.0"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network settings.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "pipedrive-go/" + Version

	// DefaultBaseURL is the public v1 endpoint.
	DefaultBaseURL = "https://api.pipedrive.com/v1"

	// CompanyURLTemplate builds a company specific endpoint from its domain.
	CompanyURLTemplate = "https://%s.pipedrive.com/api/v1"
)

// API path constants.
const (
	APIPathActivities = "/activities"
	APIPathDeals      = "/deals"
	APIPathDealSearch = "/deals/search"
	APIPathDealFields = "/dealFields"
	APIPathPersons    = "/persons"
	APIPathPersonSrch = "/persons/search"
)

// Date and time layouts.
const (
	// DateLayout is the accepted input layout for dates.
	DateLayout = "2006-01-02"

	// ActivityDueDateLayout is the layout due dates are sent in.
	ActivityDueDateLayout = "2006/01/02"

	// ClockLayout is the HH:MM layout of due times and durations.
	ClockLayout = "15:04"
)

// Deal status values.
const (
	DealStatusOpen    = "open"
	DealStatusWon     = "won"
	DealStatusLost    = "lost"
	DealStatusDeleted = "deleted"
)

// Marketing status values.
const (
	MarketingStatusNoConsent    = "no_consent"
	MarketingStatusUnsubscribed = "unsubscribed"
	MarketingStatusSubscribed   = "subscribed"
	MarketingStatusArchived     = "archived"
)

// Probability bounds.
const (
	MinProbability = 0
	MaxProbability = 100
)

// VisibleToValues are the accepted visibility levels
// (owner, owner's group, owner's group and sub-groups, entire company).
func VisibleToValues() []string {
	return []string{"1", "3", "5", "7"}
}

// DealStatusValues are the accepted deal statuses.
func DealStatusValues() []string {
	return []string{DealStatusOpen, DealStatusWon, DealStatusLost, DealStatusDeleted}
}

// MarketingStatusValues are the accepted person marketing statuses.
func MarketingStatusValues() []string {
	return []string{
		MarketingStatusNoConsent,
		MarketingStatusUnsubscribed,
		MarketingStatusSubscribed,
		MarketingStatusArchived,
	}
}

// CLI display constants.
const (
	// NotAvailable is shown for empty values.
	NotAvailable = "N/A"

	// MaskedSecret replaces tokens in output.
	MaskedSecret = "***"

	// FormatJSON selects JSON output.
	FormatJSON = "json"

	// FormatYAML selects YAML output.
	FormatYAML = "yaml"

	// FormatTable selects table output.
	FormatTable = "table"

	// JSONIndentSize is the indent used by the YAML and JSON encoders.
	JSONIndentSize = 2

	// DefaultPageLimit is the CLI's default page size for searches.
	DefaultPageLimit = 50
)

// CLI configuration.
const (
	// ConfigDirName is the directory under $HOME holding the config file.
	ConfigDirName = ".pipedrive"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// EnvPrefix is the prefix of environment overrides.
	EnvPrefix = "PIPEDRIVE"
)
