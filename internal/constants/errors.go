package constants

import "errors"

// Configuration errors.
var (
	ErrNoTokenConfigured  = errors.New("no API token configured, use 'pipedrive login' or set PIPEDRIVE_TOKEN")
	ErrEmptyToken         = errors.New("token must not be empty")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrInvalidTimeout     = errors.New("invalid timeout, expected a duration such as 30s")
	ErrUnsupportedFormat  = errors.New("unsupported output format")
	ErrNotATerminal       = errors.New("stdin is not a terminal, pass --token instead")
	ErrInvalidCustomField = errors.New("invalid custom field, expected key=value")
)

// Required argument errors.
var (
	ErrDueDateRequired = errors.New("--due-date flag is required")
	ErrTitleRequired   = errors.New("--title flag is required")
	ErrNameRequired    = errors.New("--name flag is required")
	ErrPhoneRequired   = errors.New("--phone flag is required")
	ErrInvalidID       = errors.New("invalid ID, expected a positive integer")
)

// Lookup errors.
var (
	ErrDealFieldNotFound   = errors.New("deal field not found")
	ErrFieldOptionNotFound = errors.New("deal field option not found")
)
