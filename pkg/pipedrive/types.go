package pipedrive

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Object is a decoded JSON object from the data member of a response.
type Object map[string]interface{}

// Participant links an activity to a person.
type Participant struct {
	PersonID    int  `json:"person_id"    yaml:"person_id"`
	PrimaryFlag bool `json:"primary_flag" yaml:"primary_flag"`
}

// Attendee is an invitee of an activity.
type Attendee struct {
	EmailAddress string `json:"email_address,omitempty" yaml:"email_address,omitempty"`
	Name         string `json:"name,omitempty"          yaml:"name,omitempty"`
	PersonID     int    `json:"person_id,omitempty"     yaml:"person_id,omitempty"`
	UserID       int    `json:"user_id,omitempty"       yaml:"user_id,omitempty"`
	Status       string `json:"status,omitempty"        yaml:"status,omitempty"`
}

// ActivityCreateRequest holds the fields of POST /activities. Nil fields are
// not sent.
type ActivityCreateRequest struct {
	// DueDate in YYYY-MM-DD form. Required.
	DueDate           string
	DueTime           *string
	Duration          *string
	DealID            *int
	LeadID            *string
	PersonID          *int
	ProjectID         *int
	OrgID             *int
	Location          *string
	PublicDescription *string
	Note              *string
	Subject           *string
	Type              *string
	UserID            *int
	Participants      []Participant
	BusyFlag          *bool
	Attendees         []Attendee
	Done              *bool
}

// ActivityUpdateRequest holds the fields of PUT /activities/{id}.
type ActivityUpdateRequest struct {
	DueDate           *string
	DueTime           *string
	Duration          *string
	DealID            *int
	LeadID            *string
	PersonID          *int
	ProjectID         *int
	OrgID             *int
	Location          *string
	PublicDescription *string
	Note              *string
	Subject           *string
	Type              *string
	UserID            *int
	Participants      []Participant
	BusyFlag          *bool
	Attendees         []Attendee
	Done              *bool
}

// ActivitySearchParams filters GET /activities.
type ActivitySearchParams struct {
	UserID    *int
	FilterID  *int
	Type      *string
	Start     *int
	Limit     *int
	StartDate *string
	EndDate   *string
	Done      *bool
}

// DealCreateRequest holds the fields of POST /deals.
type DealCreateRequest struct {
	// Title is required.
	Title             string
	Value             *float64
	Currency          *string
	UserID            *int
	PersonID          *int
	OrgID             *int
	PipelineID        *int
	StageID           *int
	Status            *string
	ExpectedCloseDate *string
	Probability       *int
	LostReason        *string
	VisibleTo         *string
	AddTime           *string
	// CustomFields are merged into the payload under their hash keys.
	CustomFields map[string]interface{}
}

// DealUpdateRequest holds the fields of PUT /deals/{id}.
type DealUpdateRequest struct {
	Title             *string
	Value             *float64
	Currency          *string
	UserID            *int
	PersonID          *int
	OrgID             *int
	PipelineID        *int
	StageID           *int
	Status            *string
	ExpectedCloseDate *string
	Probability       *int
	LostReason        *string
	VisibleTo         *string
	AddTime           *string
	CustomFields      map[string]interface{}
}

// DealSearchParams holds the query of GET /deals/search.
type DealSearchParams struct {
	Term string
	// ExactMatch defaults to true when nil.
	ExactMatch     *bool
	PersonID       *int
	OrganizationID *int
	Status         *string
	IncludeFields  *string
	Start          *int
	Limit          *int
}

// DealActivitiesParams holds the query of GET /deals/{id}/activities.
type DealActivitiesParams struct {
	Start *int
	Limit *int
	Done  *bool
}

// PersonCreateRequest holds the fields of POST /persons.
type PersonCreateRequest struct {
	// Name is required.
	Name  string
	Email *string
	// Phone is required.
	Phone           string
	OwnerID         *int
	OrgID           *int
	VisibleTo       *string
	MarketingStatus *string
	CustomFields    map[string]interface{}
}

// PersonUpdateRequest holds the fields of PUT /persons/{id}.
type PersonUpdateRequest struct {
	Name            *string
	Email           *string
	Phone           *string
	OwnerID         *int
	OrgID           *int
	VisibleTo       *string
	MarketingStatus *string
	CustomFields    map[string]interface{}
}

// PersonSearchParams holds the query of GET /persons/search.
type PersonSearchParams struct {
	Term   string
	Fields *string
	// ExactMatch defaults to false when nil.
	ExactMatch     *bool
	OrganizationID *int
	IncludeFields  *string
	// Start defaults to 0 when nil.
	Start *int
	Limit *int
}

// DealField describes a deal field, including custom fields.
type DealField struct {
	ID            int           `json:"id"                        yaml:"id"`
	Key           string        `json:"key"                       yaml:"key"`
	Name          string        `json:"name"                      yaml:"name"`
	FieldType     string        `json:"field_type"                yaml:"field_type"`
	ActiveFlag    bool          `json:"active_flag"               yaml:"active_flag"`
	EditFlag      bool          `json:"edit_flag"                 yaml:"edit_flag"`
	MandatoryFlag interface{}   `json:"mandatory_flag,omitempty"  yaml:"mandatory_flag,omitempty"`
	Options       []FieldOption `json:"options,omitempty"         yaml:"options,omitempty"`
}

// FieldOption is one choice of an enum or set field.
type FieldOption struct {
	ID    OptionID `json:"id"    yaml:"id"`
	Label string   `json:"label" yaml:"label"`
}

// OptionID is an option identifier. Custom fields use numbers, some system
// fields (status, visible_to) use strings.
type OptionID string

// OptionIDFromInt builds the OptionID of a numeric option.
func OptionIDFromInt(id int) OptionID {
	return OptionID(strconv.Itoa(id))
}

// Int returns the numeric value of the id, if it has one.
func (o OptionID) Int() (int, bool) {
	n, err := strconv.Atoi(string(o))
	if err != nil {
		return 0, false
	}

	return n, true
}

// UnmarshalJSON accepts both numbers and strings.
func (o *OptionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string

		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}

		*o = OptionID(s)

		return nil
	}

	var n json.Number

	err := json.Unmarshal(data, &n)
	if err != nil {
		return err
	}

	*o = OptionID(n.String())

	return nil
}

// MarshalJSON writes numeric ids as numbers.
func (o OptionID) MarshalJSON() ([]byte, error) {
	if n, ok := o.Int(); ok {
		return []byte(strconv.Itoa(n)), nil
	}

	return json.Marshal(string(o))
}

// String returns a pointer to v, for the optional fields of request structs.
func String(v string) *string { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
