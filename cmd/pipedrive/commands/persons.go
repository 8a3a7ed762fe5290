package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// NewPersonsCommand creates the persons command group.
func NewPersonsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "persons",
		Aliases: []string{"person", "contacts"},
		Short:   "Manage persons",
		Long:    "Create, update, view and search Pipedrive persons (contacts)",
	}

	cmd.AddCommand(newPersonsCreateCommand())
	cmd.AddCommand(newPersonsUpdateCommand())
	cmd.AddCommand(newPersonsGetCommand())
	cmd.AddCommand(newPersonsSearchCommand())

	return cmd
}

func newPersonsCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a person",
		Long:  "Create a new person. --name and --phone are required",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") {
				return constants.ErrNameRequired
			}

			if !cmd.Flags().Changed("phone") {
				return constants.ErrPhoneRequired
			}

			fields, err := personFieldsFromFlags(cmd)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			person, err := client.Persons().Create(commandContext(cmd), &pipedrive.PersonCreateRequest{
				Name:            *fields.Name,
				Email:           fields.Email,
				Phone:           *fields.Phone,
				OwnerID:         fields.OwnerID,
				OrgID:           fields.OrgID,
				VisibleTo:       fields.VisibleTo,
				MarketingStatus: fields.MarketingStatus,
				CustomFields:    fields.CustomFields,
			})
			if err != nil {
				return err
			}

			return renderObject(cmd.OutOrStdout(), person)
		},
	}

	addPersonFlags(cmd)

	return cmd
}

func newPersonsUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update PERSON_ID",
		Short: "Update a person",
		Long:  "Update an existing person. Only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			fields, err := personFieldsFromFlags(cmd)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			person, err := client.Persons().Update(commandContext(cmd), id, fields)
			if err != nil {
				return err
			}

			return renderObject(cmd.OutOrStdout(), person)
		},
	}

	addPersonFlags(cmd)

	return cmd
}

func newPersonsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PERSON_ID",
		Short: "Get person details",
		Long:  "Display detailed information about a specific person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			person, err := client.Persons().Get(commandContext(cmd), id)
			if err != nil {
				return err
			}

			return renderObject(cmd.OutOrStdout(), person)
		},
	}
}

func newPersonsSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Search persons",
		Long:  "Search persons by name, email, phone, notes and custom fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Persons().Search(commandContext(cmd), &pipedrive.PersonSearchParams{
				Term:           args[0],
				Fields:         optionalString(cmd, "fields"),
				ExactMatch:     optionalBool(cmd, "exact-match"),
				OrganizationID: optionalInt(cmd, "org-id"),
				IncludeFields:  optionalString(cmd, "include-fields"),
				Start:          optionalInt(cmd, "start"),
				Limit:          optionalInt(cmd, "limit"),
			})
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if format != constants.FormatTable {
				return writeEncoded(cmd.OutOrStdout(), format, result)
			}

			return renderObjects(cmd.OutOrStdout(), searchItems(result), "id", "name", "emails", "phones")
		},
	}

	cmd.Flags().String("fields", "", "fields to search: custom_fields, email, notes, phone, name")
	cmd.Flags().Bool("exact-match", false, "only exact matches of the term")
	cmd.Flags().Int("org-id", 0, "only persons of this organization")
	cmd.Flags().String("include-fields", "", "extra fields to include, e.g. person.picture")
	cmd.Flags().Int("start", 0, "pagination start")
	cmd.Flags().Int("limit", constants.DefaultPageLimit, "items per page")

	return cmd
}

func addPersonFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().Int("owner-id", 0, "owner user ID")
	cmd.Flags().Int("org-id", 0, "organization ID")
	cmd.Flags().String("visible-to", "", "visibility (1, 3, 5, 7)")
	cmd.Flags().String("marketing-status", "", "marketing status (no_consent, unsubscribed, subscribed, archived)")
	cmd.Flags().StringArray("field", nil, "custom field as KEY=VALUE (repeatable)")
}

// personFieldsFromFlags collects the person flags that were explicitly set.
func personFieldsFromFlags(cmd *cobra.Command) (*pipedrive.PersonUpdateRequest, error) {
	pairs, _ := cmd.Flags().GetStringArray("field")

	custom, err := parseCustomFields(pairs)
	if err != nil {
		return nil, err
	}

	return &pipedrive.PersonUpdateRequest{
		Name:            optionalString(cmd, "name"),
		Email:           optionalString(cmd, "email"),
		Phone:           optionalString(cmd, "phone"),
		OwnerID:         optionalInt(cmd, "owner-id"),
		OrgID:           optionalInt(cmd, "org-id"),
		VisibleTo:       optionalString(cmd, "visible-to"),
		MarketingStatus: optionalString(cmd, "marketing-status"),
		CustomFields:    custom,
	}, nil
}
